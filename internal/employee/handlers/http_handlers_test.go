package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gartstein/employees/internal/employee/auth"
	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/gartstein/employees/internal/employee/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

const testSecret = "secret"

// mockEmployeeController is a function-field implementation of EmployeeController.
type mockEmployeeController struct {
	createEmployee func(context.Context, *models.Employee) (*models.Employee, error)
	getEmployee    func(context.Context, primitive.ObjectID) (*models.Employee, error)
}

func (m *mockEmployeeController) CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	return m.createEmployee(ctx, emp)
}

func (m *mockEmployeeController) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return m.getEmployee(ctx, id)
}

func newTestHandler(t *testing.T, ctrl EmployeeController) http.Handler {
	return auth.HTTPMiddleware(NewEmployeeHandler(ctrl, zaptest.NewLogger(t)).Routes(), testSecret)
}

func bearer(t *testing.T) string {
	token, err := auth.GenerateToken("12345", testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestCreateEmployeeHandler(t *testing.T) {
	body := `{"name":"John date","email":"johndoe123@example.com","age":35,"hobbies":["Eating","sleeping","cooking"]}`

	tests := []struct {
		name       string
		body       string
		authorize  bool
		createErr  error
		wantStatus int
	}{
		{name: "created", body: body, authorize: true, wantStatus: http.StatusCreated},
		{name: "missing token", body: body, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", body: `{"name":`, authorize: true, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"name":"x","salary":1}`, authorize: true, wantStatus: http.StatusBadRequest},
		{name: "invalid referral", body: `{"name":"x","referral":"nope"}`, authorize: true, wantStatus: http.StatusBadRequest},
		{name: "validation error", body: body, authorize: true, createErr: e.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "store error", body: body, authorize: true, createErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received *models.Employee
			ctrl := &mockEmployeeController{
				createEmployee: func(_ context.Context, emp *models.Employee) (*models.Employee, error) {
					received = emp
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					emp.ID = primitive.NewObjectID()
					return emp, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/employees", strings.NewReader(tt.body))
			if tt.authorize {
				req.Header.Set("Authorization", bearer(t))
			}
			rec := httptest.NewRecorder()
			newTestHandler(t, ctrl).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusCreated {
				return
			}

			require.NotNil(t, received)
			assert.Equal(t, []string{"Eating", "sleeping", "cooking"}, received.Hobbies)
			assert.Nil(t, received.Address)

			var got models.Employee
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.False(t, got.ID.IsZero())
			assert.Equal(t, "John date", got.Name)
			require.NotNil(t, got.Age)
			assert.Equal(t, 35, *got.Age)
		})
	}
}

func TestGetEmployeeHandler(t *testing.T) {
	existing := primitive.NewObjectID()
	ctrl := &mockEmployeeController{
		getEmployee: func(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
			if id != existing {
				return nil, e.ErrNotFound
			}
			return &models.Employee{ID: id, Name: "John date", Hobbies: []string{}}, nil
		},
	}
	handler := newTestHandler(t, ctrl)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "found", path: "/v1/employees/" + existing.Hex(), wantStatus: http.StatusOK},
		{name: "not found", path: "/v1/employees/" + primitive.NewObjectID().Hex(), wantStatus: http.StatusNotFound},
		{name: "invalid id", path: "/v1/employees/123", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestEmployeeRequestToModel(t *testing.T) {
	referral := primitive.NewObjectID()
	req := &employeeRequest{
		Name:     "John date",
		Referral: referral.Hex(),
		Hobbies:  []string{"b", "a"},
	}

	emp, err := req.toModel()
	require.NoError(t, err)
	require.NotNil(t, emp.Referral)
	assert.Equal(t, referral, *emp.Referral)
	assert.Equal(t, []string{"b", "a"}, emp.Hobbies)
	assert.True(t, emp.ID.IsZero())
	assert.True(t, emp.CreatedAt.IsZero())
}
