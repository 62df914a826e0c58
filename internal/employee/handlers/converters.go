package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/gartstein/employees/internal/employee/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// employeeRequest is the body accepted by POST /v1/employees. The id is
// always assigned by the service, so it is not part of the request.
type employeeRequest struct {
	Name              string                  `json:"name"`
	Email             string                  `json:"email"`
	Age               *int                    `json:"age"`
	Address           *models.Address         `json:"address"`
	Referral          string                  `json:"referral"`
	Hobbies           []string                `json:"hobbies"`
	Designation       string                  `json:"designation"`
	PreviousCompanies *models.PreviousCompany `json:"previousCompanies"`
	CreatedAt         *time.Time              `json:"createdAt"`
	UpdatedAt         *time.Time              `json:"updatedAt"`
}

// toModel converts a request body into an Employee model.
func (req *employeeRequest) toModel() (*models.Employee, error) {
	employee := &models.Employee{
		Name:              req.Name,
		Email:             req.Email,
		Age:               req.Age,
		Address:           req.Address,
		Hobbies:           req.Hobbies,
		Designation:       req.Designation,
		PreviousCompanies: req.PreviousCompanies,
	}
	if req.Referral != "" {
		referral, err := primitive.ObjectIDFromHex(req.Referral)
		if err != nil {
			return nil, errors.New("invalid referral ID")
		}
		employee.Referral = &referral
	}
	if req.CreatedAt != nil {
		employee.CreatedAt = req.CreatedAt.UTC()
	}
	if req.UpdatedAt != nil {
		employee.UpdatedAt = req.UpdatedAt.UTC()
	}
	return employee, nil
}

// writeServiceError maps domain or repository errors to HTTP status codes.
func (h *EmployeeHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
