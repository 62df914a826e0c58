package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gartstein/employees/internal/employee/auth"
	"github.com/gartstein/employees/internal/employee/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EmployeeController defines the business logic interface
// that the HTTP handlers will invoke.
type EmployeeController interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

// EmployeeHandler provides HTTP endpoints for Employee operations,
// mapping requests to an EmployeeController.
type EmployeeHandler struct {
	service EmployeeController
	logger  *zap.Logger
}

// NewEmployeeHandler constructs a new EmployeeHandler with the given service and logger.
func NewEmployeeHandler(service EmployeeController, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Routes returns the router serving the employee endpoints.
func (h *EmployeeHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/employees", h.CreateEmployee)
	mux.HandleFunc("GET /v1/employees/{id}", h.GetEmployee)
	return mux
}

// CreateEmployee decodes an employee from the request body and creates it.
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed employee body")
		return
	}

	employee, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.CreateEmployee(r.Context(), employee)
	if err != nil {
		h.logger.Error("Create employee failed", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	fields := []zap.Field{zap.String("employee_id", created.ID.Hex())}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		if sub, err := claims.GetSubject(); err == nil {
			fields = append(fields, zap.String("created_by", sub))
		}
	}
	h.logger.Info("Employee created", fields...)
	writeJSON(w, http.StatusCreated, created)
}

// GetEmployee returns the employee identified by the path id.
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	employee, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}
