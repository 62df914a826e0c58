// Package controller implements the core business logic (service layer)
// for writing Employee records, orchestrating repository operations
// and sending relevant events.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, employee *models.Employee)
}

// Repository defines the storage interface for Employee documents.
type Repository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	SaveEmployee(ctx context.Context, employee *models.Employee) (bool, error)
	GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

// EmployeeService provides methods to write employees via repository
// operations and event production.
type EmployeeService struct {
	repo     Repository
	producer EventProducer
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	inflight sync.WaitGroup
}

// NewEmployeeService constructs an EmployeeService with a repository,
// an event producer, and a logger.
func NewEmployeeService(repo Repository, producer EventProducer, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		producer: producer,
		validate: validator.New(),
		logger:   logger.Named("employee_service"),
		now:      time.Now,
	}
}

// CreateEmployee validates the record, assigns its identifier and any
// missing client timestamps, persists it and triggers an event.
func (s *EmployeeService) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	if employee == nil {
		return nil, fmt.Errorf("%w: nil employee", e.ErrInvalidInput)
	}
	if err := s.validate.Struct(employee); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	now := s.now()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	if employee.UpdatedAt.IsZero() {
		employee.UpdatedAt = now
	}
	// Stored dates have millisecond precision.
	employee.CreatedAt = employee.CreatedAt.UTC().Truncate(time.Millisecond)
	employee.UpdatedAt = employee.UpdatedAt.UTC().Truncate(time.Millisecond)
	if employee.Hobbies == nil {
		employee.Hobbies = []string{}
	}

	employee.ID = primitive.NewObjectID()
	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		employee.ID = primitive.NilObjectID
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	// The caller may keep mutating employee; the event carries the created state.
	snapshot := employee.Clone()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.producer.Produce(events.EmployeeCreated, snapshot)
	}()
	return employee, nil
}

// Wait blocks until every event triggered by this service has been handed
// to the producer. Call it before closing the producer.
func (s *EmployeeService) Wait() {
	s.inflight.Wait()
}

// SaveEmployee writes the current state of an already created employee.
// It reports false when the stored document was already identical.
func (s *EmployeeService) SaveEmployee(ctx context.Context, employee *models.Employee) (bool, error) {
	if employee == nil || employee.ID.IsZero() {
		return false, fmt.Errorf("%w: employee has no id", e.ErrInvalidInput)
	}
	if err := s.validate.Struct(employee); err != nil {
		return false, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	modified, err := s.repo.SaveEmployee(ctx, employee)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("failed to save employee: %w", err)
	}
	if !modified {
		s.logger.Debug("Save was a no-op", zap.String("employee_id", employee.ID.Hex()))
	}
	return modified, nil
}

// GetEmployee retrieves an Employee by ID, returning an error if not found.
func (s *EmployeeService) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}
