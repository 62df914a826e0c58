// Package seed writes a sample employee record: one create followed by
// one save. Failures are logged and never returned.
package seed

import (
	"context"
	"time"

	"github.com/gartstein/employees/internal/employee/models"
	"github.com/gartstein/employees/internal/pkg/utils"
	"go.uber.org/zap"
)

// Writer is the part of the employee service the seed needs.
type Writer interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	SaveEmployee(ctx context.Context, employee *models.Employee) (bool, error)
}

// SampleEmployee returns the record written by Run, stamped with now.
func SampleEmployee(now time.Time) *models.Employee {
	return &models.Employee{
		Name:  "John date",
		Email: "johndoe123@example.com",
		Age:   utils.Ptr(35),
		Address: &models.Address{
			Landmark: "tea shop",
			Street:   "123 Main St",
			City:     "Anytown",
			State:    "CA",
			Country:  "GB",
		},
		Hobbies:     []string{"Eating", "sleeping", "cooking"},
		Designation: "SDET-II",
		PreviousCompanies: &models.PreviousCompany{
			CompanyName:       "xfgbhn",
			CompanyType:       "Healthcare",
			YearsOfExperience: 8.6,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Run creates employee and then saves it again.
func Run(ctx context.Context, w Writer, employee *models.Employee, logger *zap.Logger) {
	logger = logger.Named("seed")

	created, err := w.CreateEmployee(ctx, employee)
	if err != nil {
		logger.Error("Failed to create employee", zap.String("error", err.Error()))
		return
	}
	logger.Info("Employee created",
		zap.String("employee_id", created.ID.Hex()),
		zap.Any("employee", created),
	)

	modified, err := w.SaveEmployee(ctx, created)
	if err != nil {
		logger.Error("Failed to save employee", zap.String("error", err.Error()))
		return
	}
	logger.Info("Employee saved",
		zap.String("employee_id", created.ID.Hex()),
		zap.Bool("modified", modified),
	)
}
