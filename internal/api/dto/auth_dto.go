package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GenerateReportRequest payload for starting a report.
type GenerateReportRequest struct {
	ReportType string `json:"reportType" validate:"required,max=64"`
	DateRange  string `json:"dateRange"`
}

// UpdateTaskRequest payload for changing a task status.
type UpdateTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
}

// Validate checks the struct tags and returns per-field messages on failure.
func Validate(s any) (map[string]any, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			fields[fe.Field()] = fmt.Sprintf("%s must be a valid email", fe.Field())
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			fields[fe.Field()] = fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
		}
	}
	return fields, err
}
