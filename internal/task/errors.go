package task

import (
	"fmt"
	"time"

	"github.com/ncobase/voxtask/validation/validator"
)

// ValidationError reports an invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validateFields(dueDate, clock *string, priority *Priority, status *Status) error {
	if dueDate != nil && *dueDate != "" && !validator.IsISODate(*dueDate) {
		return &ValidationError{Field: "dueDate", Message: "Due date must be in YYYY-MM-DD format"}
	}
	if clock != nil && *clock != "" {
		if _, err := time.Parse("15:04", *clock); err != nil {
			return &ValidationError{Field: "time", Message: "Time must be in HH:MM format"}
		}
	}
	if priority != nil && *priority != "" && !priority.Valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("Invalid priority %q", *priority)}
	}
	if status != nil && *status != "" && !status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("Invalid status %q", *status)}
	}
	return nil
}
