package dashboard

import "errors"

var (
	// lookup errors (404)
	ErrChildNotFound  = errors.New("child not found")
	ErrAlertNotFound  = errors.New("alert not found")
	ErrReportNotFound = errors.New("report not found")

	// input errors (400)
	ErrChildNameRequired   = errors.New("child name is required")
	ErrInvalidAge          = errors.New("age must be between 1 and 18")
	ErrReportTypeRequired  = errors.New("report type is required")
	ErrInvalidReportType   = errors.New("unknown report type")
	ErrDescriptionRequired = errors.New("report description is required")
	ErrInvalidScreenLimit  = errors.New("screen time limit must be between 60 and 480 minutes")
)
