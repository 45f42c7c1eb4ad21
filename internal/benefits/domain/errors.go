package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProgramNotFound      = errors.New("program not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrTodoNotFound         = errors.New("todo not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAdminProgramNotFound = errors.New("admin program not found")
	ErrIntegrationNotFound  = errors.New("integration not found")
	ErrRecordNotFound       = errors.New("record not found")

	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStepOutOfOrder    = errors.New("funnel step out of order")
	ErrFunnelIncomplete  = errors.New("funnel is not complete")
	ErrConflict          = errors.New("concurrent write conflict")
)
