package domain

import "time"

type CreateApplicationRequest struct {
	ProgramID string
	Notes     string
}

type UpdateApplicationStatusRequest struct {
	Status string
	Notes  *string
}

type TodoRequest struct {
	Title         string
	Description   string
	Category      string
	DueDate       *time.Time
	ApplicationID *string
	ProgramID     *string
}

type AdminProgramRequest struct {
	Name        string
	Category    string
	Description string
	Status      string
}
