package http

import "time"

type profileRequest struct {
	HouseholdSize int      `json:"household_size"`
	HouseholdType string   `json:"household_type"`
	IncomeBracket string   `json:"income_bracket"`
	ZipCode       string   `json:"zip_code"`
	State         string   `json:"state"`
	Needs         []string `json:"needs"`
	Language      string   `json:"language"`
	AudienceTier  string   `json:"audience_tier"`
}

type createApplicationRequest struct {
	ProgramID string `json:"program_id" binding:"required"`
	Notes     string `json:"notes"`
}

type statusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

type todoRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	DueDate       *time.Time `json:"due_date"`
	ApplicationID *string    `json:"application_id"`
	ProgramID     *string    `json:"program_id"`
}

type adminProgramRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
