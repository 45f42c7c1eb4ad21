package domain

import "time"

// Record is implemented by every entity stored in an id-keyed collection.
type Record interface {
	RecordID() string
}

// UserProfile is written when the funnel completes and overwritten wholesale on edit.
type UserProfile struct {
	UserID        string    `json:"user_id"`
	HouseholdSize int       `json:"household_size"`
	HouseholdType string    `json:"household_type"`
	IncomeBracket string    `json:"income_bracket"`
	ZipCode       string    `json:"zip_code"`
	State         string    `json:"state,omitempty"`
	Needs         []string  `json:"needs"`
	Language      string    `json:"language"`
	AudienceTier  string    `json:"audience_tier,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Program is a catalog entry. State is empty for federal programs.
type Program struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Agency        string      `json:"agency"`
	State         string      `json:"state,omitempty"`
	Eligibility   string      `json:"eligibility"`
	Languages     []string    `json:"languages,omitempty"`
	AudienceTiers []string    `json:"audience_tiers,omitempty"`
	Contact       ContactInfo `json:"contact"`
	ApplyURL      string      `json:"apply_url,omitempty"`
}

func (p Program) RecordID() string { return p.ID }

// Federal reports whether the program is offered nationwide.
func (p Program) Federal() bool { return p.State == "" }

// Application status values
const (
	StatusStarted   = "started"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusDenied    = "denied"
)

type Application struct {
	ID          string     `json:"id"`
	ProgramID   string     `json:"program_id"`
	ProgramName string     `json:"program_name,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a Application) RecordID() string { return a.ID }

// Todo categories
const (
	TodoUrgent    = "urgent"
	TodoImportant = "important"
	TodoRoutine   = "routine"
)

type TodoItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Completed     bool       `json:"completed"`
	ApplicationID *string    `json:"application_id,omitempty"`
	ProgramID     *string    `json:"program_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t TodoItem) RecordID() string { return t.ID }

// Notification types
const (
	NotificationWelcome      = "welcome"
	NotificationReminder     = "reminder"
	NotificationDeadline     = "deadline"
	NotificationStatusUpdate = "status_update"
	NotificationNewProgram   = "new_program"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ProgramID string    `json:"program_id,omitempty"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

func (n Notification) RecordID() string { return n.ID }

// Admin program states
const (
	AdminProgramActive   = "active"
	AdminProgramDraft    = "draft"
	AdminProgramArchived = "archived"
)

type AdminProgram struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	Applicants   int       `json:"applicants"`
	ApprovalRate float64   `json:"approval_rate"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p AdminProgram) RecordID() string { return p.ID }

type APIIntegration struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Endpoint      string    `json:"endpoint"`
	Status        string    `json:"status"`
	Uptime        float64   `json:"uptime"`
	SuccessRate   float64   `json:"success_rate"`
	RequestsToday int       `json:"requests_today"`
	LastSync      time.Time `json:"last_sync"`
	DataSource    string    `json:"data_source"`
}

func (i APIIntegration) RecordID() string { return i.ID }

type SecurityAudit struct {
	ID          string    `json:"id"`
	Event       string    `json:"event"`
	Severity    string    `json:"severity"`
	Actor       string    `json:"actor"`
	Description string    `json:"description"`
	Resolved    bool      `json:"resolved"`
	Timestamp   time.Time `json:"timestamp"`
}

func (s SecurityAudit) RecordID() string { return s.ID }

type DataEncryption struct {
	ID             string    `json:"id"`
	DataType       string    `json:"data_type"`
	Algorithm      string    `json:"algorithm"`
	AtRest         bool      `json:"at_rest"`
	InTransit      bool      `json:"in_transit"`
	HIPAACompliant bool      `json:"hipaa_compliant"`
	SOC2Compliant  bool      `json:"soc2_compliant"`
	LastRotated    time.Time `json:"last_rotated"`
}

func (d DataEncryption) RecordID() string { return d.ID }
