package domain

import "time"

// Funnel steps, in order.
const (
	StepHousehold = "household"
	StepIncome    = "income"
	StepLocation  = "location"
	StepNeeds     = "needs"
	StepLanguage  = "language"
)

var FunnelSteps = []string{StepHousehold, StepIncome, StepLocation, StepNeeds, StepLanguage}

// FunnelAnswers accumulates answers; fields are filled as steps are submitted.
type FunnelAnswers struct {
	HouseholdSize int      `json:"household_size,omitempty"`
	HouseholdType string   `json:"household_type,omitempty"`
	IncomeBracket string   `json:"income_bracket,omitempty"`
	ZipCode       string   `json:"zip_code,omitempty"`
	State         string   `json:"state,omitempty"`
	Needs         []string `json:"needs,omitempty"`
	Language      string   `json:"language,omitempty"`
	AudienceTier  string   `json:"audience_tier,omitempty"`
}

type FunnelState struct {
	Step      int           `json:"step"`
	Answers   FunnelAnswers `json:"answers"`
	Completed bool          `json:"completed"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CurrentStep returns the name of the step awaiting an answer, or "" once all are answered.
func (f FunnelState) CurrentStep() string {
	if f.Step < 0 || f.Step >= len(FunnelSteps) {
		return ""
	}
	return FunnelSteps[f.Step]
}
