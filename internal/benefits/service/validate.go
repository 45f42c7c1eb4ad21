package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateHousehold(size int, kind string) error {
	if size < 1 || size > 20 {
		return invalid("household_size must be between 1 and 20")
	}
	if !domain.IsValidHouseholdType(kind) {
		return invalid("unknown household_type %q", kind)
	}
	return nil
}

// resolveLocation checks the zip code and returns the state, deriving it from
// the zip when none is given. A given state must agree with the zip.
func resolveLocation(zip, state string) (string, error) {
	if !zipPattern.MatchString(zip) {
		return "", invalid("zip_code must be 5 digits")
	}
	derived, known := catalog.StateForZip(zip)
	state = strings.ToUpper(strings.TrimSpace(state))
	if state == "" {
		if !known {
			return "", invalid("cannot determine state for zip %s", zip)
		}
		return derived, nil
	}
	if err := validateState(state); err != nil {
		return "", err
	}
	if known && derived != state {
		return "", invalid("zip %s is in %s, not %s", zip, derived, state)
	}
	return state, nil
}

func validateState(state string) error {
	if _, ok := govapi.StateEndpoints()[state]; !ok {
		return invalid("unknown state %q", state)
	}
	return nil
}

func validateNeeds(needs []string) error {
	for _, n := range needs {
		if !domain.IsValidNeed(n) {
			return invalid("unknown need %q", n)
		}
	}
	return nil
}

func validateLanguage(lang, tier string) error {
	if !domain.IsValidLanguage(lang) {
		return invalid("unsupported language %q", lang)
	}
	if tier != "" && !slices.Contains(domain.AudienceTiers, tier) {
		return invalid("unknown audience_tier %q", tier)
	}
	return nil
}

// validateProfile checks a profile submitted outside the funnel. Every field
// is optional except that present values must be in range.
func validateProfile(p *domain.UserProfile) error {
	if p.HouseholdSize != 0 || p.HouseholdType != "" {
		if err := validateHousehold(p.HouseholdSize, p.HouseholdType); err != nil {
			return err
		}
	}
	if p.IncomeBracket != "" && !domain.IsValidIncomeBracket(p.IncomeBracket) {
		return invalid("unknown income_bracket %q", p.IncomeBracket)
	}
	switch {
	case p.ZipCode != "":
		state, err := resolveLocation(p.ZipCode, p.State)
		if err != nil {
			return err
		}
		p.State = state
	case p.State != "":
		p.State = strings.ToUpper(strings.TrimSpace(p.State))
		if err := validateState(p.State); err != nil {
			return err
		}
	}
	if err := validateNeeds(p.Needs); err != nil {
		return err
	}
	if p.Language != "" && !domain.IsValidLanguage(p.Language) {
		return invalid("unsupported language %q", p.Language)
	}
	if p.AudienceTier != "" && !slices.Contains(domain.AudienceTiers, p.AudienceTier) {
		return invalid("unknown audience_tier %q", p.AudienceTier)
	}
	return nil
}
