// Package catalog holds the static program records bundled into the binary
// and the matching rules applied to a household profile.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

//go:embed data/programs.json
var programsJSON []byte

// Catalog is read-only after Load.
type Catalog struct {
	programs []domain.Program
	byID     map[string]int
}

// Load parses the embedded program data.
func Load() (*Catalog, error) {
	return Parse(programsJSON)
}

// Parse builds a catalog from a JSON array of programs.
func Parse(data []byte) (*Catalog, error) {
	var programs []domain.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{programs: programs, byID: make(map[string]int, len(programs))}
	for i, p := range programs {
		if p.ID == "" {
			return nil, fmt.Errorf("parse catalog: program at index %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate program id %q", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns a copy of every program.
func (c *Catalog) All() []domain.Program {
	return slices.Clone(c.programs)
}

func (c *Catalog) Get(id string) (domain.Program, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Program{}, domain.ErrProgramNotFound
	}
	return c.programs[i], nil
}

func (c *Catalog) Federal() []domain.Program {
	return c.filter(func(p domain.Program) bool { return p.Federal() })
}

// ByState returns the programs run by one state; the code is a USPS abbreviation.
func (c *Catalog) ByState(state string) []domain.Program {
	state = strings.ToUpper(state)
	return c.filter(func(p domain.Program) bool { return p.State == state })
}

// Categories returns the distinct categories present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	for _, p := range c.programs {
		seen[p.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Query narrows a browse request. Empty fields do not filter.
type Query struct {
	Category     string
	State        string
	AudienceTier string
	Search       string
}

// Filter returns programs matching every non-empty field of q. A state filter
// keeps federal programs alongside that state's own programs.
func (c *Catalog) Filter(q Query) []domain.Program {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	state := strings.ToUpper(q.State)

	return c.filter(func(p domain.Program) bool {
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		if state != "" && !p.Federal() && p.State != state {
			return false
		}
		if q.AudienceTier != "" && !slices.Contains(p.AudienceTiers, q.AudienceTier) {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		return true
	})
}

// Match returns the programs relevant to a profile: category in the profile's
// needs (any category when no needs are set) and the profile language in the
// program's languages (programs without a language list accept any).
// State programs only match a profile in the same state.
func (c *Catalog) Match(profile domain.UserProfile) []domain.Program {
	return c.filter(func(p domain.Program) bool {
		if len(profile.Needs) > 0 && !slices.Contains(profile.Needs, p.Category) {
			return false
		}
		if profile.Language != "" && len(p.Languages) > 0 && !slices.Contains(p.Languages, profile.Language) {
			return false
		}
		if !p.Federal() && !strings.EqualFold(p.State, profile.State) {
			return false
		}
		return true
	})
}

func (c *Catalog) filter(keep func(domain.Program) bool) []domain.Program {
	out := make([]domain.Program, 0, len(c.programs))
	for _, p := range c.programs {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
