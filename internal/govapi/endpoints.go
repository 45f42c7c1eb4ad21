package govapi

import (
	"fmt"
	"sort"
	"strings"
)

// Endpoint kinds
const (
	KindFederal = "federal"
	KindState   = "state"
	KindAgency  = "agency"
)

// Endpoint is one entry of the hardcoded government API table. None of these
// URLs is verified at startup; a live fetch that fails falls back to static data.
type Endpoint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// FederalDirectory lists federal programs across agencies.
var FederalDirectory = Endpoint{
	ID:   "benefits-gov",
	Name: "Benefits.gov Program Directory",
	Kind: KindFederal,
	URL:  "https://api.benefits.gov/v1/programs",
}

var AgencyEndpoints = []Endpoint{
	{ID: "usda-fns", Name: "USDA Food and Nutrition Service", Kind: KindAgency, URL: "https://api.fns.usda.gov/v1/programs"},
	{ID: "ssa", Name: "Social Security Administration", Kind: KindAgency, URL: "https://api.ssa.gov/v1/programs"},
	{ID: "hud", Name: "Department of Housing and Urban Development", Kind: KindAgency, URL: "https://api.hud.gov/v1/programs"},
	{ID: "va", Name: "Department of Veterans Affairs", Kind: KindAgency, URL: "https://api.va.gov/services/benefits/v1/programs"},
	{ID: "cms", Name: "Centers for Medicare & Medicaid Services", Kind: KindAgency, URL: "https://api.medicaid.gov/v1/programs"},
	{ID: "acf", Name: "Administration for Children and Families", Kind: KindAgency, URL: "https://api.acf.hhs.gov/v1/programs"},
	{ID: "irs", Name: "Internal Revenue Service", Kind: KindAgency, URL: "https://api.irs.gov/v1/credits"},
	{ID: "dol", Name: "Department of Labor", Kind: KindAgency, URL: "https://api.dol.gov/v1/programs"},
	{ID: "ed", Name: "Federal Student Aid", Kind: KindAgency, URL: "https://api.studentaid.gov/v1/programs"},
	{ID: "fcc", Name: "Federal Communications Commission", Kind: KindAgency, URL: "https://api.fcc.gov/lifeline/v1/programs"},
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "DC": "District of Columbia", "FL": "Florida",
	"GA": "Georgia", "HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana",
	"IA": "Iowa", "KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire",
	"NJ": "New Jersey", "NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin",
	"WY": "Wyoming",
}

// StateEndpoints builds the per-state table keyed by USPS code.
func StateEndpoints() map[string]Endpoint {
	out := make(map[string]Endpoint, len(stateNames))
	for code, name := range stateNames {
		out[code] = Endpoint{
			ID:   "state-" + strings.ToLower(code),
			Name: name + " Benefits Portal",
			Kind: KindState,
			URL:  fmt.Sprintf("https://api.%s.gov/benefits/v1/programs", strings.ToLower(code)),
		}
	}
	return out
}

// StateCodes returns the supported state codes, sorted.
func StateCodes() []string {
	out := make([]string, 0, len(stateNames))
	for code := range stateNames {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// LookupAgency finds an agency endpoint by id.
func LookupAgency(id string) (Endpoint, bool) {
	for _, ep := range AgencyEndpoints {
		if ep.ID == id {
			return ep, true
		}
	}
	return Endpoint{}, false
}
