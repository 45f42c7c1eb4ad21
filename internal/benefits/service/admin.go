package service

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/google/uuid"
)

// Integration status values
const (
	IntegrationConnected = "connected"
	IntegrationError     = "error"
	IntegrationStatic    = "static"
)

// AdminService backs the admin console. Apart from program CRUD, its figures
// are generated: integration health is random until an endpoint is probed,
// and the audit and encryption tables are fixed demo content.
type AdminService struct {
	store   *repository.Store
	catalog *catalog.Catalog
	gov     *govapi.Client

	randFloat func() float64
	randN     func(n int) int
}

func NewAdminService(store *repository.Store, cat *catalog.Catalog, gov *govapi.Client) *AdminService {
	return &AdminService{
		store:     store,
		catalog:   cat,
		gov:       gov,
		randFloat: rand.Float64,
		randN:     rand.IntN,
	}
}

// seeded lists an admin collection, filling it from gen the first time it is read.
func seeded[T domain.Record](ctx context.Context, c *repository.Collection[T], gen func() []T) ([]T, error) {
	items, err := c.List(ctx, repository.AdminOwner)
	if err != nil || len(items) > 0 {
		return items, err
	}
	return c.Modify(ctx, repository.AdminOwner, func(cur []T) []T {
		if len(cur) > 0 {
			return cur
		}
		return gen()
	})
}

func (s *AdminService) between(lo, hi float64) float64 {
	return math.Round((lo+(hi-lo)*s.randFloat())*10) / 10
}

func (s *AdminService) ListPrograms(ctx context.Context) ([]domain.AdminProgram, error) {
	return seeded(ctx, s.store.AdminPrograms, func() []domain.AdminProgram {
		now := time.Now().UTC()
		out := make([]domain.AdminProgram, 0)
		for _, p := range s.catalog.All() {
			out = append(out, domain.AdminProgram{
				ID:           p.ID,
				Name:         p.Name,
				Category:     p.Category,
				Description:  p.Description,
				Status:       domain.AdminProgramActive,
				Applicants:   100 + s.randN(4900),
				ApprovalRate: s.between(55, 95),
				UpdatedAt:    now,
			})
		}
		return out
	})
}

func (s *AdminService) GetProgram(ctx context.Context, id string) (domain.AdminProgram, error) {
	return s.store.AdminPrograms.Get(ctx, repository.AdminOwner, id)
}

func (s *AdminService) CreateProgram(ctx context.Context, req domain.AdminProgramRequest) (domain.AdminProgram, error) {
	if err := validateAdminProgram(&req); err != nil {
		return domain.AdminProgram{}, err
	}
	if _, err := s.ListPrograms(ctx); err != nil {
		return domain.AdminProgram{}, err
	}
	p := domain.AdminProgram{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Status:      req.Status,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.store.AdminPrograms.Save(ctx, repository.AdminOwner, p); err != nil {
		return domain.AdminProgram{}, err
	}
	return p, nil
}

func (s *AdminService) UpdateProgram(ctx context.Context, id string, req domain.AdminProgramRequest) (domain.AdminProgram, error) {
	if err := validateAdminProgram(&req); err != nil {
		return domain.AdminProgram{}, err
	}
	return s.store.AdminPrograms.Update(ctx, repository.AdminOwner, id, func(p *domain.AdminProgram) error {
		p.Name = req.Name
		p.Category = req.Category
		p.Description = req.Description
		p.Status = req.Status
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *AdminService) DeleteProgram(ctx context.Context, id string) error {
	removed, err := s.store.AdminPrograms.Delete(ctx, repository.AdminOwner, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrAdminProgramNotFound
	}
	return nil
}

func validateAdminProgram(req *domain.AdminProgramRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return invalid("name is required")
	}
	if !domain.IsValidNeed(req.Category) {
		return domain.ErrInvalidCategory
	}
	switch req.Status {
	case "":
		req.Status = domain.AdminProgramDraft
	case domain.AdminProgramActive, domain.AdminProgramDraft, domain.AdminProgramArchived:
	default:
		return invalid("unknown program status %q", req.Status)
	}
	return nil
}

// Integrations lists one integration per government endpoint.
func (s *AdminService) Integrations(ctx context.Context) ([]domain.APIIntegration, error) {
	return seeded(ctx, s.store.Integrations, func() []domain.APIIntegration {
		now := time.Now().UTC()
		eps := append([]govapi.Endpoint{govapi.FederalDirectory}, govapi.AgencyEndpoints...)
		out := make([]domain.APIIntegration, 0, len(eps))
		for _, ep := range eps {
			out = append(out, domain.APIIntegration{
				ID:            ep.ID,
				Name:          ep.Name,
				Endpoint:      ep.URL,
				Status:        IntegrationConnected,
				Uptime:        s.between(95, 99.9),
				SuccessRate:   s.between(90, 99.9),
				RequestsToday: 100 + s.randN(4900),
				LastSync:      now.Add(-time.Duration(s.randN(60)) * time.Minute),
				DataSource:    string(s.gov.Mode()),
			})
		}
		return out
	})
}

// TestIntegration probes the integration's endpoint and records the outcome.
func (s *AdminService) TestIntegration(ctx context.Context, id string) (domain.APIIntegration, govapi.ProbeResult, error) {
	if _, err := s.Integrations(ctx); err != nil {
		return domain.APIIntegration{}, govapi.ProbeResult{}, err
	}
	current, err := s.store.Integrations.Get(ctx, repository.AdminOwner, id)
	if err != nil {
		return domain.APIIntegration{}, govapi.ProbeResult{}, err
	}

	res := s.gov.Probe(ctx, govapi.Endpoint{ID: current.ID, Name: current.Name, URL: current.Endpoint})

	updated, err := s.store.Integrations.Update(ctx, repository.AdminOwner, id, func(in *domain.APIIntegration) error {
		switch {
		case res.Source == govapi.SourceStatic:
			in.Status = IntegrationStatic
		case res.Reachable:
			in.Status = IntegrationConnected
		default:
			in.Status = IntegrationError
		}
		in.DataSource = string(res.Source)
		in.LastSync = time.Now().UTC()
		in.RequestsToday++
		return nil
	})
	return updated, res, err
}

// ClearRemoteCache forgets cached live government API results so the next
// fetch goes back to the endpoints.
func (s *AdminService) ClearRemoteCache() int {
	return s.gov.ClearCache()
}

var auditTemplates = []struct {
	event, severity, actor, description string
	resolved                            bool
}{
	{"login_failure", "medium", "unknown", "Repeated failed sign-in attempts from one address", true},
	{"permission_change", "low", "admin", "Caseworker role granted to a new account", true},
	{"data_export", "high", "admin", "Bulk export of application records", false},
	{"api_key_rotation", "low", "system", "Government API credentials rotated", true},
	{"suspicious_activity", "critical", "unknown", "Unusual request volume against the eligibility endpoint", false},
	{"policy_update", "low", "admin", "Data retention policy updated", true},
}

func (s *AdminService) SecurityAudits(ctx context.Context) ([]domain.SecurityAudit, error) {
	audits, err := seeded(ctx, s.store.SecurityAudits, func() []domain.SecurityAudit {
		now := time.Now().UTC()
		out := make([]domain.SecurityAudit, 0, len(auditTemplates))
		for _, t := range auditTemplates {
			out = append(out, domain.SecurityAudit{
				ID:          uuid.NewString(),
				Event:       t.event,
				Severity:    t.severity,
				Actor:       t.actor,
				Description: t.description,
				Resolved:    t.resolved,
				Timestamp:   now.Add(-time.Duration(s.randN(7*24)) * time.Hour),
			})
		}
		return out
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(audits, func(i, j int) bool { return audits[i].Timestamp.After(audits[j].Timestamp) })
	return audits, nil
}

// Encryption returns the data protection table. The compliance flags are fixed values.
func (s *AdminService) Encryption(ctx context.Context) ([]domain.DataEncryption, error) {
	return seeded(ctx, s.store.Encryption, func() []domain.DataEncryption {
		rotated := time.Now().UTC().AddDate(0, -1, 0)
		return []domain.DataEncryption{
			{ID: "pii", DataType: "Personal information", Algorithm: "AES-256-GCM", AtRest: true, InTransit: true, HIPAACompliant: true, SOC2Compliant: true, LastRotated: rotated},
			{ID: "health", DataType: "Health records", Algorithm: "AES-256-GCM", AtRest: true, InTransit: true, HIPAACompliant: true, SOC2Compliant: true, LastRotated: rotated},
			{ID: "financial", DataType: "Income and financial data", Algorithm: "AES-256-CBC", AtRest: true, InTransit: true, HIPAACompliant: false, SOC2Compliant: true, LastRotated: rotated},
			{ID: "documents", DataType: "Uploaded documents", Algorithm: "AES-256-GCM", AtRest: true, InTransit: true, HIPAACompliant: true, SOC2Compliant: false, LastRotated: rotated.AddDate(0, -2, 0)},
			{ID: "sessions", DataType: "Session tokens", Algorithm: "ChaCha20-Poly1305", AtRest: false, InTransit: true, HIPAACompliant: false, SOC2Compliant: true, LastRotated: rotated},
		}
	})
}
