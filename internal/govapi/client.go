package govapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// DataSource tells callers whether a result came from a government endpoint or
// from the bundled catalog.
type DataSource string

const (
	SourceLive   DataSource = "live"
	SourceStatic DataSource = "static"
)

var ErrUnknownState = errors.New("unknown state code")

const DefaultCacheTTL = 5 * time.Minute

// Fallback supplies static program data when the network is off or failing.
type Fallback interface {
	Federal() []domain.Program
	ByState(state string) []domain.Program
	Get(id string) (domain.Program, error)
}

type Options struct {
	Mode     DataSource
	Timeout  time.Duration
	Rate     float64 // requests per second; <= 0 disables pacing
	Burst    int
	CacheTTL time.Duration
	APIKey   string

	// OAuth, when set, wraps outbound requests with a client-credentials token source.
	OAuth *clientcredentials.Config
}

type ProgramsResult struct {
	Programs  []domain.Program `json:"programs"`
	Source    DataSource       `json:"source"`
	Endpoint  string           `json:"endpoint"`
	FetchedAt time.Time        `json:"fetched_at"`
}

type EligibilityResult struct {
	ProgramID    string     `json:"program_id"`
	Requirements string     `json:"requirements"`
	Source       DataSource `json:"source"`
	Endpoint     string     `json:"endpoint"`
	FetchedAt    time.Time  `json:"fetched_at"`
}

type ProbeResult struct {
	EndpointID string        `json:"endpoint_id"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"status_code,omitempty"`
	Latency    time.Duration `json:"latency_ns"`
	Source     DataSource    `json:"source"`
	Error      string        `json:"error,omitempty"`
}

// Client fetches program data from government endpoints. Failures never reach
// the caller as errors; they are logged and answered from the fallback.
type Client struct {
	mode     DataSource
	http     *http.Client
	limiter  *rate.Limiter
	apiKey   string
	fallback Fallback
	log      *zap.Logger
	now      func() time.Time

	federal Endpoint
	states  map[string]Endpoint

	programs    *ttlCache[ProgramsResult]
	eligibility *ttlCache[EligibilityResult]
}

func NewClient(opts Options, fallback Fallback, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Mode == "" {
		opts.Mode = SourceStatic
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		mode:        opts.Mode,
		http:        newHTTPClient(opts),
		limiter:     rate.NewLimiter(limit, burst),
		apiKey:      opts.APIKey,
		fallback:    fallback,
		log:         log.Named("govapi"),
		now:         time.Now,
		federal:     FederalDirectory,
		states:      StateEndpoints(),
		programs:    newTTLCache[ProgramsResult](opts.CacheTTL),
		eligibility: newTTLCache[EligibilityResult](opts.CacheTTL),
	}
}

func newHTTPClient(opts Options) *http.Client {
	base := &http.Client{Timeout: opts.Timeout}
	if opts.OAuth == nil {
		return base
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	hc := opts.OAuth.Client(ctx)
	hc.Timeout = opts.Timeout
	return hc
}

func (c *Client) Mode() DataSource { return c.mode }

func (c *Client) FederalPrograms(ctx context.Context) (ProgramsResult, error) {
	return c.fetchPrograms(ctx, KindFederal, c.federal, c.fallback.Federal)
}

func (c *Client) StatePrograms(ctx context.Context, state string) (ProgramsResult, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	ep, ok := c.states[code]
	if !ok {
		return ProgramsResult{}, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	return c.fetchPrograms(ctx, KindState, ep, func() []domain.Program {
		return c.fallback.ByState(code)
	})
}

// ProgramEligibility returns the eligibility text for a catalog program. The
// program must exist in the fallback catalog so the right endpoint can be chosen.
func (c *Client) ProgramEligibility(ctx context.Context, programID string) (EligibilityResult, error) {
	prog, err := c.fallback.Get(programID)
	if err != nil {
		return EligibilityResult{}, err
	}

	ep := c.federal
	if !prog.Federal() {
		if st, ok := c.states[prog.State]; ok {
			ep = st
		}
	}
	url := strings.TrimRight(ep.URL, "/") + "/" + prog.ID + "/eligibility"

	static := EligibilityResult{
		ProgramID:    prog.ID,
		Requirements: prog.Eligibility,
		Source:       SourceStatic,
		Endpoint:     ep.ID,
		FetchedAt:    c.now(),
	}

	if c.mode == SourceStatic {
		metrics.GovAPIFetches.WithLabelValues("eligibility", string(SourceStatic)).Inc()
		return static, nil
	}
	if cached, ok := c.eligibility.get(url); ok {
		return cached, nil
	}

	var body struct {
		ProgramID   string `json:"program_id"`
		Eligibility string `json:"eligibility"`
	}
	if err := c.getJSON(ctx, url, &body); err != nil {
		if ctx.Err() != nil {
			return EligibilityResult{}, ctx.Err()
		}
		c.log.Warn("eligibility fetch failed, using static data",
			zap.String("endpoint", ep.ID), zap.String("program_id", prog.ID), zap.Error(err))
		metrics.GovAPIFetches.WithLabelValues("eligibility", string(SourceStatic)).Inc()
		return static, nil
	}

	res := EligibilityResult{
		ProgramID:    prog.ID,
		Requirements: body.Eligibility,
		Source:       SourceLive,
		Endpoint:     ep.ID,
		FetchedAt:    c.now(),
	}
	c.eligibility.set(url, res)
	metrics.GovAPIFetches.WithLabelValues("eligibility", string(SourceLive)).Inc()
	return res, nil
}

func (c *Client) fetchPrograms(ctx context.Context, kind string, ep Endpoint, fallback func() []domain.Program) (ProgramsResult, error) {
	static := func() ProgramsResult {
		metrics.GovAPIFetches.WithLabelValues(kind, string(SourceStatic)).Inc()
		return ProgramsResult{
			Programs:  nonNil(fallback()),
			Source:    SourceStatic,
			Endpoint:  ep.ID,
			FetchedAt: c.now(),
		}
	}

	if c.mode == SourceStatic {
		return static(), nil
	}
	if cached, ok := c.programs.get(ep.URL); ok {
		return cached, nil
	}

	var body struct {
		Programs []domain.Program `json:"programs"`
	}
	if err := c.getJSON(ctx, ep.URL, &body); err != nil {
		if ctx.Err() != nil {
			return ProgramsResult{}, ctx.Err()
		}
		c.log.Warn("program fetch failed, using static data",
			zap.String("kind", kind), zap.String("endpoint", ep.ID), zap.Error(err))
		return static(), nil
	}

	res := ProgramsResult{
		Programs:  nonNil(body.Programs),
		Source:    SourceLive,
		Endpoint:  ep.ID,
		FetchedAt: c.now(),
	}
	c.programs.set(ep.URL, res)
	metrics.GovAPIFetches.WithLabelValues(kind, string(SourceLive)).Inc()
	return res, nil
}

// Probe issues a single GET against ep and reports whether it answered 2xx.
// In static mode nothing is sent.
func (c *Client) Probe(ctx context.Context, ep Endpoint) ProbeResult {
	res := ProbeResult{EndpointID: ep.ID, Source: c.mode}
	if c.mode == SourceStatic {
		res.Error = "live data source disabled"
		return res
	}

	start := c.now()
	resp, err := c.do(ctx, ep.URL)
	res.Latency = c.now().Sub(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	res.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 300
	return res
}

// ClearCache drops every cached live result and returns how many were dropped.
func (c *Client) ClearCache() int {
	return c.programs.clear() + c.eligibility.clear()
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	return c.http.Do(req)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func nonNil(p []domain.Program) []domain.Program {
	if p == nil {
		return []domain.Program{}
	}
	return p
}
