package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/autoprep/internal/model"
	"github.com/Tiliavir/autoprep/internal/timecalc"
)

const (
	DefaultAPIBaseURL     = "https://api.clockify.me/api/v1"
	DefaultReportsBaseURL = "https://reports.api.clockify.me/v1"
	DefaultTimeout        = 30 * time.Second
)

// Config holds what a Client needs to talk to one workspace.
type Config struct {
	APIKey           string
	WorkspaceID      string
	ExcludedClientID string // empty disables the client exclusion filter
	APIBaseURL       string
	ReportsBaseURL   string
	Timeout          time.Duration
}

// Client is a Clockify API client bound to a single workspace.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client. Zero values in cfg fall back to the public
// Clockify endpoints and DefaultTimeout.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.ReportsBaseURL == "" {
		cfg.ReportsBaseURL = DefaultReportsBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.ReportsBaseURL = strings.TrimRight(cfg.ReportsBaseURL, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers returns the members of the workspace in the order the service
// lists them.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	const op = "list users"
	endpoint := fmt.Sprintf("%s/workspaces/%s/users", c.cfg.APIBaseURL, url.PathEscape(c.cfg.WorkspaceID))

	body, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var raw []workspaceUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &APIError{Op: op, Kind: ErrMalformedResponse, Err: err}
	}

	users := make([]model.User, 0, len(raw))
	for _, u := range raw {
		if u.ID == "" {
			return nil, &APIError{Op: op, Kind: ErrMalformedResponse, Err: fmt.Errorf("user %q has no id", u.Name)}
		}
		users = append(users, model.User{ID: u.ID, Name: u.Name})
	}
	log.Debug().Int("count", len(users)).Msg("listed workspace users")
	return users, nil
}

// NewDetailedReportRequest builds the report body for a single user over r.
func NewDetailedReportRequest(userID string, r timecalc.DateRange, excludedClientID string) DetailedReportRequest {
	req := DetailedReportRequest{
		DateRangeStart: r.StartStamp(),
		DateRangeEnd:   r.EndStamp(),
		Users: EntityFilter{
			IDs:      []string{userID},
			Contains: containsAll,
			Status:   statusAll,
		},
		DetailedFilter: DetailedFilter{
			SortColumn:           sortByDate,
			Page:                 reportFirstPageNo,
			PageSize:             reportPageSize,
			QuickbooksSelectType: quickbooksAll,
		},
	}
	if excludedClientID != "" {
		req.Clients = &EntityFilter{
			IDs:      []string{excludedClientID},
			Contains: doesNotContain,
			Status:   statusAll,
		}
	}
	return req
}

// UserTotal fetches the total tracked time of one user over r. ok is false
// when the report carries no totals for the user.
func (c *Client) UserTotal(ctx context.Context, userID string, r timecalc.DateRange) (model.ReportTotal, bool, error) {
	const op = "detailed report"
	endpoint := fmt.Sprintf("%s/workspaces/%s/reports/detailed", c.cfg.ReportsBaseURL, url.PathEscape(c.cfg.WorkspaceID))

	payload, err := json.Marshal(NewDetailedReportRequest(userID, r, c.cfg.ExcludedClientID))
	if err != nil {
		return model.ReportTotal{}, false, fmt.Errorf("encoding report request: %w", err)
	}

	body, err := c.do(ctx, op, http.MethodPost, endpoint, payload)
	if err != nil {
		return model.ReportTotal{}, false, err
	}

	var resp detailedReportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ReportTotal{}, false, &APIError{Op: op, Kind: ErrMalformedResponse, Err: err}
	}
	if len(resp.Totals) == 0 || resp.Totals[0] == nil {
		log.Debug().Str("user", userID).Msg("no totals in report")
		return model.ReportTotal{}, false, nil
	}

	first := resp.Totals[0]
	if first.TotalTime == nil {
		return model.ReportTotal{}, false, &APIError{Op: op, Kind: ErrMalformedResponse, Err: fmt.Errorf("totals entry has no totalTime")}
	}
	if *first.TotalTime < 0 {
		return model.ReportTotal{}, false, &APIError{Op: op, Kind: ErrMalformedResponse, Err: fmt.Errorf("negative totalTime %d", *first.TotalTime)}
	}
	return model.ReportTotal{UserID: userID, TotalSeconds: *first.TotalTime}, true, nil
}

// do sends one authenticated request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Kind: ErrTransient, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Kind: ErrTransient, Err: fmt.Errorf("reading response body: %w", err)}
	}

	log.Debug().
		Str("op", op).
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("clockify request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(bytes.TrimSpace(body)),
			Kind:       kindForStatus(resp.StatusCode),
		}
	}
	return body, nil
}
