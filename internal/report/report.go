// Package report turns per-user totals from a time-tracking source into
// table rows.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/autoprep/internal/model"
	"github.com/Tiliavir/autoprep/internal/timecalc"
)

// Source is where users and their totals come from. *clockify.Client
// implements it.
type Source interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UserTotal(ctx context.Context, userID string, r timecalc.DateRange) (model.ReportTotal, bool, error)
}

// Policy decides what a failed per-user report does to the whole run.
type Policy int

const (
	// FailFast aborts the run on the first failure and yields no rows.
	FailFast Policy = iota
	// BestEffort keeps the rows of every user that succeeded and records
	// the rest in Outcome.Failed.
	BestEffort
)

func (p Policy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "fail-fast"
}

// errNotAttempted marks users whose report was never requested because the
// run had already failed.
var errNotAttempted = errors.New("not attempted")

// Result is the outcome for a single user. Row is nil when the user had no
// totals or the report failed.
type Result struct {
	User model.User
	Row  *model.Row
	Err  error
}

// Failure pairs a user with the error of its report call.
type Failure struct {
	User model.User
	Err  error
}

// Outcome is the completed product of one run.
type Outcome struct {
	Range   timecalc.DateRange
	Rows    []model.Row
	Skipped []model.User
	Failed  []Failure
}

// Service runs retrievals against a Source.
type Service struct {
	source      Source
	policy      Policy
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy sets the failure policy. The default is FailFast.
func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithConcurrency sets how many per-user reports may be in flight at once.
// Values below 1 mean sequential.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// NewService creates a Service reading from src.
func NewService(src Source, opts ...Option) *Service {
	s := &Service{source: src, policy: FailFast, concurrency: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FormatRow builds the displayed row for a user's total.
func FormatRow(u model.User, t model.ReportTotal) model.Row {
	h, m := timecalc.ClockParts(t.TotalSeconds)
	return model.Row{Member: u.Name, Hours: h, Minutes: m, TotalSeconds: t.TotalSeconds}
}

// Collect lists users and fetches every user's total over r. Results are in
// listing order regardless of concurrency. Under FailFast the first failure
// stops outstanding work and is returned alongside the partial results.
func (s *Service) Collect(ctx context.Context, r timecalc.DateRange) ([]Result, error) {
	users, err := s.source.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	results := make([]Result, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, u := range users {
		i, u := i, u
		results[i].User = u
		g.Go(func() error {
			if s.policy == FailFast && gctx.Err() != nil {
				results[i].Err = errNotAttempted
				return nil
			}
			total, ok, err := s.source.UserTotal(gctx, u.ID, r)
			if err != nil {
				log.Debug().Str("user", u.Name).Err(err).Msg("report failed")
				results[i].Err = err
				if s.policy == FailFast {
					return fmt.Errorf("report for %s: %w", u.Name, err)
				}
				return nil
			}
			if !ok {
				log.Debug().Str("user", u.Name).Msg("no tracked time, skipping")
				return nil
			}
			row := FormatRow(u, total)
			results[i].Row = &row
			return nil
		})
	}

	return results, g.Wait()
}

// Run performs one retrieval and applies the service's policy.
func (s *Service) Run(ctx context.Context, r timecalc.DateRange) (Outcome, error) {
	results, err := s.Collect(ctx, r)
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Range: r, Rows: []model.Row{}}
	for _, res := range results {
		switch {
		case res.Err != nil:
			out.Failed = append(out.Failed, Failure{User: res.User, Err: res.Err})
		case res.Row == nil:
			out.Skipped = append(out.Skipped, res.User)
		default:
			out.Rows = append(out.Rows, *res.Row)
		}
	}
	log.Debug().
		Int("rows", len(out.Rows)).
		Int("skipped", len(out.Skipped)).
		Int("failed", len(out.Failed)).
		Str("policy", s.policy.String()).
		Msg("retrieval finished")
	return out, nil
}
