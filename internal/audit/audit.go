// Package audit orchestrates the profile audit flow: fetch GitHub data,
// run the LLM analysis, and settle the credit ledger.
package audit

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/github"
	"github.com/devlens/devlens/internal/ledger"
)

// Status is the lifecycle state of an audit run
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusLoading Status = "LOADING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Stage identifiers surfaced through the progress callback
const (
	StageFetch    = "fetch"
	StageAnalyze  = "analyze"
	StageFinalize = "finalize"
)

// ErrNoCredits is returned when the subscription cannot cover another
// analysis. The run never leaves IDLE in that case.
var ErrNoCredits = errors.New("analysis limit reached: upgrade to PRO for unlimited audits")

// ProgressEvent represents a progress update during an audit run
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ProgressCallback is called as the run moves through its stages
type ProgressCallback func(event ProgressEvent)

// Fetcher retrieves GitHub profile data
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*github.UserData, error)
}

// ProfileAnalyzer produces structured audits from an LLM
type ProfileAnalyzer interface {
	AnalyzeProfile(ctx context.Context, username string) (*analysis.Analysis, error)
	CompareProfiles(ctx context.Context, user1, user2, jobDescription string) (*analysis.Comparison, error)
}

// Result is the outcome of a single-profile audit
type Result struct {
	Status       Status
	UserData     *github.UserData
	Analysis     *analysis.Analysis
	Subscription ledger.Subscription
	Err          error
}

// ComparisonResult is the outcome of a head-to-head audit
type ComparisonResult struct {
	Status       Status
	User1        *github.UserData
	User2        *github.UserData
	Comparison   *analysis.Comparison
	Subscription ledger.Subscription
	Err          error
}

// Runner drives audit runs against a fetcher and an analyzer
type Runner struct {
	fetcher    Fetcher
	analyzer   ProfileAnalyzer
	onProgress ProgressCallback
}

// NewRunner creates a Runner. onProgress may be nil.
func NewRunner(fetcher Fetcher, analyzer ProfileAnalyzer, onProgress ProgressCallback) *Runner {
	return &Runner{fetcher: fetcher, analyzer: analyzer, onProgress: onProgress}
}

func (r *Runner) emit(stage string, index int, message string) {
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Stage: stage, Index: index, Message: message})
	}
}

// Run audits a single GitHub profile. The credit is consumed only after
// the analysis succeeds; a failed run returns the subscription unchanged.
func (r *Runner) Run(ctx context.Context, username string, sub ledger.Subscription) Result {
	if !ledger.CanAnalyze(sub) {
		return Result{Status: StatusIdle, Subscription: sub, Err: ErrNoCredits}
	}

	r.emit(StageFetch, 0, fmt.Sprintf("Fetching GitHub data for @%s", username))
	userData, err := r.fetcher.FetchUser(ctx, username)
	if err != nil {
		return Result{Status: StatusError, Subscription: sub, Err: err}
	}

	r.emit(StageAnalyze, 1, fmt.Sprintf("Auditing @%s", username))
	result, err := r.analyzer.AnalyzeProfile(ctx, username)
	if err != nil {
		return Result{Status: StatusError, UserData: userData, Subscription: sub, Err: err}
	}

	r.emit(StageFinalize, 2, "Finalizing audit")
	return Result{
		Status:       StatusSuccess,
		UserData:     userData,
		Analysis:     result,
		Subscription: ledger.ConsumeCredit(sub),
	}
}

// RunComparison audits two profiles head to head. Both users are fetched
// concurrently; a single credit covers the whole comparison.
func (r *Runner) RunComparison(ctx context.Context, user1, user2, jobDescription string, sub ledger.Subscription) ComparisonResult {
	if !ledger.CanAnalyze(sub) {
		return ComparisonResult{Status: StatusIdle, Subscription: sub, Err: ErrNoCredits}
	}

	r.emit(StageFetch, 0, fmt.Sprintf("Fetching GitHub data for @%s and @%s", user1, user2))

	var data1, data2 *github.UserData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data1, err = r.fetcher.FetchUser(gctx, user1)
		return err
	})
	g.Go(func() error {
		var err error
		data2, err = r.fetcher.FetchUser(gctx, user2)
		return err
	})
	if err := g.Wait(); err != nil {
		return ComparisonResult{Status: StatusError, Subscription: sub, Err: err}
	}

	r.emit(StageAnalyze, 1, fmt.Sprintf("Comparing @%s and @%s", user1, user2))
	comparison, err := r.analyzer.CompareProfiles(ctx, user1, user2, jobDescription)
	if err != nil {
		return ComparisonResult{Status: StatusError, User1: data1, User2: data2, Subscription: sub, Err: err}
	}

	r.emit(StageFinalize, 2, "Finalizing comparison")
	return ComparisonResult{
		Status:       StatusSuccess,
		User1:        data1,
		User2:        data2,
		Comparison:   comparison,
		Subscription: ledger.ConsumeCredit(sub),
	}
}
