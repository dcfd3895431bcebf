package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/devlens/devlens/internal/audit"
	"github.com/devlens/devlens/internal/identity"
	"github.com/devlens/devlens/internal/ledger"
	"github.com/devlens/devlens/internal/server/middleware"
	"github.com/devlens/devlens/internal/talent"
)

// SubscriptionStore persists subscription rows keyed by identity
type SubscriptionStore interface {
	GetSubscription(ctx context.Context, identityKey string) (*ledger.Subscription, error)
	UpsertSubscription(ctx context.Context, identityKey string, sub ledger.Subscription) error
}

// PipelineStore persists talent pipelines keyed by identity
type PipelineStore interface {
	GetPipeline(ctx context.Context, identityKey string) (talent.Pipeline, error)
	UpsertPipeline(ctx context.Context, identityKey string, pipeline talent.Pipeline) error
}

// AnalysisRequest is the body of POST /analyses
type AnalysisRequest struct {
	Username string `json:"username"`
}

// ComparisonRequest is the body of POST /comparisons
type ComparisonRequest struct {
	User1          string `json:"user1"`
	User2          string `json:"user2"`
	JobDescription string `json:"job_description,omitempty"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Username string `json:"username"`
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// InterviewQuestionsRequest is the body of POST /interview-questions
type InterviewQuestionsRequest struct {
	Username       string `json:"username"`
	JobDescription string `json:"job_description"`
}

// ResumeScoreRequest is the body of POST /resume-score
type ResumeScoreRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// loadSubscription reads the identity's subscription, falling back to a
// fresh free-tier one when no row exists yet.
func (s *Server) loadSubscription(ctx context.Context, id identity.Identity) (ledger.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id.Key())
	if err != nil {
		return ledger.Subscription{}, err
	}
	if sub == nil {
		return ledger.NewSubscription(), nil
	}
	return *sub, nil
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		s.errorResponse(w, http.StatusBadRequest, "Username is required")
		return
	}

	sub, err := s.loadSubscription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	runner := audit.NewRunner(s.fetcher, s.analyzer, nil)
	result := runner.Run(r.Context(), req.Username, sub)
	if result.Err != nil {
		s.errorResponse(w, HTTPStatus(result.Err), result.Err.Error())
		return
	}

	if err := s.store.UpsertSubscription(r.Context(), id.Key(), result.Subscription); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user":         result.UserData,
		"analysis":     result.Analysis,
		"subscription": result.Subscription,
	})
}

func (s *Server) handleStreamAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		s.errorResponse(w, http.StatusBadRequest, "Username is required")
		return
	}

	sub, err := s.loadSubscription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// The guard is checked before switching the response to SSE so
	// exhausted credits still surface as a plain 402.
	if !ledger.CanAnalyze(sub) {
		s.errorResponse(w, http.StatusPaymentRequired, audit.ErrNoCredits.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	runner := audit.NewRunner(s.fetcher, s.analyzer, sse.WriteProgress)

	result := runner.Run(r.Context(), req.Username, sub)
	if result.Err != nil {
		sse.WriteError(result.Err.Error())
		return
	}

	if err := s.store.UpsertSubscription(r.Context(), id.Key(), result.Subscription); err != nil {
		sse.WriteError("failed to save subscription: " + err.Error())
		return
	}

	sse.WriteComplete(map[string]any{
		"user":         result.UserData,
		"analysis":     result.Analysis,
		"subscription": result.Subscription,
	})
}

func (s *Server) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.User1 == "" || req.User2 == "" {
		s.errorResponse(w, http.StatusBadRequest, "Two usernames are required")
		return
	}

	sub, err := s.loadSubscription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	runner := audit.NewRunner(s.fetcher, s.analyzer, nil)
	result := runner.RunComparison(r.Context(), req.User1, req.User2, req.JobDescription, sub)
	if result.Err != nil {
		s.errorResponse(w, HTTPStatus(result.Err), result.Err.Error())
		return
	}

	if err := s.store.UpsertSubscription(r.Context(), id.Key(), result.Subscription); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user1":        result.User1,
		"user2":        result.User2,
		"comparison":   result.Comparison,
		"subscription": result.Subscription,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetIdentity(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.assistant == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Question == "" {
		s.errorResponse(w, http.StatusBadRequest, "Username and question are required")
		return
	}

	// Chat does not consume a credit; it only references an audit that
	// already paid for itself.
	answer, err := s.assistant.ChatAboutProfile(r.Context(), req.Username, req.Question, req.Context)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetIdentity(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.assistant == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Interview questions are not configured")
		return
	}

	var req InterviewQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "Username and job description are required")
		return
	}

	// Like chat, question generation rides on an audit that already paid
	// for itself; no credit is consumed.
	questions, err := s.assistant.GenerateInterviewQuestions(r.Context(), req.Username, req.JobDescription)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, questions)
}

func (s *Server) handleResumeScore(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetIdentity(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.assistant == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Resume scoring is not configured")
		return
	}

	var req ResumeScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ResumeText == "" || req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "Resume text and job description are required")
		return
	}

	score, err := s.assistant.ScoreResume(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, score)
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.loadSubscription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sub)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.loadSubscription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	upgraded := ledger.Upgrade(sub)
	if err := s.store.UpsertSubscription(r.Context(), id.Key(), upgraded); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, upgraded)
}
