package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/db"
	"github.com/devlens/devlens/internal/github"
	"github.com/devlens/devlens/internal/ledger"
	"github.com/devlens/devlens/internal/talent"
)

// fakeStore is an in-memory Store implementation
type fakeStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*db.User
	emails        map[string]uuid.UUID
	subscriptions map[string]ledger.Subscription
	pipelines     map[string]talent.Pipeline
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*db.User),
		emails:        make(map[string]uuid.UUID),
		subscriptions: make(map[string]ledger.Subscription),
		pipelines:     make(map[string]talent.Pipeline),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email}
	f.emails[email] = id
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.emails[email]
	if !ok {
		return nil, nil
	}
	return f.users[id], nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return &ErrUserNotFound{UserID: userID}
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeStore) GetSubscription(_ context.Context, key string) (*ledger.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subscriptions[key]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (f *fakeStore) UpsertSubscription(_ context.Context, key string, sub ledger.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions[key] = sub
	return nil
}

func (f *fakeStore) GetPipeline(_ context.Context, key string) (talent.Pipeline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pipelines[key], nil
}

func (f *fakeStore) UpsertPipeline(_ context.Context, key string, pipeline talent.Pipeline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pipelines[key] = pipeline
	return nil
}

type stubFetcher struct{}

func (stubFetcher) FetchUser(_ context.Context, username string) (*github.UserData, error) {
	if username == "ghost" {
		return nil, &github.NotFoundError{Username: username}
	}
	return &github.UserData{Profile: &github.Profile{Login: username}}, nil
}

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeProfile(_ context.Context, _ string) (*analysis.Analysis, error) {
	return &analysis.Analysis{Seniority: "Senior", Summary: "solid engineer"}, nil
}

func (stubAnalyzer) CompareProfiles(_ context.Context, user1, _, _ string) (*analysis.Comparison, error) {
	return &analysis.Comparison{Winner: user1, SuitabilityScore1: 80, SuitabilityScore2: 60}, nil
}

type stubAssistant struct{}

func (stubAssistant) ChatAboutProfile(_ context.Context, _, _, _ string) (string, error) {
	return "Strong backend profile.", nil
}

func (stubAssistant) GenerateInterviewQuestions(_ context.Context, _, _ string) (*analysis.InterviewQuestions, error) {
	return &analysis.InterviewQuestions{Questions: []analysis.InterviewQuestion{
		{Question: "Explain goroutine scheduling.", Topic: "Go runtime", Difficulty: "Hard"},
	}}, nil
}

func (stubAssistant) ScoreResume(_ context.Context, _, _ string) (*analysis.ResumeScore, error) {
	return &analysis.ResumeScore{Score: 72, Summary: "Good overlap with the stack.", Pros: []string{"Go experience"}, Cons: []string{"No Kubernetes"}}, nil
}

func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("BCRYPT_COST", "10")

	srv, err := New(Config{
		Port:      0,
		Store:     store,
		Fetcher:   stubFetcher{},
		Analyzer:  stubAnalyzer{},
		Assistant: stubAssistant{},
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func anonHeaders() map[string]string {
	return map[string]string{"X-Instance-ID": uuid.NewString()}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "securepass123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane@example.com", registered.User.Email)

	rec = doJSON(t, srv.Handler(), "POST", "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "securepass123",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv.Handler(), "POST", "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	body := map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "securepass123",
	}
	rec := doJSON(t, srv.Handler(), "POST", "/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv.Handler(), "POST", "/auth/register", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAnalysis(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)
	headers := anonHeaders()

	rec := doJSON(t, srv.Handler(), "POST", "/analyses", map[string]string{"username": "octocat"}, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Analysis struct {
			Seniority string `json:"seniority"`
		} `json:"analysis"`
		Subscription ledger.Subscription `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Senior", resp.Analysis.Seniority)
	assert.Equal(t, ledger.DefaultFreeCredits-1, resp.Subscription.CreditsRemaining)
	assert.Equal(t, 1, resp.Subscription.TotalAnalyses)
}

func TestCreateAnalysisUnknownUser(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/analyses", map[string]string{"username": "ghost"}, anonHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "@ghost")
}

func TestCreateAnalysisNoIdentity(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/analyses", map[string]string{"username": "octocat"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAnalysisExhaustedCredits(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)
	headers := anonHeaders()

	// Burn through the free credits directly in the store.
	key := "anonymous:" + headers["X-Instance-ID"]
	require.NoError(t, store.UpsertSubscription(context.Background(), key,
		ledger.Subscription{Tier: ledger.TierFree, CreditsRemaining: 0, TotalAnalyses: 10}))

	rec := doJSON(t, srv.Handler(), "POST", "/analyses", map[string]string{"username": "octocat"}, headers)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	// Failed run must not touch the stored subscription.
	sub, err := store.GetSubscription(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 10, sub.TotalAnalyses)
}

func TestStreamAnalysis(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/analyses/stream", map[string]string{"username": "octocat"}, anonHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: progress")
	assert.Contains(t, body, `"stage":"fetch"`)
	assert.Contains(t, body, `"stage":"analyze"`)
	assert.Contains(t, body, "event: complete")
}

func TestStreamAnalysisExhaustedCredits(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)
	headers := anonHeaders()

	key := "anonymous:" + headers["X-Instance-ID"]
	require.NoError(t, store.UpsertSubscription(context.Background(), key,
		ledger.Subscription{Tier: ledger.TierFree, CreditsRemaining: 0}))

	// The guard fires before the response switches to SSE.
	rec := doJSON(t, srv.Handler(), "POST", "/analyses/stream", map[string]string{"username": "octocat"}, headers)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.NotEqual(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestCreateComparison(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/comparisons", map[string]string{
		"user1": "octocat",
		"user2": "torvalds",
	}, anonHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Comparison struct {
			Winner string `json:"winner"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "octocat", resp.Comparison.Winner)
}

func TestChat(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/chat", map[string]string{
		"username": "octocat",
		"question": "Would they fit a platform team?",
	}, anonHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Strong backend profile.")
}

func TestInterviewQuestions(t *testing.T) {
	srv := newTestServer(t, newFakeStore())
	headers := anonHeaders()

	rec := doJSON(t, srv.Handler(), "POST", "/interview-questions", map[string]string{
		"username":        "octocat",
		"job_description": "Senior Go engineer",
	}, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got analysis.InterviewQuestions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Go runtime", got.Questions[0].Topic)
	assert.Equal(t, "Hard", got.Questions[0].Difficulty)

	// Helpers do not consume audit credits.
	rec = doJSON(t, srv.Handler(), "GET", "/subscription", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	var sub ledger.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, ledger.DefaultFreeCredits, sub.CreditsRemaining)
}

func TestInterviewQuestionsRequiresJobDescription(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/interview-questions", map[string]string{
		"username": "octocat",
	}, anonHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeScore(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/resume-score", map[string]string{
		"resume_text":     "Ten years of Go and Postgres.",
		"job_description": "Senior Go engineer",
	}, anonHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got analysis.ResumeScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(72), got.Score)
	assert.Contains(t, got.Pros, "Go experience")
}

func TestResumeScoreRequiresBothFields(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/resume-score", map[string]string{
		"resume_text": "Ten years of Go.",
	}, anonHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionLifecycle(t *testing.T) {
	srv := newTestServer(t, newFakeStore())
	headers := anonHeaders()

	rec := doJSON(t, srv.Handler(), "GET", "/subscription", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var sub ledger.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, ledger.TierFree, sub.Tier)
	assert.Equal(t, ledger.DefaultFreeCredits, sub.CreditsRemaining)

	rec = doJSON(t, srv.Handler(), "POST", "/subscription/upgrade", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, ledger.TierPro, sub.Tier)
}

func TestFolderLifecycle(t *testing.T) {
	srv := newTestServer(t, newFakeStore())
	headers := anonHeaders()

	// Create
	rec := doJSON(t, srv.Handler(), "POST", "/folders", map[string]string{"name": "Backend"}, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var folder talent.Folder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &folder))
	assert.Equal(t, "Backend", folder.Name)
	assert.NotEmpty(t, folder.ID)
	assert.NotEmpty(t, folder.Color)

	// Add candidate
	rec = doJSON(t, srv.Handler(), "POST", "/folders/"+folder.ID+"/candidates", map[string]string{
		"username":  "octocat",
		"seniority": "Senior",
	}, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Re-adding the same username replaces the entry.
	rec = doJSON(t, srv.Handler(), "POST", "/folders/"+folder.ID+"/candidates", map[string]string{
		"username":  "octocat",
		"seniority": "Lead",
	}, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv.Handler(), "GET", "/folders", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Folders []talent.Folder `json:"folders"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Equal(t, 1, listing.Count)
	require.Len(t, listing.Folders[0].Candidates, 1)
	assert.Equal(t, "Lead", listing.Folders[0].Candidates[0].Seniority)

	// Rename
	rec = doJSON(t, srv.Handler(), "PUT", "/folders/"+folder.ID, map[string]string{"name": "Platform"}, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Platform")

	// Remove candidate
	rec = doJSON(t, srv.Handler(), "DELETE", "/folders/"+folder.ID+"/candidates/octocat", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	// Delete folder
	rec = doJSON(t, srv.Handler(), "DELETE", "/folders/"+folder.ID, nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), "GET", "/folders", nil, headers)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, 0, listing.Count)
}

func TestAddCandidateUnknownFolder(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/folders/missing/candidates", map[string]string{
		"username": "octocat",
	}, anonHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPipelinesIsolatedPerIdentity(t *testing.T) {
	srv := newTestServer(t, newFakeStore())
	alice := anonHeaders()
	bob := anonHeaders()

	rec := doJSON(t, srv.Handler(), "POST", "/folders", map[string]string{"name": "Mine"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv.Handler(), "GET", "/folders", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, 0, listing.Count)
}

func TestUpdatePasswordRequiresAuth(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "PUT", "/auth/password", map[string]string{
		"current_password": "old",
		"new_password":     "newpassword1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePasswordWithToken(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := doJSON(t, srv.Handler(), "POST", "/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "securepass123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	headers := map[string]string{"Authorization": "Bearer " + registered.Token}
	rec = doJSON(t, srv.Handler(), "PUT", "/auth/password", map[string]string{
		"current_password": "securepass123",
		"new_password":     "evenbetterpass1",
	}, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Old password no longer works.
	rec = doJSON(t, srv.Handler(), "POST", "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "securepass123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv.Handler(), "POST", "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "evenbetterpass1",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	req := httptest.NewRequest("OPTIONS", "/analyses", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
