package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/config"
	"github.com/devlens/devlens/internal/github"
	"github.com/devlens/devlens/internal/llm"
	"github.com/devlens/devlens/internal/localstore"
	"github.com/devlens/devlens/internal/logger"
	"github.com/devlens/devlens/internal/persist"
	"github.com/devlens/devlens/internal/state"
)

// session bundles the local-mode machinery: the on-disk store, the
// in-memory state, and the debounced syncer that writes state back.
type session struct {
	local  *localstore.Store
	state  *state.Store
	syncer *persist.Syncer
	log    *zap.Logger
}

// openSession restores local state from disk and wires the write-behind
// syncer. Callers must call close to flush pending writes.
func openSession(verbose bool) (*session, error) {
	log, err := logger.New(false, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	path, err := localstore.DefaultPath()
	if err != nil {
		return nil, err
	}
	local, err := localstore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	syncer := persist.NewSyncer(func(_ context.Context, data []byte) error {
		return local.SetStateSnapshot(data)
	}, persist.DefaultDelay, log)

	st, err := state.Restore(local.StateSnapshot(), syncer)
	if err != nil {
		return nil, fmt.Errorf("failed to restore state: %w", err)
	}

	return &session{local: local, state: st, syncer: syncer, log: log}, nil
}

// close flushes any pending state write.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.syncer.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save state: %v\n", err)
	}
	_ = s.log.Sync()
}

// newAuditTools builds the GitHub fetcher and Gemini analyzer from the
// environment. The returned cleanup closes the LLM client.
func newAuditTools(ctx context.Context, apiKey string) (*github.Client, *analysis.Analyzer, func(), error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, nil, err
	}
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}
	if apiKey == "" {
		return nil, nil, nil, fmt.Errorf("%w (pass --api-key to override)", analysis.ErrCredentialMissing)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var opts []github.Option
	if cfg.GitHubToken != "" {
		opts = append(opts, github.WithToken(cfg.GitHubToken))
	}
	if cfg.RepoLimit > 0 {
		opts = append(opts, github.WithRepoLimit(cfg.RepoLimit))
	}

	cleanup := func() { _ = llmClient.Close() }
	return github.NewClient(opts...), analysis.NewAnalyzer(llmClient), cleanup, nil
}
