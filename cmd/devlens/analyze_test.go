package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devlens/devlens/internal/state"
	"github.com/devlens/devlens/internal/talent"
)

func newTestSession() *session {
	return &session{state: state.New(nil), log: zap.NewNop()}
}

func TestSaveCandidateCreatesFolder(t *testing.T) {
	sess := newTestSession()

	saveCandidate(sess, "Backend", talent.Candidate{Username: "octocat", AddedAt: time.Now()})

	pipeline := sess.state.Pipeline()
	require.Len(t, pipeline.Folders, 1)
	assert.Equal(t, "Backend", pipeline.Folders[0].Name)
	require.Len(t, pipeline.Folders[0].Candidates, 1)
	assert.Equal(t, "octocat", pipeline.Folders[0].Candidates[0].Username)
}

func TestSaveCandidateReusesExistingFolder(t *testing.T) {
	sess := newTestSession()
	sess.state.CreateFolder("Backend")

	saveCandidate(sess, "Backend", talent.Candidate{Username: "octocat"})
	saveCandidate(sess, "Backend", talent.Candidate{Username: "torvalds"})

	pipeline := sess.state.Pipeline()
	require.Len(t, pipeline.Folders, 1)
	assert.Len(t, pipeline.Folders[0].Candidates, 2)
}

func TestSaveCandidateReplacesDuplicate(t *testing.T) {
	sess := newTestSession()

	saveCandidate(sess, "Backend", talent.Candidate{Username: "octocat", Seniority: "Mid"})
	saveCandidate(sess, "Backend", talent.Candidate{Username: "octocat", Seniority: "Senior"})

	pipeline := sess.state.Pipeline()
	require.Len(t, pipeline.Folders, 1)
	require.Len(t, pipeline.Folders[0].Candidates, 1)
	assert.Equal(t, "Senior", pipeline.Folders[0].Candidates[0].Seniority)
}
