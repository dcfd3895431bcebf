// Package state holds the mutable application state: the subscription
// ledger and the talent pipeline. Every mutation goes through the Store
// so persistence is scheduled exactly once per change, never ad hoc.
package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/devlens/devlens/internal/ledger"
	"github.com/devlens/devlens/internal/talent"
)

// Scheduler queues a state snapshot for write-behind persistence
type Scheduler interface {
	Schedule(data []byte)
}

// Snapshot is the serialized form of the application state. Folder order
// survives a round trip.
type Snapshot struct {
	Subscription ledger.Subscription `json:"subscription"`
	Pipeline     talent.Pipeline     `json:"pipeline"`
}

// Store is the single owner of application state. All reads and writes
// go through its methods; callers never hold references into the state.
type Store struct {
	mu        sync.RWMutex
	sub       ledger.Subscription
	pipeline  talent.Pipeline
	scheduler Scheduler
}

// New creates a Store with a fresh subscription and an empty pipeline.
// scheduler may be nil when persistence is not wanted.
func New(scheduler Scheduler) *Store {
	return &Store{
		sub:       ledger.NewSubscription(),
		scheduler: scheduler,
	}
}

// Restore creates a Store from a previously saved snapshot. Empty data
// means nothing was ever saved, so a fresh Store is returned.
func Restore(data []byte, scheduler Scheduler) (*Store, error) {
	if len(data) == 0 {
		return New(scheduler), nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode state snapshot: %w", err)
	}
	return &Store{
		sub:       snap.Subscription,
		pipeline:  snap.Pipeline,
		scheduler: scheduler,
	}, nil
}

// Subscription returns a copy of the current subscription
func (s *Store) Subscription() ledger.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sub
}

// SetSubscription replaces the subscription, e.g. after a successful
// audit settled the credit.
func (s *Store) SetSubscription(sub ledger.Subscription) {
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
	s.schedule()
}

// Upgrade moves the subscription to the PRO tier
func (s *Store) Upgrade() ledger.Subscription {
	s.mu.Lock()
	s.sub = ledger.Upgrade(s.sub)
	sub := s.sub
	s.mu.Unlock()
	s.schedule()
	return sub
}

// Pipeline returns a deep copy of the talent pipeline
func (s *Store) Pipeline() talent.Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPipeline(s.pipeline)
}

// CreateFolder adds a folder and returns it
func (s *Store) CreateFolder(name string) talent.Folder {
	s.mu.Lock()
	f := s.pipeline.CreateFolder(name)
	s.mu.Unlock()
	s.schedule()
	return f
}

// DeleteFolder removes a folder and its candidates
func (s *Store) DeleteFolder(id string) {
	s.mu.Lock()
	s.pipeline.DeleteFolder(id)
	s.mu.Unlock()
	s.schedule()
}

// EditFolder renames and recolors a folder
func (s *Store) EditFolder(id, name, color string) {
	s.mu.Lock()
	s.pipeline.EditFolder(id, name, color)
	s.mu.Unlock()
	s.schedule()
}

// AddCandidate saves a candidate into a folder. Returns false if the
// folder does not exist.
func (s *Store) AddCandidate(folderID string, c talent.Candidate) bool {
	s.mu.Lock()
	ok := s.pipeline.AddCandidate(folderID, c)
	s.mu.Unlock()
	if ok {
		s.schedule()
	}
	return ok
}

// RemoveCandidate drops a candidate from a folder
func (s *Store) RemoveCandidate(folderID, username string) {
	s.mu.Lock()
	s.pipeline.RemoveCandidate(folderID, username)
	s.mu.Unlock()
	s.schedule()
}

// Snapshot serializes the current state
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	snap := Snapshot{Subscription: s.sub, Pipeline: copyPipeline(s.pipeline)}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return data, nil
}

func (s *Store) schedule() {
	if s.scheduler == nil {
		return
	}
	data, err := s.Snapshot()
	if err != nil {
		return
	}
	s.scheduler.Schedule(data)
}

func copyPipeline(p talent.Pipeline) talent.Pipeline {
	out := talent.Pipeline{Folders: make([]talent.Folder, len(p.Folders))}
	for i, f := range p.Folders {
		nf := f
		nf.Candidates = append([]talent.Candidate(nil), f.Candidates...)
		out.Folders[i] = nf
	}
	return out
}
