// Package store persists scan reports for serve mode.
//
// The default backend is an in-process map; a MongoDB backend is
// available for deployments where reports should outlive the server
// process or be shared between instances.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/refgraph/refgraph/pkg/report"
)

// ErrNotFound is returned by Get when no report has the given ID.
var ErrNotFound = errors.New("report not found")

// Summary is the listing view of a stored report, without the graph.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty"`
	Root        string    `json:"root" bson:"root"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
	NodeCount   int       `json:"node_count" bson:"node_count"`
	EdgeCount   int       `json:"edge_count" bson:"edge_count"`
}

// Store persists and retrieves scan reports.
type Store interface {
	// Save stores the report, assigning a fresh ID when it has none,
	// and returns the ID.
	Save(ctx context.Context, r report.Report) (string, error)

	// Get returns the report with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (report.Report, error)

	// List returns summaries of all stored reports, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps reports in process memory. Reports are lost when
// the server stops; use the Mongo store for persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]report.Report)}
}

// Save stores the report under a fresh UUID when it has no ID.
func (s *MemoryStore) Save(ctx context.Context, r report.Report) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.reports[r.ID] = r
	s.mu.Unlock()
	return r.ID, nil
}

// Get returns the stored report or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (report.Report, error) {
	s.mu.RLock()
	r, ok := s.reports[id]
	s.mu.RUnlock()
	if !ok {
		return report.Report{}, ErrNotFound
	}
	return r, nil
}

// List returns summaries sorted newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	summaries := make([]Summary, 0, len(s.reports))
	for _, r := range s.reports {
		summaries = append(summaries, Summary{
			ID:          r.ID,
			Name:        r.Name,
			Root:        r.Root,
			GeneratedAt: r.GeneratedAt,
			NodeCount:   r.NodeCount,
			EdgeCount:   r.EdgeCount,
		})
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GeneratedAt.After(summaries[j].GeneratedAt)
	})
	return summaries, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
