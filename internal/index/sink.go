package index

import (
	"context"
	"sort"
	"sync"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Record is one projected document as handed to a Sink.
type Record struct {
	ID       string
	Checksum string
	Fields   *pbcore.FieldMap
}

// Sink persists projected documents. The core only guarantees the field names
// and value order; storage and analysis are the sink's business.
type Sink interface {
	Put(ctx context.Context, rec Record) error
	// Checksum returns the checksum stored for id, or "" when id is unknown.
	Checksum(ctx context.Context, id string) (string, error)
}

// MemorySink keeps records in memory. Safe for concurrent use.
type MemorySink struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{records: make(map[string]Record)}
}

func (s *MemorySink) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemorySink) Checksum(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id].Checksum, nil
}

// Get returns the record stored for id.
func (s *MemorySink) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// IDs lists stored identifiers in sorted order.
func (s *MemorySink) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
