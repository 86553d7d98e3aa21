package entities

import "sync"

// ResultSet is the append-only record store shared by the pipeline.
type ResultSet struct {
	mu      sync.Mutex
	records []Record
}

// NewResultSet creates an empty store.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Append adds one record in processing order.
func (s *ResultSet) Append(record Record) {
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
}

// Records returns a snapshot of the records appended so far.
func (s *ResultSet) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
