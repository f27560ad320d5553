package journal

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

// Memory is an in-process journal backed by a fixed-size ring.
// It is used when no Redis is configured; history is lost on restart.
type Memory struct {
	mu     sync.RWMutex
	ring   []domain.ActionRecord
	next   int // slot for the next record
	size   int // number of valid records
	counts map[string]int64
}

var _ domain.Journal = (*Memory)(nil)

// NewMemory creates a journal keeping the last capacity records.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		ring:   make([]domain.ActionRecord, capacity),
		counts: make(map[string]int64),
	}
}

// Record stores rec, evicting the oldest record when full.
func (m *Memory) Record(_ context.Context, rec domain.ActionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ring[m.next] = rec
	m.next = (m.next + 1) % len(m.ring)
	if m.size < len(m.ring) {
		m.size++
	}
	m.counts[rec.Service]++
	return nil
}

// Recent returns up to limit records, newest first. limit <= 0 means all.
func (m *Memory) Recent(_ context.Context, limit int) ([]domain.ActionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.size
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.ActionRecord, 0, n)
	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.ring)) % len(m.ring)
		out = append(out, m.ring[idx])
	}
	return out, nil
}

// Counts returns a copy of the per-service counters.
func (m *Memory) Counts(_ context.Context) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Cap returns the ring capacity.
func (m *Memory) Cap() int { return len(m.ring) }
