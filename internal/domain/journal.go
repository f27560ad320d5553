package domain

import (
	"context"
	"time"
)

// ActionRecord is one accepted control request and the state observed after it.
type ActionRecord struct {
	Service  string       `json:"service"`
	Action   Action       `json:"action"`
	Status   ServiceState `json:"status"`
	At       time.Time    `json:"at"`
	RemoteIP string       `json:"remote_ip,omitempty"`
}

// Journal keeps a bounded history of control actions, newest first.
type Journal interface {
	Record(ctx context.Context, rec ActionRecord) error
	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]ActionRecord, error)
	// Counts returns the number of recorded actions per service.
	Counts(ctx context.Context) (map[string]int64, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
