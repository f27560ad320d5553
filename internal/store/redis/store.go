package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

// Store is a domain.Journal backed by a capped Redis list.
type Store struct {
	client   *redis.Client
	capacity int64
}

var _ domain.Journal = (*Store)(nil)

// NewStore creates a new Redis journal keeping the last capacity records
func NewStore(client *redis.Client, capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		client:   client,
		capacity: int64(capacity),
	}
}

// Record pushes rec at the head of the list, trims the tail and bumps the
// service counter in one transaction.
func (s *Store) Record(ctx context.Context, rec domain.ActionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal action: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, ActionsKey(), data)
	pipe.LTrim(ctx, ActionsKey(), 0, s.capacity-1)
	pipe.HIncrBy(ctx, ActionCountsKey(), rec.Service, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. limit <= 0 means all kept records.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.ActionRecord, error) {
	stop := s.capacity - 1
	if limit > 0 && int64(limit) < s.capacity {
		stop = int64(limit) - 1
	}

	raw, err := s.client.LRange(ctx, ActionsKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get actions: %w", err)
	}

	out := make([]domain.ActionRecord, 0, len(raw))
	for _, item := range raw {
		var rec domain.ActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Counts returns the per-service action counters
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, ActionCountsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get action counts: %w", err)
	}

	out := make(map[string]int64, len(raw))
	for service, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[service] = n
	}
	return out, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
