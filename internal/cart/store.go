package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redisclient "github.com/shopkartio/shopkart-backend/pkg/redis"
)

const defaultSnapshotTTL = 30 * 24 * time.Hour

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type snapshotKeyer interface {
	CartKey(sessionID string) string
}

// Store holds one cart per session in Redis. Every dispatch loads the
// snapshot, applies the reducer, and writes the result back.
type Store struct {
	store snapshotStore
	keyer snapshotKeyer
	ttl   time.Duration
}

// NewStore builds a session cart store backed by Redis.
func NewStore(client *redisclient.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &Store{store: client, keyer: client, ttl: ttl}, nil
}

// Get returns the session's current cart, empty when none exists yet.
func (s *Store) Get(ctx context.Context, sessionID string) (State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return State{}, fmt.Errorf("session id is required")
	}
	snapshot, err := s.store.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if redisclient.IsNil(err) {
			return Empty(), nil
		}
		return State{}, fmt.Errorf("loading cart snapshot: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(snapshot), &state); err != nil {
		return State{}, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	if state.Items == nil {
		state.Items = []Line{}
	}
	return state, nil
}

// Dispatch applies the action to the session's cart and persists the
// next state.
func (s *Store) Dispatch(ctx context.Context, sessionID string, action Action) (State, error) {
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	next := Apply(current, action)

	payload, err := json.Marshal(next)
	if err != nil {
		return State{}, fmt.Errorf("encoding cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return State{}, fmt.Errorf("storing cart snapshot: %w", err)
	}
	return next, nil
}

// Clear drops the session's snapshot entirely.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return s.store.Del(ctx, s.keyer.CartKey(sessionID))
}
