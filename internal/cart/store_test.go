package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type mockSnapshotStore struct {
	data map[string]string
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{data: make(map[string]string)}
}

func (m *mockSnapshotStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockSnapshotStore) Get(ctx context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockSnapshotStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockSnapshotStore) CartKey(sessionID string) string {
	return "sk:cart:" + sessionID
}

func newTestStore() (*Store, *mockSnapshotStore) {
	mock := newMockSnapshotStore()
	return &Store{store: mock, keyer: mock, ttl: time.Hour}, mock
}

func TestStoreGetEmptyWhenMissing(t *testing.T) {
	store, _ := newTestStore()

	state, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(state.Items) != 0 || state.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestStoreDispatchPersistsAcrossLoads(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	id := uuid.New()

	state, err := store.Dispatch(ctx, "sess-1", Action{Type: ActionAddItem, Item: line(id, "Mug")})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if state.ItemCount != 1 {
		t.Fatalf("expected item count 1, got %d", state.ItemCount)
	}

	state, err = store.Dispatch(ctx, "sess-1", Action{Type: ActionAddItem, Item: line(id, "Mug")})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if state.ItemCount != 2 || len(state.Items) != 1 {
		t.Fatalf("expected merged line with count 2, got %+v", state)
	}

	loaded, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ItemCount != 2 {
		t.Fatalf("expected persisted count 2, got %d", loaded.ItemCount)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.Dispatch(ctx, "sess-a", Action{Type: ActionAddItem, Item: line(uuid.New(), "A")}); err != nil {
		t.Fatalf("dispatch a: %v", err)
	}

	other, err := store.Get(ctx, "sess-b")
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if other.ItemCount != 0 {
		t.Fatalf("expected isolated empty cart for other session, got %+v", other)
	}
}

func TestStoreClearDeletesSnapshot(t *testing.T) {
	store, mock := newTestStore()
	ctx := context.Background()

	if _, err := store.Dispatch(ctx, "sess-1", Action{Type: ActionAddItem, Item: line(uuid.New(), "Mug")}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, exists := mock.data[mock.CartKey("sess-1")]; exists {
		t.Fatal("expected snapshot removed")
	}

	state, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.ItemCount != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", state)
	}
}

func TestStoreRejectsBlankSession(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, " "); err == nil {
		t.Fatal("expected error for blank session id")
	}
	if err := store.Clear(ctx, ""); err == nil {
		t.Fatal("expected error for blank session id")
	}
}
