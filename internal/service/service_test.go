package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/apitest"
	"github.com/blog3d/techblog-client/internal/auth"
	"github.com/blog3d/techblog-client/internal/cache"
	"github.com/blog3d/techblog-client/internal/session"
	"github.com/blog3d/techblog-client/internal/storage"
	"github.com/blog3d/techblog-client/internal/transport"
	"go.uber.org/zap"
)

// fakeCache is a map-backed cache.Store for tests that need to observe
// cache reads, writes and invalidations without a redis server.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.entries[key] = string(encoded)
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

type testStack struct {
	backend  *apitest.Server
	store    *storage.Store
	resolver *session.Resolver
	manager  *auth.Manager
	cache    *fakeCache
	services *Service
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	backend := apitest.New()
	server := httptest.NewServer(backend.Engine)
	t.Cleanup(server.Close)

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	resolver := session.New(store)
	decorator := transport.NewDecorator(nil, store, resolver)
	client := apiclient.New(server.URL, &http.Client{Transport: decorator}, zap.NewNop())
	manager := auth.NewManager(client, store, zap.NewNop())
	decorator.OnUnauthorized(manager.ForceLogout)

	fake := newFakeCache()
	services := New(zap.NewNop(), client, fake, resolver, manager, time.Hour)

	return &testStack{
		backend:  backend,
		store:    store,
		resolver: resolver,
		manager:  manager,
		cache:    fake,
		services: services,
	}
}

func (ts *testStack) loginAs(t *testing.T, email, password string) {
	t.Helper()
	if err := ts.manager.Login(context.Background(), email, password); err != nil {
		t.Fatalf("login: %v", err)
	}
}

// waitFor polls until the condition holds or the deadline passes; used for
// the fire-and-forget side effects.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
