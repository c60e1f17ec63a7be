package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type mapStore struct {
	entries map[string]string
}

func (m *mapStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	return value, nil
}

func (m *mapStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = string(encoded)
	return nil
}

func (m *mapStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

type payload struct {
	Title string `json:"title"`
}

func TestGetRoundTrip(t *testing.T) {
	store := &mapStore{entries: make(map[string]string)}
	ctx := context.Background()

	if err := store.SetJSON(ctx, "k", payload{Title: "hello"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	got, err := Get[payload](store, ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Title != "hello" {
		t.Fatalf("got %+v", got)
	}
}

func TestGetMissAndNull(t *testing.T) {
	store := &mapStore{entries: map[string]string{"null-key": "null"}}
	ctx := context.Background()

	if _, err := Get[payload](store, ctx, "absent"); !errors.Is(err, ErrMiss) {
		t.Fatalf("error %v, want ErrMiss", err)
	}

	got, err := Get[payload](store, ctx, "null-key")
	if err != nil {
		t.Fatalf("Get on cached null: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for cached null", got)
	}
}

func TestGetManyDecodesSlice(t *testing.T) {
	store := &mapStore{entries: make(map[string]string)}
	ctx := context.Background()

	if err := store.SetJSON(ctx, "list", []payload{{Title: "a"}, {Title: "b"}}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	got, err := GetMany[payload](store, ctx, "list")
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 || got[1].Title != "b" {
		t.Fatalf("got %+v", got)
	}

	if err := store.Del(ctx, "list"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := GetMany[payload](store, ctx, "list"); !errors.Is(err, ErrMiss) {
		t.Fatalf("error %v after delete, want ErrMiss", err)
	}
}

func TestKeyFormats(t *testing.T) {
	if got := BlogSlugKey("go-generics"); got != "blog:slug:go-generics" {
		t.Fatalf("BlogSlugKey = %q", got)
	}
	if got := CategoryBlogsKey("go"); got != "category:go:blogs" {
		t.Fatalf("CategoryBlogsKey = %q", got)
	}
}
