package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "user-1", "notes.pdf", 20, 18.5, 4600, []byte(`{"outline":[]}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	body, err := s.Get(ctx, id, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != `{"outline":[]}` {
		t.Errorf("body = %s", body)
	}
}

func TestGetWrongUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "user-1", "notes.pdf", 20, 18.5, 4600, []byte(`{}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := s.Get(ctx, id, "user-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "no-such-id", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Save(ctx, "user-1", "doc.pdf", 10, 9, 2200, []byte(`{}`)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if _, err := s.Save(ctx, "user-2", "other.pdf", 10, 9, 2200, []byte(`{}`)); err != nil {
		t.Fatalf("save other user: %v", err)
	}

	records, err := s.List(ctx, "user-1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for _, r := range records {
		if r.UserID != "user-1" {
			t.Errorf("foreign record in list: %+v", r)
		}
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Error("records not ordered newest first")
		}
	}
}

func TestCountSince(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := s.Save(ctx, "user-1", "doc.pdf", 10, 9, 2200, []byte(`{}`)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	n, err := s.CountSince(ctx, "user-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	n, err = s.CountSince(ctx, "user-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("future count = %d, want 0", n)
	}
}
