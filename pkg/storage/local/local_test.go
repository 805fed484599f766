package local

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "/console/snapshots/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	key := "snapshots/a.json"

	if err := s.PutObject(ctx, key, strings.NewReader(`{"ok":true}`), "application/json", 11); err != nil {
		t.Fatalf("put: %v", err)
	}
	exists, err := s.ObjectExists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("expected object to exist, exists=%v err=%v", exists, err)
	}

	rc, err := s.GetObject(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", body)
	}

	url, _ := s.GenerateURL(ctx, key)
	if url != "/console/snapshots/snapshots/a.json" {
		t.Fatalf("unexpected url %q", url)
	}

	if err := s.DeleteObject(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteObject(ctx, key); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
	if _, err := s.GetObject(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestKeysStayInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "root"), "/x/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.PutObject(context.Background(), "../../escape.json", strings.NewReader("x"), "", 1); err != nil {
		t.Fatalf("put: %v", err)
	}
	exists, _ := s.ObjectExists(context.Background(), "escape.json")
	if !exists {
		t.Fatal("expected traversal key to be confined to the base path")
	}
	if _, err := s.GetObject(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
