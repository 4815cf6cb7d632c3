package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/adpulse/internal/services/dashboard/storage"
	"github.com/louisbranch/adpulse/internal/theme"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestGetThemeNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetTheme(context.Background(), "session-1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPutThemeUpserts(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	store.now = func() time.Time { return time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC) }

	if err := store.PutTheme(ctx, "session-1", theme.Dark); err != nil {
		t.Fatalf("put theme: %v", err)
	}
	if err := store.PutTheme(ctx, "session-1", theme.Light); err != nil {
		t.Fatalf("overwrite theme: %v", err)
	}
	got, err := store.GetTheme(ctx, "session-1")
	if err != nil {
		t.Fatalf("get theme: %v", err)
	}
	if got != theme.Light {
		t.Fatalf("expected light, got %s", got)
	}

	var count int
	var updatedAt string
	row := store.sqlDB.QueryRow("SELECT COUNT(*), MAX(updated_at) FROM theme_preferences")
	if err := row.Scan(&count, &updatedAt); err != nil {
		t.Fatalf("scan preferences: %v", err)
	}
	if count != 1 || updatedAt != "2025-08-01T09:00:00Z" {
		t.Fatalf("expected one row updated at fixed time, got %d %q", count, updatedAt)
	}
}

func TestPutThemeValidation(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if err := store.PutTheme(ctx, "", theme.Dark); err == nil {
		t.Fatal("expected error for empty subject")
	}
	if err := store.PutTheme(ctx, "session-1", "sepia"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestCanceledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.PutTheme(ctx, "session-1", theme.Dark); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestReopenKeepsPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.PutTheme(context.Background(), "session-1", theme.Dark); err != nil {
		t.Fatalf("put theme: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.GetTheme(context.Background(), "session-1")
	if err != nil || got != theme.Dark {
		t.Fatalf("expected dark after reopen, got %s, %v", got, err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
