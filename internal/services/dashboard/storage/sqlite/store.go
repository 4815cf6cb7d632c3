package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/adpulse/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/adpulse/internal/services/dashboard/storage"
	"github.com/louisbranch/adpulse/internal/services/dashboard/storage/sqlite/migrations"
	"github.com/louisbranch/adpulse/internal/theme"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing dashboard storage interfaces.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path, creating the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetTheme returns the stored theme for subject.
func (s *Store) GetTheme(ctx context.Context, subject string) (theme.Theme, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	var value string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT theme FROM theme_preferences WHERE subject = ?", subject)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("get theme: %w", err)
	}
	t, ok := theme.Parse(value)
	if !ok {
		return "", fmt.Errorf("stored theme %q is invalid", value)
	}
	return t, nil
}

// PutTheme upserts the theme for subject.
func (s *Store) PutTheme(ctx context.Context, subject string, t theme.Theme) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	parsed, ok := theme.Parse(string(t))
	if !ok {
		return fmt.Errorf("theme %q is invalid", t)
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO theme_preferences (subject, theme, updated_at) VALUES (?, ?, ?)
ON CONFLICT(subject) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		subject, string(parsed), s.now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("put theme: %w", err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
