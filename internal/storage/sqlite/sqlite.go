package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	e "github.com/IlianBuh/Wall-service/internal/lib/errors"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

// StorageKey is the only key the wall writes to
const StorageKey = "facebook-wall-posts"

// Storage is on-device key-value store. Every operation tolerates
// failures and returns safe default instead of an error
type Storage struct {
	log *slog.Logger
	db  *sql.DB
}

// New opens key-value store at path. Empty path or failure to open leaves
// storage unavailable, all operations become no-ops
func New(log *slog.Logger, path string) *Storage {
	const op = "sqlite.New"
	s := &Storage{log: log}
	log = log.With(slog.String("op", op))

	if path == "" {
		log.Warn("local storage path is empty, storage is unavailable")
		return s
	}

	db, err := open(path)
	if err != nil {
		log.Error("failed to open local storage", slog.String("path", path), sl.Err(err))
		return s
	}

	s.db = db
	return s
}

func open(path string) (*sql.DB, error) {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one connection, otherwise every conn of the pool gets its own :memory: database
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Supported reports whether persistent storage is available
func (s *Storage) Supported() bool {
	return s.db != nil
}

// GetPosts reads posts under StorageKey. Empty slice is returned if the key
// is absent, the value is not parseable or is not a sequence
func (s *Storage) GetPosts(ctx context.Context) []models.StoredPost {
	const op = "sqlite.GetPosts"
	log := s.log.With(slog.String("op", op))

	raw, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) && !errors.Is(err, storage.ErrUnavailable) {
			log.Error("error reading from local storage", sl.Err(err))
		}
		return []models.StoredPost{}
	}

	var posts []models.StoredPost
	if err = json.Unmarshal([]byte(raw), &posts); err != nil {
		log.Error("error reading from local storage", sl.Err(err))
		return []models.StoredPost{}
	}
	if posts == nil {
		return []models.StoredPost{}
	}

	return posts
}

// SavePosts writes the full list under StorageKey overwriting previous value
func (s *Storage) SavePosts(ctx context.Context, posts []models.StoredPost) bool {
	const (
		op     = "sqlite.SavePosts"
		upsert = `
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	)
	log := s.log.With(slog.String("op", op))

	if !s.Supported() {
		return false
	}
	if posts == nil {
		posts = []models.StoredPost{}
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		log.Error("error saving to local storage", sl.Err(err))
		return false
	}

	if _, err = s.db.ExecContext(ctx, upsert, StorageKey, string(raw)); err != nil {
		log.Error("error saving to local storage", sl.Err(err))
		return false
	}

	return true
}

// ClearPosts removes StorageKey
func (s *Storage) ClearPosts(ctx context.Context) bool {
	const op = "sqlite.ClearPosts"

	if !s.Supported() {
		return false
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, StorageKey); err != nil {
		s.log.Error("error clearing local storage", slog.String("op", op), sl.Err(err))
		return false
	}

	return true
}

// Info returns storage usage summary
func (s *Storage) Info(ctx context.Context) models.StorageInfo {
	if !s.Supported() {
		return models.StorageInfo{Supported: false}
	}

	posts := s.GetPosts(ctx)
	raw, err := json.Marshal(posts)
	if err != nil {
		return models.StorageInfo{Supported: false, Error: err.Error()}
	}

	return models.StorageInfo{
		Supported: true,
		PostCount: len(posts),
		DataSize:  fmt.Sprintf("%.2f KB", float64(len(raw))/1024),
	}
}

func (s *Storage) read(ctx context.Context) (string, error) {
	const op = "sqlite.read"

	if !s.Supported() {
		return "", e.Fail(op, storage.ErrUnavailable)
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StorageKey).Scan(&raw)
	if err != nil {
		return "", e.Fail(op, err)
	}

	return raw, nil
}

// Stop closes database
func (s *Storage) Stop() {
	const op = "sqlite.Stop"

	if !s.Supported() {
		return
	}

	if err := s.db.Close(); err != nil {
		s.log.Error(
			"failed to close local storage",
			slog.String("op", op),
			sl.Err(fmt.Errorf("%w: %w", storage.ErrClosed, err)),
		)
		return
	}

	s.log.Info("local storage is closed", slog.String("op", op))
}
