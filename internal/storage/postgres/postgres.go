package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/IlianBuh/Wall-service/internal/config/remote"
	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage"
	_ "github.com/lib/pq"
)

// Storage is adapter of the hosted wall_posts table
type Storage struct {
	log     *slog.Logger
	cfg     remote.Config
	dsn     string
	timeout time.Duration
	db      *sql.DB
}

// New creates adapter. Connection is not established here, missing
// configuration is not an error: every operation fails fast later
func New(log *slog.Logger, cfg remote.Config) (*Storage, error) {
	const op = "postgres.New"

	s := &Storage{
		log:     log,
		cfg:     cfg,
		timeout: cfg.Timeout,
	}

	dsn, err := cfg.DSN()
	if err != nil {
		log.Info("remote backend is not configured", slog.String("op", op))
		return s, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fail(op, err)
	}

	s.dsn = dsn
	s.db = db
	return s, nil
}

// ConfigStatus returns state of remote backend configuration
func (s *Storage) ConfigStatus() models.RemoteStatus {
	return s.cfg.Status()
}

// TestConnection runs minimal read against the table. It never returns an error
func (s *Storage) TestConnection(ctx context.Context) bool {
	const (
		op    = "postgres.TestConnection"
		query = `SELECT 1 FROM wall_posts LIMIT 1`
	)
	log := s.log.With(slog.String("op", op))

	if s.db == nil {
		return false
	}

	ctx, cncl := s.withTimeout(ctx)
	defer cncl()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Warn("remote backend is unreachable", sl.Err(err))
		return false
	}
	if err = rows.Close(); err != nil {
		log.Warn("remote backend is unreachable", sl.Err(err))
		return false
	}

	return true
}

// ListPosts returns all posts newest-first
func (s *Storage) ListPosts(ctx context.Context) ([]models.Post, error) {
	const (
		op    = "postgres.ListPosts"
		query = `
			SELECT id, author, message, created_at
			FROM wall_posts
			ORDER BY created_at DESC`
	)

	if s.db == nil {
		return nil, fail(op, storage.ErrConfigurationMissing)
	}

	ctx, cncl := s.withTimeout(ctx)
	defer cncl()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, backendFail(op, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err = rows.Scan(&p.Id, &p.Author, &p.Message, &p.CreatedAt); err != nil {
			return nil, backendFail(op, err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, backendFail(op, err)
	}

	return posts, nil
}

// CreatePost inserts new post. Id and creation time are assigned by the server
func (s *Storage) CreatePost(ctx context.Context, author, message string) (models.Post, error) {
	const (
		op     = "postgres.CreatePost"
		insert = `
			INSERT INTO wall_posts (author, message)
			VALUES ($1, $2)
			RETURNING id, author, message, created_at`
	)

	if s.db == nil {
		return models.Post{}, fail(op, storage.ErrConfigurationMissing)
	}

	ctx, cncl := s.withTimeout(ctx)
	defer cncl()

	var p models.Post
	err := s.db.QueryRowContext(ctx, insert, author, message).
		Scan(&p.Id, &p.Author, &p.Message, &p.CreatedAt)
	if err != nil {
		return models.Post{}, backendFail(op, err)
	}

	return p, nil
}

// Stop closes database
func (s *Storage) Stop() {
	const op = "postgres.Stop"

	if s.db == nil {
		return
	}

	if err := s.db.Close(); err != nil {
		s.log.Error(
			"failed to close remote backend",
			slog.String("op", op),
			sl.Err(fmt.Errorf("%w: %w", storage.ErrClosed, err)),
		)
		return
	}

	s.log.Info("remote backend is closed", slog.String("op", op))
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

// fail assembles a new error with define structure
// Error message has pattern 'op':'err'
func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func backendFail(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, storage.ErrBackend, err)
}
