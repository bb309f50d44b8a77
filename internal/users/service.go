package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relayhq/relay/internal/db"
)

// ErrNotFound is returned when a user record does not exist.
var ErrNotFound = errors.New("user not found")

// Store reads and writes user profiles.
type Store interface {
	Get(ctx context.Context, id string) (Profile, error)
	Upsert(ctx context.Context, id string, req UpsertRequest) (Profile, error)
}

// Service wraps the user store with logging.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(log *slog.Logger, store Store) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:  store,
		logger: log.With(slog.String("service", "users")),
	}
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	if strings.TrimSpace(id) == "" {
		return Profile{}, fmt.Errorf("user id is required")
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Upsert(ctx context.Context, id string, req UpsertRequest) (Profile, error) {
	if strings.TrimSpace(id) == "" {
		return Profile{}, fmt.Errorf("user id is required")
	}
	return s.store.Upsert(ctx, id, req)
}

// DBStore implements Store on a pgx pool.
type DBStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *DBStore {
	return &DBStore{pool: pool}
}

func (s *DBStore) Get(ctx context.Context, id string) (Profile, error) {
	var (
		language    pgtype.Text
		deviceToken pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, `
		SELECT language, device_token, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&language, &deviceToken, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:          id,
		Language:    db.TextToString(language),
		DeviceToken: db.TextToString(deviceToken),
		CreatedAt:   createdAt.Time,
		UpdatedAt:   updatedAt.Time,
	}, nil
}

func (s *DBStore) Upsert(ctx context.Context, id string, req UpsertRequest) (Profile, error) {
	existing, err := s.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	if req.Language != nil {
		existing.Language = *req.Language
	}
	if req.DeviceToken != nil {
		existing.DeviceToken = *req.DeviceToken
	}

	var createdAt, updatedAt pgtype.Timestamptz
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (id, language, device_token)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET language = EXCLUDED.language, device_token = EXCLUDED.device_token, updated_at = now()
		RETURNING created_at, updated_at`,
		id, db.ToPgText(existing.Language), db.ToPgText(existing.DeviceToken)).
		Scan(&createdAt, &updatedAt)
	if err != nil {
		return Profile{}, fmt.Errorf("upsert user: %w", err)
	}
	existing.ID = id
	existing.CreatedAt = createdAt.Time
	existing.UpdatedAt = updatedAt.Time
	return existing, nil
}
