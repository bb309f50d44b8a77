package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relayhq/relay/internal/db"
)

// ErrNotFound is returned when a provider or config row does not exist.
var ErrNotFound = errors.New("provider not found")

// Store persists provider records and the singleton pipeline config.
type Store interface {
	Create(ctx context.Context, p Provider) (Provider, error)
	Get(ctx context.Context, id string) (Provider, error)
	List(ctx context.Context) ([]Provider, error)
	ListEnabled(ctx context.Context) ([]Provider, error)
	Update(ctx context.Context, p Provider) (Provider, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	GetConfig(ctx context.Context) (PipelineConfig, error)
	SetDefaultProvider(ctx context.Context, id string) (PipelineConfig, error)
}

// DBStore implements Store on a pgx pool.
type DBStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *DBStore {
	return &DBStore{pool: pool}
}

const providerColumns = "id, client_type, name, endpoint, api_key, model, enabled, created_at, updated_at"

func (s *DBStore) Create(ctx context.Context, p Provider) (Provider, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO providers (client_type, name, endpoint, api_key, model, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+providerColumns,
		string(p.ClientType), p.Name, p.Endpoint, p.APIKey, db.ToPgText(p.Model), p.Enabled,
	)
	return scanProvider(row)
}

func (s *DBStore) Get(ctx context.Context, id string) (Provider, error) {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return Provider{}, err
	}
	row := s.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, pgID)
	p, err := scanProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, ErrNotFound
	}
	return p, err
}

func (s *DBStore) List(ctx context.Context) ([]Provider, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

// ListEnabled returns enabled providers ordered by created_at, id. The
// ordering makes "first enabled" selection deterministic.
func (s *DBStore) ListEnabled(ctx context.Context) ([]Provider, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+providerColumns+` FROM providers
		WHERE enabled ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

func (s *DBStore) Update(ctx context.Context, p Provider) (Provider, error) {
	pgID, err := db.ParseUUID(p.ID)
	if err != nil {
		return Provider{}, err
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE providers
		SET client_type = $2, name = $3, endpoint = $4, api_key = $5, model = $6, enabled = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+providerColumns,
		pgID, string(p.ClientType), p.Name, p.Endpoint, p.APIKey, db.ToPgText(p.Model), p.Enabled,
	)
	updated, err := scanProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, ErrNotFound
	}
	return updated, err
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM providers WHERE id = $1`, pgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DBStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM providers`).Scan(&count)
	return count, err
}

func (s *DBStore) GetConfig(ctx context.Context) (PipelineConfig, error) {
	var defaultProvider pgtype.UUID
	var updatedAt pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, `SELECT default_provider, updated_at FROM pipeline_config WHERE id = TRUE`).
		Scan(&defaultProvider, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PipelineConfig{}, nil
	}
	if err != nil {
		return PipelineConfig{}, err
	}
	cfg := PipelineConfig{UpdatedAt: updatedAt.Time}
	if defaultProvider.Valid {
		cfg.DefaultProvider = defaultProvider.String()
	}
	return cfg, nil
}

func (s *DBStore) SetDefaultProvider(ctx context.Context, id string) (PipelineConfig, error) {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return PipelineConfig{}, err
	}
	var updatedAt pgtype.Timestamptz
	err = s.pool.QueryRow(ctx, `
		INSERT INTO pipeline_config (id, default_provider, updated_at)
		VALUES (TRUE, $1, now())
		ON CONFLICT (id) DO UPDATE SET default_provider = EXCLUDED.default_provider, updated_at = now()
		RETURNING updated_at`, pgID).Scan(&updatedAt)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("set default provider: %w", err)
	}
	return PipelineConfig{DefaultProvider: id, UpdatedAt: updatedAt.Time}, nil
}

func scanProvider(row pgx.Row) (Provider, error) {
	var (
		id         pgtype.UUID
		clientType string
		name       string
		endpoint   string
		apiKey     string
		model      pgtype.Text
		enabled    bool
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &clientType, &name, &endpoint, &apiKey, &model, &enabled, &createdAt, &updatedAt); err != nil {
		return Provider{}, err
	}
	return Provider{
		ID:         id.String(),
		ClientType: ClientType(clientType),
		Name:       name,
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Model:      db.TextToString(model),
		Enabled:    enabled,
		CreatedAt:  createdAt.Time,
		UpdatedAt:  updatedAt.Time,
	}, nil
}

func scanProviders(rows pgx.Rows) ([]Provider, error) {
	var result []Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
