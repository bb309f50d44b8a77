package message

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relayhq/relay/internal/db"
)

// ErrNotFound is returned when a message record does not exist.
var ErrNotFound = errors.New("message not found")

// Store persists chat messages. Creation is append-only; enrichment is a
// merge-only update.
type Store interface {
	Create(ctx context.Context, m Message) (Message, error)
	Get(ctx context.Context, chatID, id string) (Message, error)
	ListByChat(ctx context.Context, chatID string) ([]Message, error)
	ApplyEnrichment(ctx context.Context, chatID, id string, u EnrichmentUpdate) error
}

// DBStore implements Store on a pgx pool.
type DBStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *DBStore {
	return &DBStore{pool: pool}
}

const messageColumns = "id, chat_id, sender_id, receiver_id, sender_role, original_text, original_language, translated_text, translated_language, status, created_at"

func (s *DBStore) Create(ctx context.Context, m Message) (Message, error) {
	pgID, err := db.ParseUUID(m.ID)
	if err != nil {
		return Message{}, err
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, receiver_id, sender_role, original_text, original_language, translated_text, translated_language, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+messageColumns,
		pgID, m.ChatID, m.SenderID, m.ReceiverID, m.SenderRole, m.OriginalText,
		db.ToPgText(m.OriginalLanguage), db.ToPgText(m.TranslatedText), db.ToPgText(m.TranslatedLanguage), m.Status,
	)
	return scanMessage(row)
}

func (s *DBStore) Get(ctx context.Context, chatID, id string) (Message, error) {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return Message{}, err
	}
	row := s.pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE chat_id = $1 AND id = $2`, chatID, pgID)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	return m, err
}

func (s *DBStore) ListByChat(ctx context.Context, chatID string) ([]Message, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+messageColumns+` FROM messages WHERE chat_id = $1 ORDER BY created_at, id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// ApplyEnrichment merges non-empty enrichment fields onto the record.
// Empty update fields leave the stored value untouched, so the update is
// idempotent under duplicate delivery.
func (s *DBStore) ApplyEnrichment(ctx context.Context, chatID, id string, u EnrichmentUpdate) error {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE messages SET
			original_language = COALESCE(NULLIF($3, ''), original_language),
			translated_text = COALESCE(NULLIF($4, ''), translated_text),
			translated_language = COALESCE(NULLIF($5, ''), translated_language)
		WHERE chat_id = $1 AND id = $2`,
		chatID, pgID, u.OriginalLanguage, u.TranslatedText, u.TranslatedLanguage,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMessage(row pgx.Row) (Message, error) {
	var (
		id                 pgtype.UUID
		chatID             string
		senderID           string
		receiverID         string
		senderRole         string
		originalText       string
		originalLanguage   pgtype.Text
		translatedText     pgtype.Text
		translatedLanguage pgtype.Text
		status             string
		createdAt          pgtype.Timestamptz
	)
	if err := row.Scan(&id, &chatID, &senderID, &receiverID, &senderRole, &originalText,
		&originalLanguage, &translatedText, &translatedLanguage, &status, &createdAt); err != nil {
		return Message{}, err
	}
	return Message{
		ID:                 id.String(),
		ChatID:             chatID,
		SenderID:           senderID,
		ReceiverID:         receiverID,
		SenderRole:         senderRole,
		OriginalText:       originalText,
		OriginalLanguage:   db.TextToString(originalLanguage),
		TranslatedText:     db.TextToString(translatedText),
		TranslatedLanguage: db.TextToString(translatedLanguage),
		Status:             status,
		CreatedAt:          createdAt.Time,
	}, nil
}
