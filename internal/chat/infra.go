package chat

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

const createExchangesTable = `
	CREATE TABLE IF NOT EXISTS chat_exchanges (
		id                BIGSERIAL PRIMARY KEY,
		request_id        TEXT        NOT NULL DEFAULT '',
		user_id           TEXT        NOT NULL,
		platform          TEXT        NOT NULL,
		message           TEXT        NOT NULL,
		detected_language TEXT        NOT NULL,
		intent            TEXT        NOT NULL,
		response_text     TEXT        NOT NULL,
		suggested_actions TEXT[]      NOT NULL DEFAULT '{}',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// EnsureSchema creates the transcript table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, createExchangesTable)
	return err
}

func (r *repo) SaveExchange(ctx context.Context, ex *Exchange) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_exchanges
			(request_id, user_id, platform, message, detected_language, intent, response_text, suggested_actions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		ex.RequestID,
		ex.UserID,
		ex.Platform,
		ex.Message,
		ex.DetectedLanguage,
		string(ex.Intent),
		ex.ResponseText,
		pq.Array(ex.SuggestedActions),
		ex.CreatedAt,
	)
	return err
}

// NopRepo is used when no database is configured.
type NopRepo struct{}

func (NopRepo) SaveExchange(context.Context, *Exchange) error { return nil }
