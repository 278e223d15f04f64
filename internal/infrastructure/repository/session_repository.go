package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// SQLiteSessionRepository persists session bindings in a local SQLite
// database, replacing the per-user config file of earlier revisions.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository prepares the schema and returns the repository.
func NewSQLiteSessionRepository(db *sql.DB) (repository.SessionRepository, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		bot_token TEXT NOT NULL,
		user_hash TEXT NOT NULL,
		chat_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user_hash ON sessions(user_hash);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initializing sessions schema: %w", err)
	}
	return &SQLiteSessionRepository{db: db}, nil
}

func (r *SQLiteSessionRepository) Save(ctx context.Context, session *entities.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, bot_token, user_hash, chat_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.BotToken, session.UserHash, session.ChatID,
		session.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepository) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, bot_token, user_hash, chat_id, created_at FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return session, nil
}

func (r *SQLiteSessionRepository) List(ctx context.Context) ([]*entities.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, bot_token, user_hash, chat_id, created_at FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entities.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("listing sessions: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if affected == 0 {
		return entities.ErrSessionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*entities.Session, error) {
	var session entities.Session
	var createdAt string
	if err := row.Scan(&session.ID, &session.BotToken, &session.UserHash,
		&session.ChatID, &createdAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	session.CreatedAt = ts
	return &session, nil
}
