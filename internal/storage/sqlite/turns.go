package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) Append(ctx context.Context, sessionID, role, text string) error {
	query := `INSERT INTO conversation_history (session_id, role, message) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, role, text); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) FetchLast(ctx context.Context, sessionID string, exchanges int) ([]core.Turn, error) {
	if exchanges <= 0 {
		return nil, nil
	}

	// Fetch the LAST turns by ordering DESC; one exchange is a user turn plus an assistant turn.
	query := `SELECT id, session_id, role, message, timestamp FROM conversation_history
		WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, exchanges*2)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> Oldest from the query, callers want Oldest -> Newest.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded history turns")
	return turns, nil
}
