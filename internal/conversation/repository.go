package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/database"
)

// Repository persists conversation turns beyond process lifetime.
type Repository interface {
	AppendTurn(ctx context.Context, turn Turn) error
	RecentTurns(ctx context.Context, limit int) ([]Turn, error)
}

// SQLiteRepository stores turns in the conversation_turns table.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a turn repository backed by SQLite.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// AppendTurn inserts one turn. Rows are append-only.
func (r *SQLiteRepository) AppendTurn(ctx context.Context, turn Turn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversation_turns (id, role, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		turn.ID, turn.Role, turn.Content,
		turn.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting conversation turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit turns in chronological order, oldest
// first. Values <= 0 default to 50.
func (r *SQLiteRepository) RecentTurns(ctx context.Context, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, role, content, created_at FROM (
			SELECT rowid AS seq, id, role, content, created_at
			FROM conversation_turns
			ORDER BY seq DESC
			LIMIT ?
		) ORDER BY seq ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying conversation turns: %w", err)
	}
	defer rows.Close()

	turns := []Turn{}
	for rows.Next() {
		var turn Turn
		var createdAt string
		if err := rows.Scan(&turn.ID, &turn.Role, &turn.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning conversation turn: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing turn timestamp %q: %w", createdAt, err)
		}
		turn.Timestamp = t
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation turns: %w", err)
	}

	return turns, nil
}
