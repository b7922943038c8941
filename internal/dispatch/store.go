package dispatch

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/database"
)

// CommandStore persists command results to the command_log table.
// It satisfies Recorder.
type CommandStore struct {
	db *database.DB
}

// NewCommandStore creates a command audit store backed by SQLite.
func NewCommandStore(db *database.DB) *CommandStore {
	return &CommandStore{db: db}
}

// RecordCommand inserts one command result.
// Per-entity results are stored as a JSON column; the row is append-only.
func (s *CommandStore) RecordCommand(ctx context.Context, result CommandResult) error {
	results, err := json.Marshal(result.Results)
	if err != nil {
		return fmt.Errorf("marshalling command results: %w", err)
	}

	var errText any
	if result.Error != "" {
		errText = result.Error
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO command_log (id, command, success, results, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.ID, result.Command, result.Success, string(results), errText,
		result.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting command log: %w", err)
	}

	return nil
}

// RecentCommands returns the most recent command results, newest first.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - limit: Maximum rows to return; values <= 0 default to 50
//
// Returns:
//   - []CommandResult: Stored results, never nil
//   - error: If the query fails
func (s *CommandStore) RecentCommands(ctx context.Context, limit int) ([]CommandResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, success, results, error, created_at
		 FROM command_log ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying command log: %w", err)
	}
	defer rows.Close()

	commands := []CommandResult{}
	for rows.Next() {
		var (
			result      CommandResult
			resultsJSON string
			errText     sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&result.ID, &result.Command, &result.Success,
			&resultsJSON, &errText, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning command log: %w", err)
		}

		if err := json.Unmarshal([]byte(resultsJSON), &result.Results); err != nil {
			return nil, fmt.Errorf("decoding command results %q: %w", result.ID, err)
		}
		if result.Results == nil {
			result.Results = []EntityResult{}
		}
		if errText.Valid {
			result.Error = errText.String
		}

		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing command log timestamp %q: %w", createdAt, err)
		}
		result.Timestamp = t

		commands = append(commands, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command log: %w", err)
	}

	return commands, nil
}
