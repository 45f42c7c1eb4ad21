package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

// RemoteRepository mirrors user writes into the shared PostgreSQL tables
// (applications, favorites). Rows are filtered by user id; there are no
// cross-table integrity checks beyond what the schema declares.
type RemoteRepository struct {
	db *sql.DB
}

func NewRemoteRepository(db *sql.DB) *RemoteRepository {
	return &RemoteRepository{db: db}
}

// UpsertApplication writes the application row, replacing any existing row with the same id.
func (r *RemoteRepository) UpsertApplication(ctx context.Context, userID string, app domain.Application) error {
	query := `
		INSERT INTO applications (id, user_id, program_id, status, notes, started_at, submitted_at, decided_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    notes = EXCLUDED.notes,
		    submitted_at = EXCLUDED.submitted_at,
		    decided_at = EXCLUDED.decided_at,
		    updated_at = EXCLUDED.updated_at
		WHERE applications.user_id = EXCLUDED.user_id
	`

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		userID,
		app.ProgramID,
		app.Status,
		app.Notes,
		app.StartedAt,
		app.SubmittedAt,
		app.DecidedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert application: %w", err)
	}
	return nil
}

// SetFavorite inserts or removes the (user, program) favorite row.
func (r *RemoteRepository) SetFavorite(ctx context.Context, userID, programID string, favorite bool) error {
	var query string
	if favorite {
		query = `
			INSERT INTO favorites (user_id, program_id, created_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id, program_id) DO NOTHING
		`
	} else {
		query = `DELETE FROM favorites WHERE user_id = $1 AND program_id = $2`
	}

	if _, err := r.db.ExecContext(ctx, query, userID, programID); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the program ids the user has favorited remotely.
func (r *RemoteRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT program_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Ping checks the connection to the remote database.
func (r *RemoteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
