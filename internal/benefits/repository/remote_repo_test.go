package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRemoteRepo(t *testing.T) (*RemoteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRemoteRepository(db), mock, db
}

func TestRemoteRepository_UpsertApplication(t *testing.T) {
	repo, mock, db := setupRemoteRepo(t)
	defer db.Close()
	ctx := context.Background()

	app := domain.Application{
		ID:        "app-1",
		ProgramID: "snap",
		Status:    domain.StatusStarted,
		StartedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	t.Run("writes row", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO applications`).
			WithArgs(
				"app-1",
				"user-1",
				"snap",
				domain.StatusStarted,
				"",
				sqlmock.AnyArg(), // started_at
				sqlmock.AnyArg(), // submitted_at
				sqlmock.AnyArg(), // decided_at
				sqlmock.AnyArg(), // updated_at
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpsertApplication(ctx, "user-1", app))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO applications`).
			WillReturnError(errors.New("connection refused"))

		err := repo.UpsertApplication(ctx, "user-1", app)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upsert application")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoteRepository_SetFavorite(t *testing.T) {
	repo, mock, db := setupRemoteRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("adds favorite", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO favorites`).
			WithArgs("user-1", "wic").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetFavorite(ctx, "user-1", "wic", true))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes favorite", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM favorites`).
			WithArgs("user-1", "wic").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetFavorite(ctx, "user-1", "wic", false))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoteRepository_ListFavorites(t *testing.T) {
	repo, mock, db := setupRemoteRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT program_id FROM favorites`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"program_id"}).AddRow("snap").AddRow("liheap"))

	ids, err := repo.ListFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap", "liheap"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
