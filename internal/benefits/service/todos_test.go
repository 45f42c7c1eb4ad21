package service

import (
	"context"
	"testing"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodos(t *testing.T) {
	env := setupEnv(t, false)
	todos := env.svc.Todos
	ctx := context.Background()

	_, err := todos.Create(ctx, "u", domain.TodoRequest{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = todos.Create(ctx, "u", domain.TodoRequest{Title: "x", Category: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	soon := time.Now().Add(24 * time.Hour).UTC()
	later := soon.Add(72 * time.Hour)
	appID := "app-that-does-not-exist"

	undated, err := todos.Create(ctx, "u", domain.TodoRequest{Title: "call caseworker"})
	require.NoError(t, err)
	assert.Equal(t, domain.TodoRoutine, undated.Category)

	second, err := todos.Create(ctx, "u", domain.TodoRequest{Title: "upload pay stubs", Category: domain.TodoImportant, DueDate: &later, ApplicationID: &appID})
	require.NoError(t, err)
	first, err := todos.Create(ctx, "u", domain.TodoRequest{Title: "renew id", Category: domain.TodoUrgent, DueDate: &soon})
	require.NoError(t, err)

	list, err := todos.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{first.ID, second.ID, undated.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	t.Run("toggle", func(t *testing.T) {
		got, err := todos.Toggle(ctx, "u", first.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("update keeps completion", func(t *testing.T) {
		got, err := todos.Update(ctx, "u", first.ID, domain.TodoRequest{Title: "renew state id", Category: domain.TodoUrgent})
		require.NoError(t, err)
		assert.Equal(t, "renew state id", got.Title)
		assert.True(t, got.Completed)
		assert.Nil(t, got.DueDate)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, todos.Delete(ctx, "u", second.ID))
		assert.ErrorIs(t, todos.Delete(ctx, "u", second.ID), domain.ErrTodoNotFound)
		_, err := todos.Toggle(ctx, "u", second.ID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})
}
