package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/google/uuid"
)

// TodoService manages the user's checklist. Links to applications and
// programs are informational only and are never cascaded.
type TodoService struct {
	store *repository.Store
}

func NewTodoService(store *repository.Store) *TodoService {
	return &TodoService{store: store}
}

// List orders todos by due date (undated last), then by creation time.
func (s *TodoService) List(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	todos, err := s.store.Todos.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		switch {
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, req domain.TodoRequest) (domain.TodoItem, error) {
	if err := validateTodo(&req); err != nil {
		return domain.TodoItem{}, err
	}
	now := time.Now().UTC()
	todo := domain.TodoItem{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		DueDate:       req.DueDate,
		ApplicationID: req.ApplicationID,
		ProgramID:     req.ProgramID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Todos.Save(ctx, userID, todo); err != nil {
		return domain.TodoItem{}, err
	}
	return todo, nil
}

// Update replaces the editable fields; completion state is kept.
func (s *TodoService) Update(ctx context.Context, userID, id string, req domain.TodoRequest) (domain.TodoItem, error) {
	if err := validateTodo(&req); err != nil {
		return domain.TodoItem{}, err
	}
	return s.store.Todos.Update(ctx, userID, id, func(t *domain.TodoItem) error {
		t.Title = req.Title
		t.Description = req.Description
		t.Category = req.Category
		t.DueDate = req.DueDate
		t.ApplicationID = req.ApplicationID
		t.ProgramID = req.ProgramID
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *TodoService) Toggle(ctx context.Context, userID, id string) (domain.TodoItem, error) {
	return s.store.Todos.Update(ctx, userID, id, func(t *domain.TodoItem) error {
		t.Completed = !t.Completed
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	removed, err := s.store.Todos.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrTodoNotFound
	}
	return nil
}

func validateTodo(req *domain.TodoRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return invalid("title is required")
	}
	if req.Category == "" {
		req.Category = domain.TodoRoutine
	}
	if !domain.IsValidTodoCategory(req.Category) {
		return domain.ErrInvalidCategory
	}
	return nil
}
