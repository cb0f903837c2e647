package userdata

import (
	"context"
	"slices"
	"strings"

	"github.com/studyhub/backend/internal/models"
)

// Todos returns the list narrowed by filter together with counts over the
// whole list.
func (s *Service) Todos(ctx context.Context, userID string, filter models.TodoFilter) models.TodoListResponse {
	todos := s.todos.Load(ctx, userID)
	resp := models.TodoListResponse{Todos: []models.Todo{}, Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			resp.Completed++
		} else {
			resp.Active++
		}
		switch filter {
		case models.TodoFilterActive:
			if t.Completed {
				continue
			}
		case models.TodoFilterCompleted:
			if !t.Completed {
				continue
			}
		}
		resp.Todos = append(resp.Todos, t)
	}
	return resp
}

func (s *Service) AddTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (models.Todo, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Todo{}, ErrEmptyText
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriorities[priority] {
		return models.Todo{}, ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := models.Todo{
		ID:        s.newID(),
		Text:      text,
		Priority:  priority,
		DueDate:   req.DueDate,
		CreatedAt: s.timestamp(),
	}
	todos, err := s.todos.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.Todo{}, err
	}
	todos = append(todos, todo)
	s.todos.Save(ctx, userID, todos)
	return todo, nil
}

func (s *Service) ToggleTodo(ctx context.Context, userID, id string) (models.Todo, error) {
	return s.updateTodo(ctx, userID, id, func(t *models.Todo) {
		t.Completed = !t.Completed
	})
}

func (s *Service) EditTodo(ctx context.Context, userID, id, text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, ErrEmptyText
	}
	return s.updateTodo(ctx, userID, id, func(t *models.Todo) {
		t.Text = text
	})
}

func (s *Service) DeleteTodo(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.todos.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return err
	}
	n := len(todos)
	todos = slices.DeleteFunc(todos, func(t models.Todo) bool { return t.ID == id })
	if len(todos) == n {
		return ErrNotFound
	}
	s.todos.Save(ctx, userID, todos)
	return nil
}

// ClearCompleted drops finished todos and reports how many were removed.
func (s *Service) ClearCompleted(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.todos.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return 0, err
	}
	n := len(todos)
	todos = slices.DeleteFunc(todos, func(t models.Todo) bool { return t.Completed })
	removed := n - len(todos)
	if removed > 0 {
		s.todos.Save(ctx, userID, todos)
	}
	return removed, nil
}

func (s *Service) updateTodo(ctx context.Context, userID, id string, fn func(*models.Todo)) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.todos.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.Todo{}, err
	}
	i := slices.IndexFunc(todos, func(t models.Todo) bool { return t.ID == id })
	if i < 0 {
		return models.Todo{}, ErrNotFound
	}
	fn(&todos[i])
	s.todos.Save(ctx, userID, todos)
	return todos[i], nil
}
