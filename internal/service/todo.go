package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

type TodoRepo interface {
	CreateTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error)
	ListTodos(ctx context.Context) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, id string, todo model.Todo) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) (*model.Todo, error)
}

type TodoService struct {
	repo TodoRepo
}

func NewTodoService(repo TodoRepo) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) CreateTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	if len(todos) == 0 {
		return nil, fmt.Errorf("%w: todos must not be empty", ErrInvalidInput)
	}
	for i := range todos {
		todos[i].Title = strings.TrimSpace(todos[i].Title)
		if todos[i].Title == "" {
			return nil, fmt.Errorf("%w: todo %d has no title", ErrInvalidInput, i)
		}
	}

	created, err := s.repo.CreateTodos(ctx, todos)
	if err != nil {
		return nil, upstream(err)
	}
	return created, nil
}

func (s *TodoService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return todos, nil
}

func (s *TodoService) UpdateTodo(ctx context.Context, id string, todo model.Todo) (*model.Todo, error) {
	id = strings.TrimSpace(id)
	todo.Title = strings.TrimSpace(todo.Title)
	if id == "" || todo.Title == "" {
		return nil, ErrInvalidInput
	}

	updated, err := s.repo.UpdateTodo(ctx, id, todo)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return updated, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}

	deleted, err := s.repo.DeleteTodo(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return deleted, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return upstream(err)
}
