package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTodoRepo struct {
	todos map[string]model.Todo
	err   error
}

func (f *fakeTodoRepo) CreateTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		td.ID = td.Title
		f.todos[td.ID] = td
		out = append(out, td)
	}
	return out, nil
}

func (f *fakeTodoRepo) ListTodos(ctx context.Context) ([]model.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Todo{}
	for _, td := range f.todos {
		out = append(out, td)
	}
	return out, nil
}

func (f *fakeTodoRepo) UpdateTodo(ctx context.Context, id string, todo model.Todo) (*model.Todo, error) {
	if _, ok := f.todos[id]; !ok {
		return nil, db.ErrNotFound
	}
	todo.ID = id
	f.todos[id] = todo
	return &todo, nil
}

func (f *fakeTodoRepo) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	td, ok := f.todos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	delete(f.todos, id)
	return &td, nil
}

func TestTodoService(t *testing.T) {
	repo := &fakeTodoRepo{todos: map[string]model.Todo{}}
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.CreateTodos(ctx, []model.Todo{{Title: " read "}, {Title: "write"}})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "read", created[0].Title)

	updated, err := svc.UpdateTodo(ctx, "read", model.Todo{Title: "read", Completed: true})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	_, err = svc.UpdateTodo(ctx, "ghost", model.Todo{Title: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.DeleteTodo(ctx, "write")
	require.NoError(t, err)
	_, err = svc.DeleteTodo(ctx, "write")
	assert.True(t, errors.Is(err, ErrNotFound))

	list, err := svc.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTodoServiceValidation(t *testing.T) {
	svc := NewTodoService(&fakeTodoRepo{todos: map[string]model.Todo{}})
	ctx := context.Background()

	_, err := svc.CreateTodos(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.CreateTodos(ctx, []model.Todo{{Title: ""}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.UpdateTodo(ctx, "", model.Todo{Title: "x"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.DeleteTodo(ctx, " ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTodoServiceUpstream(t *testing.T) {
	svc := NewTodoService(&fakeTodoRepo{todos: map[string]model.Todo{}, err: errStoreDown})
	_, err := svc.CreateTodos(context.Background(), []model.Todo{{Title: "x"}})
	assert.True(t, errors.Is(err, ErrUpstream))
	_, err = svc.ListTodos(context.Background())
	assert.True(t, errors.Is(err, ErrUpstream))
}
