package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rise-labs/shelf-backend/internal/model"
)

// CreateTodos inserts the batch in one transaction so a failure leaves none behind.
func (db *Postgres) CreateTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created := make([]model.Todo, 0, len(todos))
	for _, todo := range todos {
		var t model.Todo
		err := tx.QueryRow(ctx, `
			INSERT INTO todos (title, completed, created_at)
			VALUES ($1, $2, NOW())
			RETURNING id::text, title, completed
		`, todo.Title, todo.Completed).Scan(&t.ID, &t.Title, &t.Completed)
		if err != nil {
			return nil, err
		}
		created = append(created, t)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (db *Postgres) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id::text, title, completed
		FROM todos
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (db *Postgres) UpdateTodo(ctx context.Context, id string, todo model.Todo) (*model.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var t model.Todo
	err := db.Pool.QueryRow(ctx, `
		UPDATE todos
		SET title = $1, completed = $2
		WHERE id = $3
		RETURNING id::text, title, completed
	`, todo.Title, todo.Completed, id).Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (db *Postgres) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var t model.Todo
	err := db.Pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1
		RETURNING id::text, title, completed
	`, id).Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
