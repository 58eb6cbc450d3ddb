package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (m *memUsers) CreateUser(ctx context.Context, identifier, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[identifier]; ok {
		return nil, db.ErrDuplicate
	}
	u := model.User{Identifier: identifier, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[identifier] = u
	return &u, nil
}

func (m *memUsers) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[identifier]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}

type memBooks struct {
	mu    sync.Mutex
	books map[string]model.Book
	seq   int
	err   error
}

func (m *memBooks) InsertBookIfAbsent(ctx context.Context, book model.Book) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, "", m.err
	}
	for _, b := range m.books {
		if b.BookName == book.BookName {
			return false, "", nil
		}
	}
	m.seq++
	book.ID = fmt.Sprintf("b%d", m.seq)
	m.books[book.ID] = book
	return true, book.ID, nil
}

func (m *memBooks) ListBooks(ctx context.Context) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Book
	for _, b := range m.books {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBooks) UpdateBook(ctx context.Context, id string, book model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return db.ErrNotFound
	}
	for otherID, b := range m.books {
		if otherID != id && b.BookName == book.BookName {
			return db.ErrDuplicate
		}
	}
	book.ID = id
	m.books[id] = book
	return nil
}

func (m *memBooks) DeleteBook(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	return nil
}

type memTodos struct {
	mu    sync.Mutex
	todos map[string]model.Todo
	seq   int
}

func (m *memTodos) CreateTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		m.seq++
		td.ID = fmt.Sprintf("t%d", m.seq)
		m.todos[td.ID] = td
		out = append(out, td)
	}
	return out, nil
}

func (m *memTodos) ListTodos(ctx context.Context) ([]model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Todo
	for _, td := range m.todos {
		out = append(out, td)
	}
	return out, nil
}

func (m *memTodos) UpdateTodo(ctx context.Context, id string, todo model.Todo) (*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[id]; !ok {
		return nil, db.ErrNotFound
	}
	todo.ID = id
	m.todos[id] = todo
	return &todo, nil
}

func (m *memTodos) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	td, ok := m.todos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	delete(m.todos, id)
	return &td, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

var errDown = errors.New("dial tcp: connection refused")
