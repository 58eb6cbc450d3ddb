package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

var errStoreDown = errors.New("connection refused")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, identifier, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[identifier]; ok {
		return nil, db.ErrDuplicate
	}
	u := model.User{Identifier: identifier, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[identifier] = u
	return &u, nil
}

func (f *fakeUserRepo) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[identifier]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}

// fakeBookRepo serialises the check and the insert under one lock, standing
// in for the store's transaction.
type fakeBookRepo struct {
	mu    sync.Mutex
	books []model.Book
	seq   int
	err   error
}

func (f *fakeBookRepo) InsertBookIfAbsent(ctx context.Context, book model.Book) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, "", f.err
	}
	for _, b := range f.books {
		if b.BookName == book.BookName {
			return false, "", nil
		}
	}
	f.seq++
	book.ID = fmt.Sprintf("book-%d", f.seq)
	f.books = append(f.books, book)
	return true, book.ID, nil
}

func (f *fakeBookRepo) ListBooks(ctx context.Context) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Book{}, f.books...), nil
}

func (f *fakeBookRepo) UpdateBook(ctx context.Context, id string, book model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	idx := -1
	for i, b := range f.books {
		if b.ID == id {
			idx = i
		} else if b.BookName == book.BookName {
			return db.ErrDuplicate
		}
	}
	if idx < 0 {
		return db.ErrNotFound
	}
	book.ID = id
	f.books[idx] = book
	return nil
}

func (f *fakeBookRepo) DeleteBook(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	seq      int
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]model.Session{}}
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, identifier string, ttl time.Duration) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	s := model.Session{
		Token:      fmt.Sprintf("session-%d", f.seq),
		Identifier: identifier,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
	f.sessions[s.Token] = s
	return &s, nil
}

func (f *fakeSessionStore) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, db.ErrInvalidSession
	}
	if !time.Now().Before(s.ExpiresAt) {
		return nil, db.ErrSessionExpired
	}
	return &s, nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, token)
	return nil
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: map[string]time.Time{}}
}

func (f *fakeDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[tokenID]
	return ok, nil
}
