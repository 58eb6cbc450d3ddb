package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

type BookRepo interface {
	InsertBookIfAbsent(ctx context.Context, book model.Book) (bool, string, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBook(ctx context.Context, id string, book model.Book) error
	DeleteBook(ctx context.Context, id string) error
}

type BookService struct {
	repo BookRepo
}

func NewBookService(repo BookRepo) *BookService {
	return &BookService{repo: repo}
}

// CreateBook adds book unless one with the same name exists. Duplicate
// detection is done by the store in one transaction, never by a separate
// lookup here.
func (s *BookService) CreateBook(ctx context.Context, book model.Book) (model.BookStatus, error) {
	book.BookName = strings.TrimSpace(book.BookName)
	if book.BookName == "" {
		return model.BookStatus{}, fmt.Errorf("%w: bookName is required", ErrInvalidInput)
	}

	inserted, _, err := s.repo.InsertBookIfAbsent(ctx, book)
	if err != nil {
		return model.BookStatus{}, upstream(err)
	}
	if !inserted {
		return model.BookStatus{
			Success: false,
			Message: fmt.Sprintf("The book %s already exists", book.BookName),
		}, nil
	}
	return model.BookStatus{
		Success: true,
		Message: fmt.Sprintf("The book %s was added", book.BookName),
	}, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return books, nil
}

// UpdateBook requires the record to exist. The returned status is meaningful
// alongside ErrNotFound and ErrConflict as well.
func (s *BookService) UpdateBook(ctx context.Context, id string, book model.Book) (model.BookStatus, error) {
	id = strings.TrimSpace(id)
	book.BookName = strings.TrimSpace(book.BookName)
	if id == "" {
		return model.BookStatus{}, fmt.Errorf("%w: id not provided", ErrInvalidInput)
	}
	if book.BookName == "" {
		return model.BookStatus{}, fmt.Errorf("%w: bookName is required", ErrInvalidInput)
	}

	err := s.repo.UpdateBook(ctx, id, book)
	switch {
	case err == nil:
		return model.BookStatus{Success: true, Message: fmt.Sprintf("The record %s was updated", id)}, nil
	case errors.Is(err, db.ErrNotFound):
		return model.BookStatus{Success: false, Message: fmt.Sprintf("The record %s does not exist", id)}, ErrNotFound
	case errors.Is(err, db.ErrDuplicate):
		return model.BookStatus{Success: false, Message: fmt.Sprintf("The book %s already exists", book.BookName)}, ErrConflict
	default:
		return model.BookStatus{}, upstream(err)
	}
}

func (s *BookService) DeleteBook(ctx context.Context, id string) (model.BookStatus, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.BookStatus{}, fmt.Errorf("%w: id not provided", ErrInvalidInput)
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return model.BookStatus{}, upstream(err)
	}
	return model.BookStatus{Success: true, Message: fmt.Sprintf("the item %s was deleted", id)}, nil
}
