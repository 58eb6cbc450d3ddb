package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rise-labs/shelf-backend/internal/model"
)

const (
	serializableMaxAttempts = 10
	serializableBaseBackoff = 5 * time.Millisecond
)

// InsertBookIfAbsent inserts book only when no row shares its book_name.
// Count and insert run in one serializable transaction. A serialization
// failure says nothing about the name, so the whole transaction is retried
// and the count re-read. Only a unique violation on book_name, or a count
// above zero, reports (false, nil).
func (db *Postgres) InsertBookIfAbsent(ctx context.Context, book model.Book) (bool, string, error) {
	var (
		inserted bool
		id       string
	)
	err := retrySerializable(ctx, serializableMaxAttempts, func() error {
		var err error
		inserted, id, err = db.insertBookOnce(ctx, book)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("insert book %q: %w", book.BookName, err)
	}
	return inserted, id, nil
}

func (db *Postgres) insertBookOnce(ctx context.Context, book model.Book) (bool, string, error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return false, "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(id) FROM books WHERE book_name = $1`, book.BookName).Scan(&count); err != nil {
		return false, "", err
	}
	if count > 0 {
		return false, "", nil
	}

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO books (book_name, author_name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id::text
	`, book.BookName, book.AuthorName).Scan(&id)
	if err != nil {
		return false, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, "", err
	}
	return true, id, nil
}

// retrySerializable runs fn until it returns something other than a
// serialization failure, at most attempts times, with jittered linear
// backoff between tries. The last failure is returned once attempts run out.
func retrySerializable(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt)*serializableBaseBackoff + rand.N(serializableBaseBackoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		err = fn()
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (db *Postgres) ListBooks(ctx context.Context) ([]model.Book, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id::text, book_name, author_name
		FROM books
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.BookName, &b.AuthorName); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateBook replaces name and author of an existing record.
func (db *Postgres) UpdateBook(ctx context.Context, id string, book model.Book) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := db.Pool.Exec(ctx, `
		UPDATE books
		SET book_name = $1, author_name = $2
		WHERE id = $3
	`, book.BookName, book.AuthorName, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook is unconditional: deleting an absent id is not an error.
func (db *Postgres) DeleteBook(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, err := db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}
