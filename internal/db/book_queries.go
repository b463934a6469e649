package db

import (
	"context"
	"fmt"
)

const bookColumns = `
	b.id,
	b.title,
	b.original_title,
	b.genre,
	b.synopsis,
	b.original_language,
	b.release_date,
	b.created_at,
	b.updated_at`

// GetBook returns one book by id. Returns ErrNoRows when the book is absent.
func (p *Pool) GetBook(ctx context.Context, id int64) (*Book, error) {
	q := `
SELECT` + bookColumns + `
FROM bookstore.books b
WHERE b.id = $1
LIMIT 1
`

	var row Book
	err := p.QueryRow(ctx, q, id).Scan(
		&row.ID,
		&row.Title,
		&row.OriginalTitle,
		&row.Genre,
		&row.Synopsis,
		&row.OriginalLanguage,
		&row.ReleaseDate,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListBooks returns the full catalogue ordered by id.
func (p *Pool) ListBooks(ctx context.Context) ([]Book, error) {
	q := `
SELECT` + bookColumns + `
FROM bookstore.books b
ORDER BY b.id
`

	rows, err := p.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var row Book
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.OriginalTitle,
			&row.Genre,
			&row.Synopsis,
			&row.OriginalLanguage,
			&row.ReleaseDate,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}
	return books, nil
}

// InsertBook creates a new catalogue entry. A duplicate id is reported as a
// conflict via rows affected zero rather than a database error.
func (p *Pool) InsertBook(ctx context.Context, row Book) (bool, error) {
	const q = `
INSERT INTO bookstore.books (
	id,
	title,
	original_title,
	genre,
	synopsis,
	original_language,
	release_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING
`

	tag, err := p.Exec(
		ctx,
		q,
		row.ID,
		row.Title,
		row.OriginalTitle,
		row.Genre,
		row.Synopsis,
		row.OriginalLanguage,
		row.ReleaseDate,
	)
	if err != nil {
		return false, fmt.Errorf("insert book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateBookParams carries the replaceable book attributes.
type UpdateBookParams struct {
	Title            string
	OriginalTitle    string
	Genre            string
	Synopsis         string
	OriginalLanguage string
	ReleaseDate      string
}

// UpdateBook replaces the mutable attributes of a book and returns the updated
// row. Returns ErrNoRows when the book is absent.
func (p *Pool) UpdateBook(ctx context.Context, id int64, params UpdateBookParams) (*Book, error) {
	const q = `
UPDATE bookstore.books
SET
	title = $2,
	original_title = $3,
	genre = $4,
	synopsis = $5,
	original_language = $6,
	release_date = $7,
	updated_at = now()
WHERE id = $1
RETURNING
	id,
	title,
	original_title,
	genre,
	synopsis,
	original_language,
	release_date,
	created_at,
	updated_at
`

	var row Book
	err := p.QueryRow(
		ctx,
		q,
		id,
		params.Title,
		params.OriginalTitle,
		params.Genre,
		params.Synopsis,
		params.OriginalLanguage,
		params.ReleaseDate,
	).Scan(
		&row.ID,
		&row.Title,
		&row.OriginalTitle,
		&row.Genre,
		&row.Synopsis,
		&row.OriginalLanguage,
		&row.ReleaseDate,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteBook removes a book and reports how many rows were deleted.
func (p *Pool) DeleteBook(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM bookstore.books WHERE id = $1`

	tag, err := p.Exec(ctx, q, id)
	if err != nil {
		return 0, fmt.Errorf("delete book: %w", err)
	}
	return tag.RowsAffected(), nil
}
