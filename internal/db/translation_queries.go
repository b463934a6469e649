package db

import (
	"context"
	"fmt"

	"horse.fit/bookstore/internal/globaltime"
)

// GetTranslation returns the cached translation for a (book, language) pair.
// Returns ErrNoRows on a cache miss.
func (p *Pool) GetTranslation(ctx context.Context, bookID int64, lang string) (*BookTranslation, error) {
	const q = `
SELECT
	t.book_id,
	t.language,
	t.translated_synopsis,
	t.title,
	t.original_title,
	t.genre,
	t.synopsis,
	t.original_language,
	t.release_date,
	t.provider_name,
	t.created_at
FROM bookstore.book_translations t
WHERE t.book_id = $1
  AND t.language = $2
LIMIT 1
`

	var row BookTranslation
	err := p.QueryRow(ctx, q, bookID, lang).Scan(
		&row.BookID,
		&row.Language,
		&row.TranslatedSynopsis,
		&row.Title,
		&row.OriginalTitle,
		&row.Genre,
		&row.Synopsis,
		&row.OriginalLanguage,
		&row.ReleaseDate,
		&row.ProviderName,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PutTranslation persists a translation under its (book_id, language) key.
// Concurrent writers for the same key resolve last-write-wins; both sides
// derive the row from the same inputs, so the surviving row is equivalent.
// The caller's created_at is stored verbatim and kept on conflict, so the row
// served on later cache hits matches the one returned at creation time.
func (p *Pool) PutTranslation(ctx context.Context, row BookTranslation) error {
	const q = `
INSERT INTO bookstore.book_translations (
	book_id,
	language,
	translated_synopsis,
	title,
	original_title,
	genre,
	synopsis,
	original_language,
	release_date,
	provider_name,
	created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (book_id, language)
DO UPDATE SET
	translated_synopsis = EXCLUDED.translated_synopsis,
	title = EXCLUDED.title,
	original_title = EXCLUDED.original_title,
	genre = EXCLUDED.genre,
	synopsis = EXCLUDED.synopsis,
	original_language = EXCLUDED.original_language,
	release_date = EXCLUDED.release_date,
	provider_name = EXCLUDED.provider_name
`

	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = globaltime.UTC()
	}

	if _, err := p.Exec(
		ctx,
		q,
		row.BookID,
		row.Language,
		row.TranslatedSynopsis,
		row.Title,
		row.OriginalTitle,
		row.Genre,
		row.Synopsis,
		row.OriginalLanguage,
		row.ReleaseDate,
		row.ProviderName,
		createdAt,
	); err != nil {
		return fmt.Errorf("put translation: %w", err)
	}
	return nil
}
