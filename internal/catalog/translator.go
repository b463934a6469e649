package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/bookstore/internal/db"
	"horse.fit/bookstore/internal/globaltime"
	"horse.fit/bookstore/internal/language"
	"horse.fit/bookstore/internal/translation"
)

// BookSource reads book records for translation.
type BookSource interface {
	GetBook(ctx context.Context, id int64) (*db.Book, error)
}

// TranslationStore reads and writes cached translations keyed by
// (book id, language).
type TranslationStore interface {
	GetTranslation(ctx context.Context, bookID int64, lang string) (*db.BookTranslation, error)
	PutTranslation(ctx context.Context, row db.BookTranslation) error
}

// Translator performs cache-aside translation of book synopses: an existing
// record is returned as-is; a miss fetches the book, calls the provider once,
// persists the result and returns it. Concurrent first-time requests for one
// key are not serialized; the store resolves them last-write-wins.
type Translator struct {
	books      BookSource
	cache      TranslationStore
	registry   *translation.Registry
	sourceLang string
	logger     zerolog.Logger
}

func NewTranslator(
	books BookSource,
	cache TranslationStore,
	registry *translation.Registry,
	sourceLang string,
	logger zerolog.Logger,
) *Translator {
	normalized := language.NormalizeCode(sourceLang)
	if normalized == "" {
		normalized = "en"
	}
	return &Translator{
		books:      books,
		cache:      cache,
		registry:   registry,
		sourceLang: normalized,
		logger:     logger,
	}
}

// GetOrCreateTranslation returns the translation of a book's synopsis into the
// target language. The boolean reports whether the provider was invoked
// (false for a cache hit).
func (t *Translator) GetOrCreateTranslation(ctx context.Context, bookID int64, lang string) (*db.BookTranslation, bool, error) {
	if t == nil || t.books == nil || t.cache == nil {
		return nil, false, fmt.Errorf("translator is not initialized")
	}

	if bookID <= 0 {
		return nil, false, fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}
	targetLang := language.NormalizeTag(lang)
	if targetLang == "" {
		return nil, false, fmt.Errorf("%w: language must be a non-empty code", ErrInvalidRequest)
	}

	cached, err := t.cache.GetTranslation(ctx, bookID, targetLang)
	if err == nil {
		return cached, false, nil
	}
	if !errors.Is(err, db.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: lookup translation book_id=%d lang=%s: %v", ErrStoreUnavailable, bookID, targetLang, err)
	}

	book, err := t.books.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, false, fmt.Errorf("%w: book_id=%d", ErrBookNotFound, bookID)
		}
		return nil, false, fmt.Errorf("%w: fetch book_id=%d: %v", ErrStoreUnavailable, bookID, err)
	}

	provider, err := t.registry.Provider("")
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       book.Synopsis,
		SourceLang: t.sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: book_id=%d lang=%s: %v", ErrTranslationFailed, bookID, targetLang, err)
	}
	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		return nil, false, fmt.Errorf("%w: book_id=%d lang=%s: empty translation", ErrTranslationFailed, bookID, targetLang)
	}

	row := db.BookTranslation{
		BookID:             bookID,
		Language:           targetLang,
		TranslatedSynopsis: translated,
		Title:              book.Title,
		OriginalTitle:      book.OriginalTitle,
		Genre:              book.Genre,
		Synopsis:           book.Synopsis,
		OriginalLanguage:   book.OriginalLanguage,
		ReleaseDate:        book.ReleaseDate,
		ProviderName:       strings.TrimSpace(resp.ProviderName),
		CreatedAt:          globaltime.UTC(),
	}
	if row.ProviderName == "" {
		row.ProviderName = provider.Name()
	}

	if err := t.cache.PutTranslation(ctx, row); err != nil {
		// The provider call already succeeded; a retry redoes it. Wasteful
		// but safe, the inputs are deterministic.
		return nil, false, fmt.Errorf("%w: persist translation book_id=%d lang=%s: %v", ErrStoreUnavailable, bookID, targetLang, err)
	}

	t.logger.Info().
		Int64("book_id", bookID).
		Str("lang", targetLang).
		Str("provider", row.ProviderName).
		Int64("latency_ms", resp.LatencyMs).
		Msg("translation created")

	return &row, true, nil
}
