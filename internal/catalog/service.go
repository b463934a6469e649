package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/bookstore/internal/db"
	"horse.fit/bookstore/internal/langdetect"
	"horse.fit/bookstore/internal/language"
)

// Store is the catalogue persistence surface used by Service.
type Store interface {
	GetBook(ctx context.Context, id int64) (*db.Book, error)
	ListBooks(ctx context.Context) ([]db.Book, error)
	InsertBook(ctx context.Context, row db.Book) (bool, error)
	UpdateBook(ctx context.Context, id int64, params db.UpdateBookParams) (*db.Book, error)
	DeleteBook(ctx context.Context, id int64) (int64, error)
	ListBookCharacters(ctx context.Context, bookID int64, filter db.CharacterFilter) ([]db.BookCharacter, error)
}

// BookInput carries the writable book attributes for add and update.
type BookInput struct {
	ID               int64
	Title            string
	OriginalTitle    string
	Genre            string
	Synopsis         string
	OriginalLanguage string
	ReleaseDate      string
}

// CastFilter narrows a cast listing.
type CastFilter struct {
	CharacterPrefix string
	RolePrefix      string
	IncludeFacts    bool
}

// BookFacts is the optional book enrichment attached to a cast listing.
type BookFacts struct {
	Title    string
	Genre    string
	Synopsis string
}

// Cast is a cast listing with optional book facts. Facts stay nil when not
// requested or when the book itself is absent.
type Cast struct {
	Members []db.BookCharacter
	Facts   *BookFacts
}

// Service implements catalogue reads and authorized mutations.
type Service struct {
	store          Store
	logger         zerolog.Logger
	detectLanguage func(string) string
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:          store,
		logger:         logger,
		detectLanguage: langdetect.DetectISO6391,
	}
}

func (s *Service) GetBook(ctx context.Context, id int64) (*db.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, fmt.Errorf("%w: book_id=%d", ErrBookNotFound, id)
		}
		return nil, fmt.Errorf("%w: fetch book_id=%d: %v", ErrStoreUnavailable, id, err)
	}
	return book, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]db.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list books: %v", ErrStoreUnavailable, err)
	}
	return books, nil
}

func (s *Service) AddBook(ctx context.Context, input BookInput) (*db.Book, error) {
	row, err := s.bookRowFromInput(input)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.InsertBook(ctx, *row)
	if err != nil {
		return nil, fmt.Errorf("%w: insert book_id=%d: %v", ErrStoreUnavailable, row.ID, err)
	}
	if !inserted {
		return nil, fmt.Errorf("%w: book_id=%d", ErrBookExists, row.ID)
	}

	s.logger.Info().Int64("book_id", row.ID).Str("title", row.Title).Msg("book added")
	return s.GetBook(ctx, row.ID)
}

func (s *Service) UpdateBook(ctx context.Context, id int64, input BookInput) (*db.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}
	input.ID = id
	row, err := s.bookRowFromInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateBook(ctx, id, db.UpdateBookParams{
		Title:            row.Title,
		OriginalTitle:    row.OriginalTitle,
		Genre:            row.Genre,
		Synopsis:         row.Synopsis,
		OriginalLanguage: row.OriginalLanguage,
		ReleaseDate:      row.ReleaseDate,
	})
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, fmt.Errorf("%w: book_id=%d", ErrBookNotFound, id)
		}
		return nil, fmt.Errorf("%w: update book_id=%d: %v", ErrStoreUnavailable, id, err)
	}

	s.logger.Info().Int64("book_id", id).Msg("book updated")
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}
	deleted, err := s.store.DeleteBook(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete book_id=%d: %v", ErrStoreUnavailable, id, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: book_id=%d", ErrBookNotFound, id)
	}

	s.logger.Info().Int64("book_id", id).Msg("book deleted")
	return nil
}

// CastForBook lists the cast of one book. An unknown book id yields an empty
// cast rather than a not-found failure; with IncludeFacts set, Facts stays nil
// in that case.
func (s *Service) CastForBook(ctx context.Context, bookID int64, filter CastFilter) (*Cast, error) {
	if bookID <= 0 {
		return nil, fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}

	members, err := s.store.ListBookCharacters(ctx, bookID, db.CharacterFilter{
		CharacterPrefix: filter.CharacterPrefix,
		RolePrefix:      filter.RolePrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list cast book_id=%d: %v", ErrStoreUnavailable, bookID, err)
	}

	cast := &Cast{Members: members}
	if !filter.IncludeFacts {
		return cast, nil
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return cast, nil
		}
		return nil, fmt.Errorf("%w: fetch book_id=%d: %v", ErrStoreUnavailable, bookID, err)
	}
	cast.Facts = &BookFacts{
		Title:    book.Title,
		Genre:    book.Genre,
		Synopsis: book.Synopsis,
	}
	return cast, nil
}

func (s *Service) bookRowFromInput(input BookInput) (*db.Book, error) {
	if input.ID <= 0 {
		return nil, fmt.Errorf("%w: book id must be a positive integer", ErrInvalidRequest)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	synopsis := strings.TrimSpace(input.Synopsis)

	originalLanguage := language.NormalizeCode(input.OriginalLanguage)
	if originalLanguage == "" && synopsis != "" && s.detectLanguage != nil {
		originalLanguage = s.detectLanguage(synopsis)
	}
	if originalLanguage == "" {
		originalLanguage = "en"
	}

	return &db.Book{
		ID:               input.ID,
		Title:            title,
		OriginalTitle:    strings.TrimSpace(input.OriginalTitle),
		Genre:            strings.TrimSpace(input.Genre),
		Synopsis:         synopsis,
		OriginalLanguage: originalLanguage,
		ReleaseDate:      strings.TrimSpace(input.ReleaseDate),
	}, nil
}
