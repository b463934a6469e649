package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/bookstore/internal/db"
)

type fakeStore struct {
	books      map[int64]db.Book
	characters []db.BookCharacter
	listErr    error
	castCalls  []db.CharacterFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{books: map[int64]db.Book{}}
}

func (s *fakeStore) GetBook(_ context.Context, id int64) (*db.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	copyRow := book
	return &copyRow, nil
}

func (s *fakeStore) ListBooks(_ context.Context) ([]db.Book, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	books := make([]db.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	return books, nil
}

func (s *fakeStore) InsertBook(_ context.Context, row db.Book) (bool, error) {
	if _, exists := s.books[row.ID]; exists {
		return false, nil
	}
	s.books[row.ID] = row
	return true, nil
}

func (s *fakeStore) UpdateBook(_ context.Context, id int64, params db.UpdateBookParams) (*db.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	book.Title = params.Title
	book.OriginalTitle = params.OriginalTitle
	book.Genre = params.Genre
	book.Synopsis = params.Synopsis
	book.OriginalLanguage = params.OriginalLanguage
	book.ReleaseDate = params.ReleaseDate
	s.books[id] = book
	return &book, nil
}

func (s *fakeStore) DeleteBook(_ context.Context, id int64) (int64, error) {
	if _, ok := s.books[id]; !ok {
		return 0, nil
	}
	delete(s.books, id)
	return 1, nil
}

func (s *fakeStore) ListBookCharacters(_ context.Context, bookID int64, filter db.CharacterFilter) ([]db.BookCharacter, error) {
	s.castCalls = append(s.castCalls, filter)
	var members []db.BookCharacter
	for _, member := range s.characters {
		if member.BookID == bookID {
			members = append(members, member)
		}
	}
	return members, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, zerolog.Nop())
	svc.detectLanguage = func(string) string { return "" }
	return svc
}

func TestAddBookDetectsOriginalLanguage(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	svc.detectLanguage = func(text string) string {
		if text == "" {
			t.Fatal("expected synopsis passed to detector")
		}
		return "fr"
	}

	book, err := svc.AddBook(context.Background(), BookInput{
		ID:       7,
		Title:    "Le Petit Prince",
		Synopsis: "Un aviateur rencontre un petit prince venu d'une autre planete.",
	})
	if err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}
	if book.OriginalLanguage != "fr" {
		t.Fatalf("expected detected language fr, got %q", book.OriginalLanguage)
	}
}

func TestAddBookKeepsDeclaredLanguage(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	svc.detectLanguage = func(string) string {
		t.Fatal("detector must not run when a language is declared")
		return ""
	}

	book, err := svc.AddBook(context.Background(), BookInput{
		ID:               8,
		Title:            "Dune",
		Synopsis:         "A desert planet.",
		OriginalLanguage: "EN",
	})
	if err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}
	if book.OriginalLanguage != "en" {
		t.Fatalf("expected normalized language en, got %q", book.OriginalLanguage)
	}
}

func TestAddBookRejectsDuplicateID(t *testing.T) {
	store := newFakeStore()
	store.books[1] = db.Book{ID: 1, Title: "The Hobbit"}
	svc := newTestService(store)

	_, err := svc.AddBook(context.Background(), BookInput{ID: 1, Title: "The Hobbit"})
	if !errors.Is(err, ErrBookExists) {
		t.Fatalf("expected ErrBookExists, got %v", err)
	}
}

func TestAddBookValidatesInput(t *testing.T) {
	svc := newTestService(newFakeStore())

	if _, err := svc.AddBook(context.Background(), BookInput{ID: 0, Title: "x"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for id 0, got %v", err)
	}
	if _, err := svc.AddBook(context.Background(), BookInput{ID: 2, Title: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for blank title, got %v", err)
	}
}

func TestUpdateBookNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.UpdateBook(context.Background(), 42, BookInput{Title: "Anything"})
	if !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestDeleteBookNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	if err := svc.DeleteBook(context.Background(), 42); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestCastForBookWithFacts(t *testing.T) {
	store := newFakeStore()
	store.books[1] = db.Book{ID: 1, Title: "The Hobbit", Genre: "Fantasy", Synopsis: "A hobbit..."}
	store.characters = []db.BookCharacter{
		{BookID: 1, CharacterName: "Bilbo Baggins", RoleName: "protagonist"},
		{BookID: 2, CharacterName: "Frodo Baggins", RoleName: "protagonist"},
	}
	svc := newTestService(store)

	cast, err := svc.CastForBook(context.Background(), 1, CastFilter{IncludeFacts: true})
	if err != nil {
		t.Fatalf("CastForBook failed: %v", err)
	}
	if len(cast.Members) != 1 || cast.Members[0].CharacterName != "Bilbo Baggins" {
		t.Fatalf("unexpected cast members: %+v", cast.Members)
	}
	if cast.Facts == nil || cast.Facts.Title != "The Hobbit" {
		t.Fatalf("expected book facts, got %+v", cast.Facts)
	}
}

func TestCastForBookMissingBookOmitsFacts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	cast, err := svc.CastForBook(context.Background(), 9, CastFilter{IncludeFacts: true})
	if err != nil {
		t.Fatalf("CastForBook failed: %v", err)
	}
	if cast.Facts != nil {
		t.Fatalf("expected nil facts for an absent book, got %+v", cast.Facts)
	}
}
