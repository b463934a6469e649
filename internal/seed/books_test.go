package seed

import (
	"context"
	"testing"

	"horse.fit/bookstore/internal/db"
)

type fakeSeedStore struct {
	books      map[int64]db.Book
	characters map[string]db.BookCharacter
	failBookID int64
}

func newFakeSeedStore() *fakeSeedStore {
	return &fakeSeedStore{
		books:      map[int64]db.Book{},
		characters: map[string]db.BookCharacter{},
	}
}

func (s *fakeSeedStore) InsertBook(_ context.Context, row db.Book) (bool, error) {
	if s.failBookID != 0 && row.ID == s.failBookID {
		return false, context.DeadlineExceeded
	}
	if _, exists := s.books[row.ID]; exists {
		return false, nil
	}
	s.books[row.ID] = row
	return true, nil
}

func (s *fakeSeedStore) InsertBookCharacter(_ context.Context, row db.BookCharacter) (bool, error) {
	key := row.CharacterName
	if _, exists := s.characters[key]; exists {
		return false, nil
	}
	s.characters[key] = row
	return true, nil
}

func TestApply_InsertsFullCatalogue(t *testing.T) {
	t.Parallel()

	store := newFakeSeedStore()
	stats, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if stats.BooksInserted != len(Books()) || stats.BooksSkipped != 0 {
		t.Fatalf("unexpected book stats: %+v", stats)
	}
	if stats.CharactersInserted != len(BookCharacters()) || stats.CharactersSkipped != 0 {
		t.Fatalf("unexpected character stats: %+v", stats)
	}
}

func TestApply_SecondRunSkipsEverything(t *testing.T) {
	t.Parallel()

	store := newFakeSeedStore()
	if _, err := Apply(context.Background(), store); err != nil {
		t.Fatalf("first Apply returned error: %v", err)
	}

	stats, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("second Apply returned error: %v", err)
	}
	if stats.BooksInserted != 0 || stats.CharactersInserted != 0 {
		t.Fatalf("expected no inserts on second run, got %+v", stats)
	}
	if stats.BooksSkipped != len(Books()) || stats.CharactersSkipped != len(BookCharacters()) {
		t.Fatalf("unexpected skip counts: %+v", stats)
	}
}

func TestApply_StopsOnStoreError(t *testing.T) {
	t.Parallel()

	store := newFakeSeedStore()
	store.failBookID = Books()[0].ID

	if _, err := Apply(context.Background(), store); err == nil {
		t.Fatalf("expected error when the store rejects an insert")
	}
}

func TestSeedCharactersReferenceSeedBooks(t *testing.T) {
	t.Parallel()

	bookIDs := map[int64]bool{}
	for _, book := range Books() {
		bookIDs[book.ID] = true
	}

	for _, member := range BookCharacters() {
		if !bookIDs[member.BookID] {
			t.Fatalf("character %q references unknown book %d", member.CharacterName, member.BookID)
		}
		if member.CharacterName == "" || member.RoleName == "" {
			t.Fatalf("character row missing name or role: %+v", member)
		}
	}
}
