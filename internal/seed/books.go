package seed

import (
	"context"
	"fmt"

	"horse.fit/bookstore/internal/db"
)

// Store is the persistence surface needed to seed the catalogue.
type Store interface {
	InsertBook(ctx context.Context, row db.Book) (bool, error)
	InsertBookCharacter(ctx context.Context, row db.BookCharacter) (bool, error)
}

// Stats reports how many seed rows were inserted versus already present.
type Stats struct {
	BooksInserted      int
	BooksSkipped       int
	CharactersInserted int
	CharactersSkipped  int
}

// Apply inserts the seed catalogue. Existing rows are left untouched, so the
// command is safe to run repeatedly.
func Apply(ctx context.Context, store Store) (Stats, error) {
	var stats Stats

	for _, book := range Books() {
		inserted, err := store.InsertBook(ctx, book)
		if err != nil {
			return stats, fmt.Errorf("seed book %d: %w", book.ID, err)
		}
		if inserted {
			stats.BooksInserted++
		} else {
			stats.BooksSkipped++
		}
	}

	for _, member := range BookCharacters() {
		inserted, err := store.InsertBookCharacter(ctx, member)
		if err != nil {
			return stats, fmt.Errorf("seed character %q: %w", member.CharacterName, err)
		}
		if inserted {
			stats.CharactersInserted++
		} else {
			stats.CharactersSkipped++
		}
	}

	return stats, nil
}

// Books returns the seed catalogue.
func Books() []db.Book {
	return []db.Book{
		{
			ID:               1,
			Title:            "The Hobbit",
			OriginalTitle:    "There and Back Again",
			Genre:            "Fantasy",
			Synopsis:         "A well mannered Hobbit named Bilbo Baggins, embarks upon a journey to take back a kingdom, and a very important jewel, with twelve dwarves, and a wizard named Gandalf the Grey.",
			OriginalLanguage: "en",
			ReleaseDate:      "1937-09-21",
		},
		{
			ID:               2,
			Title:            "Lord of the Rings",
			OriginalTitle:    "Lord of the Rings",
			Genre:            "Fantasy",
			Synopsis:         "A hobbit named Frodo inherits the One Ring, which can destroy the entire world. With the recently reawakened evil, being Sauron, going after the Ring to cement his reign, Frodo joins with eight others to destroy the Ring and defeat Sauron.",
			OriginalLanguage: "en",
			ReleaseDate:      "1954-07-29",
		},
		{
			ID:               3,
			Title:            "Pride and Prejudice",
			OriginalTitle:    "Pride and Prejudice",
			Genre:            "Romance",
			Synopsis:         "Pride and Prejudice follows the turbulent relationship between Elizabeth Bennet, the daughter of a country gentleman, and Fitzwilliam Darcy, a rich aristocratic landowner. They must overcome the titular sins of pride and prejudice in order to fall in love and marry.",
			OriginalLanguage: "en",
			ReleaseDate:      "1813-01-28",
		},
		{
			ID:               4,
			Title:            "The Picture of Dorian Gray",
			OriginalTitle:    "The Picture of Dorian Gray",
			Genre:            "Gothic Fiction",
			Synopsis:         "The story revolves around a portrait of Dorian Gray painted by Basil Hallward, a friend of Dorians and an artist infatuated with Dorians beauty. Through Basil, Dorian meets Lord Henry Wotton and is soon enthralled by the aristocrats hedonistic worldview: that beauty and sensual fulfillment are the only things worth pursuing in life.",
			OriginalLanguage: "en",
			ReleaseDate:      "1890-06-20",
		},
	}
}

// BookCharacters returns the seed cast.
func BookCharacters() []db.BookCharacter {
	return []db.BookCharacter{
		{BookID: 1, CharacterName: "Bilbo Baggins", RoleName: "protagonist", Description: "A well mannered hobbit of Bag End."},
		{BookID: 1, CharacterName: "Gandalf the Grey", RoleName: "mentor", Description: "A wandering wizard."},
		{BookID: 1, CharacterName: "Thorin Oakenshield", RoleName: "leader", Description: "Leader of the company of dwarves."},
		{BookID: 2, CharacterName: "Frodo Baggins", RoleName: "protagonist", Description: "Bearer of the One Ring."},
		{BookID: 2, CharacterName: "Samwise Gamgee", RoleName: "companion", Description: "Frodo's gardener and companion."},
		{BookID: 2, CharacterName: "Sauron", RoleName: "antagonist", Description: "The reawakened dark lord."},
		{BookID: 3, CharacterName: "Elizabeth Bennet", RoleName: "protagonist", Description: "Daughter of a country gentleman."},
		{BookID: 3, CharacterName: "Fitzwilliam Darcy", RoleName: "protagonist", Description: "A rich aristocratic landowner."},
		{BookID: 4, CharacterName: "Dorian Gray", RoleName: "protagonist", Description: "Subject of Basil Hallward's portrait."},
		{BookID: 4, CharacterName: "Lord Henry Wotton", RoleName: "antagonist", Description: "An aristocrat with a hedonistic worldview."},
	}
}
