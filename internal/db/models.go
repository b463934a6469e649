package db

import "time"

// Book maps bookstore.books. Identifiers are assigned externally when the
// catalogue is seeded and never change afterwards.
type Book struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Title            string    `gorm:"column:title;type:text;not null"`
	OriginalTitle    string    `gorm:"column:original_title;type:text;not null;default:''"`
	Genre            string    `gorm:"column:genre;type:text;not null;default:''"`
	Synopsis         string    `gorm:"column:synopsis;type:text;not null;default:''"`
	OriginalLanguage string    `gorm:"column:original_language;type:text;not null;default:en"`
	ReleaseDate      string    `gorm:"column:release_date;type:text;not null;default:''"`
	CreatedAt        time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (Book) TableName() string { return "bookstore.books" }

// BookCharacter maps bookstore.book_characters.
type BookCharacter struct {
	BookID        int64     `gorm:"column:book_id;primaryKey"`
	CharacterName string    `gorm:"column:character_name;type:text;primaryKey"`
	RoleName      string    `gorm:"column:role_name;type:text;not null;default:''"`
	Description   string    `gorm:"column:description;type:text;not null;default:''"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (BookCharacter) TableName() string { return "bookstore.book_characters" }

// BookTranslation maps bookstore.book_translations. Rows are written once per
// (book_id, language) pair and never invalidated; stale copies of the source
// fields are removed manually when a synopsis changes.
type BookTranslation struct {
	BookID             int64     `gorm:"column:book_id;primaryKey"`
	Language           string    `gorm:"column:language;type:text;primaryKey"`
	TranslatedSynopsis string    `gorm:"column:translated_synopsis;type:text;not null"`
	Title              string    `gorm:"column:title;type:text;not null;default:''"`
	OriginalTitle      string    `gorm:"column:original_title;type:text;not null;default:''"`
	Genre              string    `gorm:"column:genre;type:text;not null;default:''"`
	Synopsis           string    `gorm:"column:synopsis;type:text;not null;default:''"`
	OriginalLanguage   string    `gorm:"column:original_language;type:text;not null;default:''"`
	ReleaseDate        string    `gorm:"column:release_date;type:text;not null;default:''"`
	ProviderName       string    `gorm:"column:provider_name;type:text;not null;default:''"`
	CreatedAt          time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (BookTranslation) TableName() string { return "bookstore.book_translations" }

func autoMigrateModels() []any {
	return []any{
		&Book{},
		&BookCharacter{},
		&BookTranslation{},
	}
}
