package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/db"
)

type translationView struct {
	BookID             int64     `json:"book_id"`
	Language           string    `json:"language"`
	TranslatedSynopsis string    `json:"translated_synopsis"`
	Title              string    `json:"title"`
	OriginalTitle      string    `json:"original_title"`
	Genre              string    `json:"genre"`
	Synopsis           string    `json:"synopsis"`
	OriginalLanguage   string    `json:"original_language"`
	ReleaseDate        string    `json:"release_date"`
	ProviderName       string    `json:"provider_name"`
	CreatedAt          time.Time `json:"created_at"`
	Cached             bool      `json:"cached"`
}

func translationViewFromRow(row *db.BookTranslation, cached bool) translationView {
	return translationView{
		BookID:             row.BookID,
		Language:           row.Language,
		TranslatedSynopsis: row.TranslatedSynopsis,
		Title:              row.Title,
		OriginalTitle:      row.OriginalTitle,
		Genre:              row.Genre,
		Synopsis:           row.Synopsis,
		OriginalLanguage:   row.OriginalLanguage,
		ReleaseDate:        row.ReleaseDate,
		ProviderName:       row.ProviderName,
		CreatedAt:          row.CreatedAt,
		Cached:             cached,
	}
}

func (s *Server) handleBookTranslation(c echo.Context) error {
	rawID := strings.TrimSpace(c.Param("book_id"))
	language := strings.TrimSpace(c.QueryParam("language"))
	if rawID == "" || language == "" {
		return fail(c, http.StatusBadRequest, "Missing bookId or language parameter", nil)
	}

	id, ok := parseBookID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "Missing bookId or language parameter", nil)
	}

	row, created, err := s.translator.GetOrCreateTranslation(c.Request().Context(), id, language)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidRequest):
			return fail(c, http.StatusBadRequest, "Missing bookId or language parameter", nil)
		case errors.Is(err, catalog.ErrBookNotFound):
			return failNotFound(c, "Original item not found")
		}
		s.logger.Error().
			Err(err).
			Int64("book_id", id).
			Str("language", language).
			Msg("translation request failed")
		return internalError(c, "Internal server error")
	}

	return success(c, map[string]any{
		"translation": translationViewFromRow(row, !created),
	})
}
