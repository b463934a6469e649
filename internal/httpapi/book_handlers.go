package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/db"
	bookschema "horse.fit/bookstore/internal/schema"
)

type bookView struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	OriginalTitle    string    `json:"original_title"`
	Genre            string    `json:"genre"`
	Synopsis         string    `json:"synopsis"`
	OriginalLanguage string    `json:"original_language"`
	ReleaseDate      string    `json:"release_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func bookViewFromRow(row *db.Book) bookView {
	return bookView{
		ID:               row.ID,
		Title:            row.Title,
		OriginalTitle:    row.OriginalTitle,
		Genre:            row.Genre,
		Synopsis:         row.Synopsis,
		OriginalLanguage: row.OriginalLanguage,
		ReleaseDate:      row.ReleaseDate,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func (s *Server) handleListBooks(c echo.Context) error {
	rows, err := s.catalog.ListBooks(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list books failed")
		return internalError(c, "Internal server error")
	}

	views := make([]bookView, 0, len(rows))
	for i := range rows {
		views = append(views, bookViewFromRow(&rows[i]))
	}
	return success(c, map[string]any{"books": views})
}

func (s *Server) handleGetBook(c echo.Context) error {
	id, ok := parseBookID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "Invalid book id", nil)
	}

	row, err := s.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			return failNotFound(c, "Book not found")
		}
		s.logger.Error().Err(err).Int64("book_id", id).Msg("get book failed")
		return internalError(c, "Internal server error")
	}
	return success(c, map[string]any{"book": bookViewFromRow(row)})
}

func (s *Server) handleAddBook(c echo.Context) error {
	payload, err := readBookPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	}

	row, err := s.catalog.AddBook(c.Request().Context(), bookInputFromPayload(payload))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBookExists):
			return fail(c, http.StatusConflict, "Book already exists", nil)
		case errors.Is(err, catalog.ErrInvalidRequest):
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Int64("book_id", payload.ID).Msg("add book failed")
		return internalError(c, "Internal server error")
	}
	return successWithStatus(c, http.StatusCreated, map[string]any{"book": bookViewFromRow(row)})
}

func (s *Server) handleUpdateBook(c echo.Context) error {
	id, ok := parseBookID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "Invalid book id", nil)
	}

	payload, err := readBookPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	}
	if payload.ID != id {
		return fail(c, http.StatusBadRequest, "Payload id does not match path", nil)
	}

	row, err := s.catalog.UpdateBook(c.Request().Context(), id, bookInputFromPayload(payload))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBookNotFound):
			return failNotFound(c, "Book not found")
		case errors.Is(err, catalog.ErrInvalidRequest):
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Int64("book_id", id).Msg("update book failed")
		return internalError(c, "Internal server error")
	}
	return success(c, map[string]any{"book": bookViewFromRow(row)})
}

func (s *Server) handleDeleteBook(c echo.Context) error {
	id, ok := parseBookID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "Invalid book id", nil)
	}

	if err := s.catalog.DeleteBook(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			return failNotFound(c, "Book not found")
		}
		s.logger.Error().Err(err).Int64("book_id", id).Msg("delete book failed")
		return internalError(c, "Internal server error")
	}
	return success(c, nil)
}

// readBookPayload reads the raw request body and runs it through the JSON
// schema validator so malformed or extra fields are rejected before any
// database work happens.
func readBookPayload(c echo.Context) (*bookschema.BookPayload, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return nil, errors.New("unable to read request body")
	}
	return bookschema.ValidateBookPayload(json.RawMessage(raw))
}

func bookInputFromPayload(payload *bookschema.BookPayload) catalog.BookInput {
	return catalog.BookInput{
		ID:               payload.ID,
		Title:            payload.Title,
		OriginalTitle:    payload.OriginalTitle,
		Genre:            payload.Genre,
		Synopsis:         payload.Synopsis,
		OriginalLanguage: payload.OriginalLanguage,
		ReleaseDate:      payload.ReleaseDate,
	}
}
