package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/db"
)

type castMemberView struct {
	BookID        int64     `json:"book_id"`
	CharacterName string    `json:"character_name"`
	RoleName      string    `json:"role_name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type bookFactsView struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Synopsis string `json:"synopsis"`
}

func castMemberViewFromRow(row *db.BookCharacter) castMemberView {
	return castMemberView{
		BookID:        row.BookID,
		CharacterName: row.CharacterName,
		RoleName:      row.RoleName,
		Description:   row.Description,
		CreatedAt:     row.CreatedAt,
	}
}

func (s *Server) handleBookCast(c echo.Context) error {
	id, ok := parseBookID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "Invalid book id", nil)
	}

	filter := catalog.CastFilter{
		CharacterPrefix: strings.TrimSpace(c.QueryParam("character_name")),
		RolePrefix:      strings.TrimSpace(c.QueryParam("role_name")),
		IncludeFacts:    strings.EqualFold(strings.TrimSpace(c.QueryParam("facts")), "true"),
	}

	cast, err := s.catalog.CastForBook(c.Request().Context(), id, filter)
	if err != nil {
		s.logger.Error().Err(err).Int64("book_id", id).Msg("cast lookup failed")
		return internalError(c, "Internal server error")
	}

	members := make([]castMemberView, 0, len(cast.Members))
	for i := range cast.Members {
		members = append(members, castMemberViewFromRow(&cast.Members[i]))
	}

	data := map[string]any{"cast": members}
	if filter.IncludeFacts {
		if cast.Facts != nil {
			data["book"] = bookFactsView{
				Title:    cast.Facts.Title,
				Genre:    cast.Facts.Genre,
				Synopsis: cast.Facts.Synopsis,
			}
		} else {
			data["note"] = "Book details not found"
		}
	}
	return success(c, data)
}
