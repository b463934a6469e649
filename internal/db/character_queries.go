package db

import (
	"context"
	"fmt"
	"strings"
)

// CharacterFilter narrows a cast listing by name prefixes. At most one prefix
// is applied; a role prefix takes precedence, matching the index layout.
type CharacterFilter struct {
	CharacterPrefix string
	RolePrefix      string
}

// ListBookCharacters returns the cast of one book, optionally filtered by a
// character-name or role-name prefix.
func (p *Pool) ListBookCharacters(ctx context.Context, bookID int64, filter CharacterFilter) ([]BookCharacter, error) {
	q := `
SELECT
	c.book_id,
	c.character_name,
	c.role_name,
	c.description,
	c.created_at
FROM bookstore.book_characters c
WHERE c.book_id = $1
`
	args := []any{bookID}

	switch {
	case strings.TrimSpace(filter.RolePrefix) != "":
		q += "  AND c.role_name LIKE $2 || '%'\nORDER BY c.role_name, c.character_name\n"
		args = append(args, strings.TrimSpace(filter.RolePrefix))
	case strings.TrimSpace(filter.CharacterPrefix) != "":
		q += "  AND c.character_name LIKE $2 || '%'\nORDER BY c.character_name\n"
		args = append(args, strings.TrimSpace(filter.CharacterPrefix))
	default:
		q += "ORDER BY c.character_name\n"
	}

	rows, err := p.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query book characters: %w", err)
	}
	defer rows.Close()

	var cast []BookCharacter
	for rows.Next() {
		var row BookCharacter
		if err := rows.Scan(
			&row.BookID,
			&row.CharacterName,
			&row.RoleName,
			&row.Description,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan character row: %w", err)
		}
		cast = append(cast, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character rows: %w", err)
	}
	return cast, nil
}

// InsertBookCharacter adds one cast member, ignoring duplicates.
func (p *Pool) InsertBookCharacter(ctx context.Context, row BookCharacter) (bool, error) {
	const q = `
INSERT INTO bookstore.book_characters (
	book_id,
	character_name,
	role_name,
	description
)
VALUES ($1, $2, $3, $4)
ON CONFLICT (book_id, character_name) DO NOTHING
`

	tag, err := p.Exec(ctx, q, row.BookID, row.CharacterName, row.RoleName, row.Description)
	if err != nil {
		return false, fmt.Errorf("insert book character: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
