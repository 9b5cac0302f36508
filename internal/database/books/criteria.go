package books

import (
	sq "github.com/Masterminds/squirrel"
)

// Criteria narrows a book search. Every non-empty field is a substring match
// whose case handling follows the store's collation; empty fields match everything.
type Criteria struct {
	Title     string
	Author    string
	Genre     string
	Publisher string
}

// IsEmpty reports whether no field constrains the search.
func (c Criteria) IsEmpty() bool {
	return c.Title == "" && c.Author == "" && c.Genre == "" && c.Publisher == ""
}

// Sqlizer builds the WHERE clause for the search. Genre matches on the
// genre's name, so books without a genre never match a genre filter.
func (c Criteria) Sqlizer() sq.Sqlizer {
	conds := sq.And{}
	if c.Title != "" {
		conds = append(conds, sq.Like{"books.title": contains(c.Title)})
	}
	if c.Author != "" {
		conds = append(conds, sq.Like{"books.author": contains(c.Author)})
	}
	if c.Publisher != "" {
		conds = append(conds, sq.Like{"books.publisher": contains(c.Publisher)})
	}
	if c.Genre != "" {
		conds = append(conds, sq.Expr(
			"books.genre_id IN (SELECT genres.id FROM genres WHERE genres.name LIKE ?)",
			contains(c.Genre),
		))
	}
	return conds
}

// contains wraps value for LIKE as given. Whitespace is part of the search
// text, and % and _ keep their wildcard meaning.
func contains(value string) string {
	return "%" + value + "%"
}
