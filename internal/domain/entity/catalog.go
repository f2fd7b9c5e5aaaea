package entity

import (
	"regexp"
	"strings"
	"time"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Category groups titles; the slug is the external identifier.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre tags titles, many-to-many.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Title is a catalogued creative work. Rating is derived, never stored:
// the mean of linked review scores, nil when there are none.
type Title struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Category    *Category
	Genres      []Genre
	Rating      *float64
	CreatedAt   time.Time
}

func validateTerm(name, slug string) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(name) == "" {
		errs = errs.Add("name", "is required")
	}
	if len(name) > 200 {
		errs = errs.Add("name", "must be at most 200 characters long")
	}
	if !slugRe.MatchString(slug) || len(slug) > 40 {
		errs = errs.Add("slug", "must be a lowercase slug of at most 40 characters")
	}
	return errs
}

func (c *Category) Validate() FieldErrors { return validateTerm(c.Name, c.Slug) }
func (g *Genre) Validate() FieldErrors    { return validateTerm(g.Name, g.Slug) }

// Validate checks catalog rules for a title. The year must not be in the
// future relative to now.
func (t *Title) Validate(now time.Time) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(t.Name) == "" {
		errs = errs.Add("name", "is required")
	}
	if len(t.Name) > 200 {
		errs = errs.Add("name", "must be at most 200 characters long")
	}
	if t.Year > now.Year() {
		errs = errs.Add("year", "cannot be greater than the current year")
	}
	return errs
}
