package entity

import (
	"strings"
	"time"
)

const scoreRangeMessage = "must be between 1 and 10"

// Review is a user's opinion of a title. At most one review may exist
// per (author, title) pair; the store enforces that with a unique
// constraint.
type Review struct {
	ID        int64
	TitleID   int64
	AuthorID  string
	Author    string // username, denormalised for responses
	Text      string
	Score     int
	CreatedAt time.Time
}

func (r *Review) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(r.Text) == "" {
		errs = errs.Add("text", "is required")
	}
	if r.Score < 1 || r.Score > 10 {
		errs = errs.Add("score", scoreRangeMessage)
	}
	return errs
}
