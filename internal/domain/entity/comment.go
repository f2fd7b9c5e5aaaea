package entity

import (
	"strings"
	"time"
)

// Comment is attached to a review and dies with it.
type Comment struct {
	ID        int64
	ReviewID  int64
	AuthorID  string
	Author    string // username, denormalised for responses
	Text      string
	CreatedAt time.Time
}

func (c *Comment) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(c.Text) == "" {
		errs = errs.Add("text", "is required")
	}
	return errs
}
