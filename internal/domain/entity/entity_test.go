package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMessage(errs FieldErrors, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func TestUserValidate(t *testing.T) {
	u := &User{Username: "reader", Email: "reader@example.com", Role: RoleUser}
	assert.Empty(t, u.Validate())

	t.Run("MissingUsername", func(t *testing.T) {
		bad := &User{Email: "reader@example.com", Role: RoleUser}
		assert.NotEmpty(t, fieldMessage(bad.Validate(), "username"))
	})

	t.Run("BadEmail", func(t *testing.T) {
		bad := &User{Username: "reader", Email: "not-an-email", Role: RoleUser}
		assert.NotEmpty(t, fieldMessage(bad.Validate(), "email"))
	})

	t.Run("UnknownRole", func(t *testing.T) {
		bad := &User{Username: "reader", Email: "reader@example.com", Role: "superuser"}
		assert.NotEmpty(t, fieldMessage(bad.Validate(), "role"))
	})

	t.Run("LongBio", func(t *testing.T) {
		bad := &User{Username: "reader", Email: "reader@example.com", Role: RoleUser, Bio: strings.Repeat("x", 1001)}
		assert.NotEmpty(t, fieldMessage(bad.Validate(), "bio"))
	})
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "reader", UsernameFromEmail("reader@example.com"))
	assert.Equal(t, "no-at-sign", UsernameFromEmail("no-at-sign"))
}

func TestTermValidate(t *testing.T) {
	c := &Category{Name: "Films", Slug: "films"}
	assert.Empty(t, c.Validate())

	cases := []struct {
		name string
		slug string
	}{
		{"uppercase", "Films"},
		{"spaces", "two words"},
		{"leading dash", "-films"},
		{"too long", strings.Repeat("a", 41)},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Genre{Name: "Something", Slug: tc.slug}
			assert.NotEmpty(t, fieldMessage(g.Validate(), "slug"))
		})
	}
}

func TestTitleValidateYear(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	current := &Title{Name: "New Release", Year: 2026}
	assert.Empty(t, current.Validate(now))

	old := &Title{Name: "Classic", Year: 1927}
	assert.Empty(t, old.Validate(now))

	future := &Title{Name: "Announced", Year: 2027}
	errs := future.Validate(now)
	require.NotEmpty(t, errs)
	assert.Equal(t, "cannot be greater than the current year", fieldMessage(errs, "year"))
}

func TestReviewValidateScore(t *testing.T) {
	for score := 1; score <= 10; score++ {
		r := &Review{Text: "fine", Score: score}
		assert.Empty(t, r.Validate(), "score %d must be accepted", score)
	}
	for _, score := range []int{0, -1, 11, 100} {
		r := &Review{Text: "fine", Score: score}
		assert.NotEmpty(t, fieldMessage(r.Validate(), "score"), "score %d must be rejected", score)
	}
}

func TestCommentValidate(t *testing.T) {
	assert.Empty(t, (&Comment{Text: "agreed"}).Validate())
	assert.NotEmpty(t, fieldMessage((&Comment{Text: "   "}).Validate(), "text"))
}
