package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

var (
	anon      = Anonymous
	reader    = Caller{ID: "u1", Role: entity.RoleUser, Active: true, Authenticated: true}
	moderator = Caller{ID: "m1", Role: entity.RoleModerator, Active: true, Authenticated: true}
	admin     = Caller{ID: "a1", Role: entity.RoleAdmin, Active: true, Authenticated: true}
	suspended = Caller{ID: "s1", Role: entity.RoleUser, Active: false, Authenticated: true}
)

func TestReviewWrite(t *testing.T) {
	cases := []struct {
		name    string
		caller  Caller
		method  string
		ownerID string
		want    bool
	}{
		{"anonymous read", anon, http.MethodGet, "u1", true},
		{"anonymous patch", anon, http.MethodPatch, "u1", false},
		{"owner patch", reader, http.MethodPatch, "u1", true},
		{"owner delete", reader, http.MethodDelete, "u1", true},
		{"stranger patch", reader, http.MethodPatch, "u2", false},
		{"moderator patch foreign", moderator, http.MethodPatch, "u2", true},
		{"admin delete foreign", admin, http.MethodDelete, "u2", true},
		{"suspended owner patch", suspended, http.MethodPatch, "s1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReviewWrite(tc.caller, tc.method, tc.ownerID))
		})
	}
}

func TestReviewCreate(t *testing.T) {
	assert.True(t, ReviewCreate(reader, http.MethodPost, ""))
	assert.True(t, ReviewCreate(anon, http.MethodGet, ""))
	assert.False(t, ReviewCreate(anon, http.MethodPost, ""))
	assert.False(t, ReviewCreate(suspended, http.MethodPost, ""))
}

func TestCatalogWrite(t *testing.T) {
	assert.True(t, CatalogWrite(anon, http.MethodGet, ""))
	assert.True(t, CatalogWrite(admin, http.MethodPost, ""))
	assert.False(t, CatalogWrite(reader, http.MethodPost, ""))
	// moderators rank below admins for the catalog
	assert.False(t, CatalogWrite(moderator, http.MethodDelete, ""))
}

func TestDirectoryAdmin(t *testing.T) {
	assert.True(t, DirectoryAdmin(admin, http.MethodGet, ""))
	assert.False(t, DirectoryAdmin(moderator, http.MethodGet, ""))
	assert.False(t, DirectoryAdmin(reader, http.MethodGet, ""))
	assert.False(t, DirectoryAdmin(anon, http.MethodGet, ""))
}

func TestCombinators(t *testing.T) {
	always := Predicate(func(Caller, string, string) bool { return true })
	never := Predicate(func(Caller, string, string) bool { return false })

	assert.True(t, Or(never, always)(anon, http.MethodGet, ""))
	assert.False(t, Or(never, never)(anon, http.MethodGet, ""))
	assert.True(t, And(always, always)(anon, http.MethodGet, ""))
	assert.False(t, And(always, never)(anon, http.MethodGet, ""))
}

func TestCallerFromUser(t *testing.T) {
	u := &entity.User{ID: "u9", Role: entity.RoleModerator, IsActive: true}
	c := CallerFromUser(u)
	assert.Equal(t, "u9", c.ID)
	assert.True(t, c.Authenticated)
	assert.True(t, c.Active)

	assert.Equal(t, Anonymous, CallerFromUser(nil))
}
