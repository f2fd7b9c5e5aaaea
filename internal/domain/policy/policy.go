// Package policy models endpoint authorization as small pure predicates
// over the caller, the HTTP method, and (for object mutation) the target
// object's owner. Endpoint rules are boolean compositions built with Or
// and And, mirroring how the permission matrix reads: a review may be
// mutated by its author, a moderator, or an admin; the catalog only by
// an admin; safe methods are always allowed.
package policy

import (
	"net/http"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

// Caller describes the authenticated (or anonymous) principal of a
// request. The zero value is an anonymous caller.
type Caller struct {
	ID            string
	Role          string
	Active        bool
	Authenticated bool
}

// Anonymous is the caller for requests without credentials.
var Anonymous = Caller{}

// CallerFromUser builds a Caller for a directory user.
func CallerFromUser(u *entity.User) Caller {
	if u == nil {
		return Anonymous
	}
	return Caller{ID: u.ID, Role: u.Role, Active: u.IsActive, Authenticated: true}
}

// Predicate decides whether a caller may perform method on an object
// owned by ownerID. ownerID is empty for collection-level checks.
type Predicate func(c Caller, method string, ownerID string) bool

// Or allows if any predicate allows.
func Or(ps ...Predicate) Predicate {
	return func(c Caller, method, ownerID string) bool {
		for _, p := range ps {
			if p(c, method, ownerID) {
				return true
			}
		}
		return false
	}
}

// And allows only if every predicate allows.
func And(ps ...Predicate) Predicate {
	return func(c Caller, method, ownerID string) bool {
		for _, p := range ps {
			if !p(c, method, ownerID) {
				return false
			}
		}
		return true
	}
}

// ReadOnly allows safe (non-mutating) methods for anyone.
func ReadOnly(_ Caller, method string, _ string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAuthenticated requires an active authenticated caller.
func IsAuthenticated(c Caller, _ string, _ string) bool {
	return c.Authenticated && c.Active
}

// IsAdmin requires an active admin.
func IsAdmin(c Caller, _ string, _ string) bool {
	return c.Authenticated && c.Active && c.Role == entity.RoleAdmin
}

// IsModerator requires an active moderator.
func IsModerator(c Caller, _ string, _ string) bool {
	return c.Authenticated && c.Active && c.Role == entity.RoleModerator
}

// IsOwner requires the caller to be the object's author.
func IsOwner(c Caller, _ string, ownerID string) bool {
	return c.Authenticated && c.Active && ownerID != "" && c.ID == ownerID
}

// Endpoint rules, composed once and shared by handlers.
var (
	// ReviewWrite gates mutation of a specific review or comment.
	ReviewWrite = Or(ReadOnly, IsOwner, IsModerator, IsAdmin)
	// ReviewCreate gates posting into a review/comment collection.
	ReviewCreate = Or(ReadOnly, IsAuthenticated)
	// CatalogWrite gates category/genre/title mutation.
	CatalogWrite = Or(ReadOnly, IsAdmin)
	// DirectoryAdmin gates the /users collection.
	DirectoryAdmin = IsAdmin
)
