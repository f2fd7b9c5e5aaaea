package entity

import (
	"net/mail"
	"strings"
	"time"
)

// Roles, least privilege first. New accounts always start as RoleUser;
// only an admin can raise a role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is the aggregate root for the user directory. Identity is the
// email address; PasswordHash holds the bcrypt hash of the confirmation
// code issued at registration.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	Role         string
	IsActive     bool
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// UsernameFromEmail derives the registration username from the email's
// local part.
func UsernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// Validate checks directory-level rules for a user record.
func (u *User) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(u.Username) == "" {
		errs = errs.Add("username", "is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		errs = errs.Add("email", "must be a valid email")
	}
	if !ValidRole(u.Role) {
		errs = errs.Add("role", "must be one of user, moderator, admin")
	}
	if len(u.Bio) > 1000 {
		errs = errs.Add("bio", "must be at most 1000 characters long")
	}
	return errs
}
