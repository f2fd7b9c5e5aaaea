package repository

import "context"

// AuditEntry records an auth-related event for later inspection.
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

// AuditRepository appends to the audit log. Writes are best-effort; the
// caller ignores failures.
type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
