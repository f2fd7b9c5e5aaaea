package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e repository.AuditEntry) error {
	var md []byte
	if e.Metadata != nil {
		md, _ = json.Marshal(e.Metadata)
	}
	var userID *string
	if e.UserID != "" {
		userID = &e.UserID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6)
	`, userID, e.Email, e.Action, e.IP, e.UserAgent, md)
	return translateErr(err)
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
