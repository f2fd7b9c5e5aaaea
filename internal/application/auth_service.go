package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/pkg/helpers"
	"github.com/yamdb/yamdb/pkg/mailer"
	tpl "github.com/yamdb/yamdb/pkg/mailer/templates"
)

// EmailPublisher enqueues email jobs; nil disables delivery.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements the two-step registration machine:
// unregistered -> pending (code issued and mailed) -> active caller
// holding a bearer token.
type AuthService struct {
	Users  repository.UserRepository
	Audit  repository.AuditRepository
	JWT    *helpers.JWTManager
	Pub    EmailPublisher
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, audit repository.AuditRepository,
	jwt *helpers.JWTManager, pub EmailPublisher, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Audit: audit, JWT: jwt, Pub: pub, Redis: rdb, Logger: logger}
}

func sessionKey(userID string) string { return "user:session:" + userID }

// bcrypt hash of an arbitrary value. Compared against on unknown-email
// token exchanges so that path costs the same as a real code check and
// response timing cannot reveal whether the account exists.
const timingDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// registerAttempts bounds username-collision retries during Create.
const registerAttempts = 3

// Register creates a user for email, stores the bcrypt hash of a fresh
// confirmation code as the account secret, and enqueues one
// confirmation email. A known email is a validation failure.
func (s *AuthService) Register(ctx context.Context, email string) (*entity.User, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	code, err := helpers.GenConfirmationCode()
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashSecret(code)
	if err != nil {
		return nil, err
	}

	base := entity.UsernameFromEmail(email)
	u := &entity.User{
		Username:     base,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if fields := u.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	// Two emails can share a local part, so a duplicate on Create is
	// not necessarily the email: only report ErrEmailTaken when the
	// email really exists, otherwise retry under a suffixed username.
	for attempt := 0; ; attempt++ {
		err := s.Users.Create(ctx, u)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		if _, eErr := s.Users.GetByEmail(ctx, email); eErr == nil {
			return nil, ErrEmailTaken
		}
		if attempt >= registerAttempts {
			return nil, err
		}
		suffix, sErr := helpers.GenConfirmationCode()
		if sErr != nil {
			return nil, sErr
		}
		u.Username = base + "-" + strings.ToLower(suffix[:4])
	}

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: tpl.TemplateConfirmationCode,
			Data:     map[string]any{"Username": u.Username, "Code": code},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue confirmation email")
		}
	} else if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Debug("email delivery disabled, confirmation code not sent")
	}

	s.audit(ctx, u.ID, u.Email, "register", nil)
	return u, nil
}

// IssueToken exchanges (email, confirmation code) for a bearer access
// token. All failure modes collapse into ErrInvalidCredentials so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) IssueToken(ctx context.Context, email, code string) (string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// burn the same bcrypt cost as the known-email path
		helpers.CompareHashAndSecret(timingDummyHash, code)
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !u.IsActive || !helpers.CompareHashAndSecret(u.PasswordHash, code) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return "", time.Time{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, time.Until(exp))
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	s.audit(ctx, u.ID, u.Email, "token_issued", nil)
	return token, exp, nil
}

func (s *AuthService) audit(ctx context.Context, userID, email, action string, md map[string]any) {
	if s.Audit == nil {
		return
	}
	entry := repository.AuditEntry{UserID: userID, Email: email, Action: action, Metadata: md}
	if err := s.Audit.Insert(ctx, entry); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}
