package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/pkg/helpers"
)

// UserService covers both the caller's own profile ("me") and the
// admin-only user directory.
type UserService struct {
	Users     repository.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(users repository.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

// ProfileInput is a partial update; nil fields are left untouched.
type ProfileInput struct {
	Username *string
	Bio      *string
}

// UpdateProfile applies a partial update to the caller's own record.
// The role is deliberately not part of the input: a plain user must not
// be able to escalate through the "me" endpoint.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if fields := u.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationErr(entity.FieldErrors{}.Add("username", "is already taken"))
		}
		return nil, err
	}
	return u, nil
}

// DirectoryInput is the admin-side create/update payload.
type DirectoryInput struct {
	Username *string
	Email    *string
	Bio      *string
	Role     *string
	IsActive *bool
}

// CreateUser is the admin path: the account is created active with a
// random secret, same as registration but without the email round-trip.
func (s *UserService) CreateUser(ctx context.Context, in DirectoryInput) (*entity.User, error) {
	secret, err := helpers.GenConfirmationCode()
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashSecret(secret)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Role:         entity.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
	}
	applyDirectoryInput(u, in)
	if u.Username == "" && u.Email != "" {
		u.Username = entity.UsernameFromEmail(u.Email)
	}
	if fields := u.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, f repository.UserFilter) ([]entity.User, error) {
	return s.Users.List(ctx, f)
}

// UpdateUser is the admin path and may change the role.
func (s *UserService) UpdateUser(ctx context.Context, username string, in DirectoryInput) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	applyDirectoryInput(u, in)
	if fields := u.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationErr(entity.FieldErrors{}.Add("username", "is already taken"))
		}
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	return mapRepoErr(s.Users.Delete(ctx, username))
}

// UploadAvatar stores an avatar in GCS and records its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrStorageUnavailable
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", mapRepoErr(err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

func applyDirectoryInput(u *entity.User, in DirectoryInput) {
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
