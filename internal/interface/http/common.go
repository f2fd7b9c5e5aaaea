package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/policy"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/pkg/response"
)

// requireCaller rejects anonymous mutation with 401 before any
// ownership rule is consulted; lacking credentials and lacking rights
// are different answers.
func requireCaller(c *gin.Context) (policy.Caller, bool) {
	caller := middleware.Caller(c)
	if !caller.Authenticated {
		response.Fail(c, http.StatusUnauthorized, "authentication required", nil)
		return caller, false
	}
	return caller, true
}

// writeError maps application errors onto the HTTP error taxonomy.
func writeError(c *gin.Context, err error) {
	if ve, ok := application.AsValidation(err); ok {
		response.Fail(c, http.StatusBadRequest, "validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "resource not found", nil)
	case errors.Is(err, application.ErrDuplicateReview):
		response.Fail(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func pageFilter(c *gin.Context) repository.PageFilter {
	limit, offset := pageParams(c)
	return repository.PageFilter{Limit: limit, Offset: offset}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusNotFound, "resource not found", nil)
		return 0, false
	}
	return id, true
}

// userView is the directory representation; the secret hash never
// leaves the server.
type userView struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func toUserView(u *entity.User) userView {
	return userView{
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

type titleView struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Description string           `json:"description"`
	Rating      *float64         `json:"rating"`
	Category    *entity.Category `json:"category"`
	Genres      []entity.Genre   `json:"genre"`
}

func toTitleView(t *entity.Title) titleView {
	return titleView{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      t.Rating,
		Category:    t.Category,
		Genres:      t.Genres,
	}
}

type reviewView struct {
	ID      int64  `json:"id"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	Score   int    `json:"score"`
	PubDate string `json:"pub_date"`
}

func toReviewView(r *entity.Review) reviewView {
	return reviewView{
		ID:      r.ID,
		Author:  r.Author,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type commentView struct {
	ID      int64  `json:"id"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	PubDate string `json:"pub_date"`
}

func toCommentView(cm *entity.Comment) commentView {
	return commentView{
		ID:      cm.ID,
		Author:  cm.Author,
		Text:    cm.Text,
		PubDate: cm.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
