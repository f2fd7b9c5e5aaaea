package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/pkg/helpers"
	"github.com/yamdb/yamdb/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

// Minimal in-memory stores backing the handler tests.

type fakeUsers struct {
	byID map[string]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = "user-" + strconv.Itoa(len(f.byID)+1)
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, _ repository.UserFilter) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, username string) error {
	for id, u := range f.byID {
		if u.Username == username {
			delete(f.byID, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTitles struct {
	byID map[int64]*entity.Title
}

func (f *fakeTitles) Create(_ context.Context, t *entity.Title, _ []int64) error {
	t.ID = int64(len(f.byID) + 1)
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTitles) Get(_ context.Context, id int64) (*entity.Title, error) {
	if t, ok := f.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTitles) List(_ context.Context, _ repository.TitleFilter) ([]entity.Title, error) {
	out := []entity.Title{}
	for _, t := range f.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTitles) Update(_ context.Context, t *entity.Title, _ []int64) error {
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTitles) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeReviews struct {
	byID map[int64]*entity.Review
}

func (f *fakeReviews) Create(_ context.Context, r *entity.Review) error {
	for _, ex := range f.byID {
		if ex.AuthorID == r.AuthorID && ex.TitleID == r.TitleID {
			return repository.ErrDuplicate
		}
	}
	r.ID = int64(len(f.byID) + 1)
	r.CreatedAt = time.Now()
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReviews) Get(_ context.Context, titleID, id int64) (*entity.Review, error) {
	if r, ok := f.byID[id]; ok && r.TitleID == titleID {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReviews) ListByTitle(_ context.Context, titleID int64, _ repository.PageFilter) ([]entity.Review, error) {
	out := []entity.Review{}
	for _, r := range f.byID {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ExistsByAuthorAndTitle(_ context.Context, authorID string, titleID int64) (bool, error) {
	for _, r := range f.byID {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) Update(_ context.Context, r *entity.Review) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, titleID, id int64) error {
	if r, ok := f.byID[id]; ok && r.TitleID == titleID {
		delete(f.byID, id)
		return nil
	}
	return repository.ErrNotFound
}

type fakeComments struct {
	byID map[int64]*entity.Comment
}

func (f *fakeComments) Create(_ context.Context, c *entity.Comment) error {
	c.ID = int64(len(f.byID) + 1)
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeComments) Get(_ context.Context, reviewID, id int64) (*entity.Comment, error) {
	if c, ok := f.byID[id]; ok && c.ReviewID == reviewID {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeComments) ListByReview(_ context.Context, reviewID int64, _ repository.PageFilter) ([]entity.Comment, error) {
	out := []entity.Comment{}
	for _, c := range f.byID {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) Update(_ context.Context, c *entity.Comment) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeComments) Delete(_ context.Context, reviewID, id int64) error {
	if c, ok := f.byID[id]; ok && c.ReviewID == reviewID {
		delete(f.byID, id)
		return nil
	}
	return repository.ErrNotFound
}

type fixture struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
	users  *fakeUsers
	titles *fakeTitles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUsers{byID: map[string]*entity.User{}}
	titles := &fakeTitles{byID: map[int64]*entity.Title{}}
	reviews := &fakeReviews{byID: map[int64]*entity.Review{}}
	comments := &fakeComments{byID: map[int64]*entity.Comment{}}
	jwt := helpers.NewJWTManager("testsecret", time.Hour)

	userSvc := application.NewUserService(users, nil, "", nil)
	reviewSvc := application.NewReviewService(titles, reviews, comments, nil)

	uh := NewUserHandler(userSvc)
	rh := NewReviewHandler(reviewSvc)
	ch := NewCommentHandler(reviewSvc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.Identify(users, jwt))

	u := api.Group("/users")
	u.Use(middleware.RequireAuth())
	{
		u.GET("/me", uh.Me)
		u.PATCH("/me", uh.UpdateMe)
		u.GET("", uh.List)
		u.POST("", uh.Create)
		u.GET("/:username", uh.Get)
		u.PATCH("/:username", uh.Update)
		u.DELETE("/:username", uh.Delete)
	}

	rg := api.Group("/titles/:title_id/reviews")
	{
		rg.GET("", rh.List)
		rg.POST("", rh.Create)
		rg.GET("/:review_id", rh.Get)
		rg.PATCH("/:review_id", rh.Update)
		rg.DELETE("/:review_id", rh.Delete)

		cg := rg.Group("/:review_id/comments")
		cg.GET("", ch.List)
		cg.POST("", ch.Create)
		cg.PATCH("/:comment_id", ch.Update)
		cg.DELETE("/:comment_id", ch.Delete)
	}

	return &fixture{engine: engine, jwt: jwt, users: users, titles: titles}
}

func (f *fixture) addUser(t *testing.T, username, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username: username, Email: username + "@example.com",
		PasswordHash: "x", Role: role, IsActive: true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addTitle(t *testing.T, name string) int64 {
	t.Helper()
	title := &entity.Title{Name: name, Year: 2000}
	require.NoError(t, f.titles.Create(context.Background(), title, nil))
	return title.ID
}

func (f *fixture) do(t *testing.T, method, path string, body any, as *entity.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, _, err := f.jwt.GenerateToken(as.ID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func reviewsPath(titleID int64) string {
	return "/api/v1/titles/" + strconv.FormatInt(titleID, 10) + "/reviews"
}

func TestReviewCreateRequiresAuth(t *testing.T) {
	f := newFixture(t)
	titleID := f.addTitle(t, "Some Book")

	rec := f.do(t, http.MethodPost, reviewsPath(titleID), gin.H{"text": "good", "score": 8}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewLifecycle(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author", entity.RoleUser)
	stranger := f.addUser(t, "stranger", entity.RoleUser)
	mod := f.addUser(t, "mod", entity.RoleModerator)
	titleID := f.addTitle(t, "Some Book")

	rec := f.do(t, http.MethodPost, reviewsPath(titleID), gin.H{"text": "good", "score": 8}, author)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	reviewPath := reviewsPath(titleID) + "/" + strconv.FormatInt(created.Data.ID, 10)

	t.Run("SecondReviewConflicts", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, reviewsPath(titleID), gin.H{"text": "again", "score": 2}, author)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("AnonymousCanRead", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, reviewPath, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AnonymousEditIsUnauthorized", func(t *testing.T) {
		// no credentials is 401, not the 403 an unrelated account gets
		rec := f.do(t, http.MethodPatch, reviewPath, gin.H{"score": 1}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = f.do(t, http.MethodDelete, reviewPath, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("StrangerCannotEdit", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, reviewPath, gin.H{"score": 1}, stranger)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("OwnerCanEdit", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, reviewPath, gin.H{"score": 5}, author)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ModeratorCanDelete", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, reviewPath, nil, mod)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestReviewScoreValidation(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author", entity.RoleUser)
	titleID := f.addTitle(t, "Some Book")

	rec := f.do(t, http.MethodPost, reviewsPath(titleID), gin.H{"text": "meh", "score": 11}, author)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewUnknownTitle(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author", entity.RoleUser)

	rec := f.do(t, http.MethodPost, reviewsPath(999), gin.H{"text": "good", "score": 8}, author)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "reader", entity.RoleUser)

	t.Run("RequiresAuth", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/users/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ReturnsProfile", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/users/me", nil, u)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"reader"`)
		// the secret hash must never appear in a response
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("RoleFieldIgnoredOnPatch", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, "/api/v1/users/me", gin.H{"bio": "hi", "role": "admin"}, u)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"user"`)
	})
}

func TestDirectoryAdminOnly(t *testing.T) {
	f := newFixture(t)
	reader := f.addUser(t, "reader", entity.RoleUser)
	admin := f.addUser(t, "boss", entity.RoleAdmin)

	t.Run("PlainUserForbidden", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/users", nil, reader)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminLists", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/users", nil, admin)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AdminCreatesModerator", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/users", gin.H{
			"username": "newmod",
			"email":    "newmod@example.com",
			"role":     "moderator",
		}, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"role":"moderator"`)
	})

	t.Run("AdminPromotesUser", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, "/api/v1/users/reader", gin.H{"role": "moderator"}, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"moderator"`)
	})

	t.Run("BadRoleRejected", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, "/api/v1/users/boss", gin.H{"role": "emperor"}, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCommentOwnership(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author", entity.RoleUser)
	commenter := f.addUser(t, "commenter", entity.RoleUser)
	titleID := f.addTitle(t, "Some Book")

	rec := f.do(t, http.MethodPost, reviewsPath(titleID), gin.H{"text": "good", "score": 8}, author)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	commentsPath := reviewsPath(titleID) + "/" + strconv.FormatInt(created.Data.ID, 10) + "/comments"

	rec = f.do(t, http.MethodPost, commentsPath, gin.H{"text": "nice one"}, commenter)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cm struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cm))
	commentPath := commentsPath + "/" + strconv.FormatInt(cm.Data.ID, 10)

	// no credentials at all is 401
	rec = f.do(t, http.MethodPatch, commentPath, gin.H{"text": "edited"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(t, http.MethodDelete, commentPath, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// the review's author does not own the comment
	rec = f.do(t, http.MethodPatch, commentPath, gin.H{"text": "edited"}, author)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPatch, commentPath, gin.H{"text": "edited"}, commenter)
	assert.Equal(t, http.StatusOK, rec.Code)
}
