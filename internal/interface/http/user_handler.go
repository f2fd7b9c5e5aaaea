package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/policy"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/pkg/response"
	"github.com/yamdb/yamdb/pkg/validation"
)

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Users *application.UserService
}

func NewUserHandler(users *application.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	caller := middleware.Caller(c)
	u, err := h.Users.GetProfile(c.Request.Context(), caller.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserView(u), nil)
}

type updateMeRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// UpdateMe applies a partial update to the caller's profile. The role
// field is not accepted here on purpose.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	caller := middleware.Caller(c)
	u, err := h.Users.UpdateProfile(c.Request.Context(), caller.ID, application.ProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserView(u), nil)
}

// UploadAvatar accepts a multipart "avatar" file and stores it.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	caller := middleware.Caller(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if file.Size > maxAvatarBytes {
		response.Fail(c, http.StatusBadRequest, "avatar must be at most 5 MiB", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "cannot read avatar file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.Users.UploadAvatar(c.Request.Context(), caller.ID, src,
		file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"avatar_url": url}, nil)
}

type directoryRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
	Role     *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	IsActive *bool   `json:"is_active"`
}

func (r directoryRequest) toInput() application.DirectoryInput {
	return application.DirectoryInput{
		Username: r.Username,
		Email:    r.Email,
		Bio:      r.Bio,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}

func requireDirectoryAdmin(c *gin.Context) bool {
	caller := middleware.Caller(c)
	if !policy.DirectoryAdmin(caller, c.Request.Method, "") {
		response.Fail(c, http.StatusForbidden, "admin role required", nil)
		return false
	}
	return true
}

// List is the admin directory listing, filterable by exact username.
func (h *UserHandler) List(c *gin.Context) {
	if !requireDirectoryAdmin(c) {
		return
	}
	limit, offset := pageParams(c)
	users, err := h.Users.List(c.Request.Context(), repository.UserFilter{
		Username: c.Query("username"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	response.OK(c, http.StatusOK, out, gin.H{"limit": limit, "offset": offset, "count": len(out)})
}

func (h *UserHandler) Create(c *gin.Context) {
	if !requireDirectoryAdmin(c) {
		return
	}
	var req directoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Users.CreateUser(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toUserView(u), nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	if !requireDirectoryAdmin(c) {
		return
	}
	u, err := h.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserView(u), nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	if !requireDirectoryAdmin(c) {
		return
	}
	var req directoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), c.Param("username"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserView(u), nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !requireDirectoryAdmin(c) {
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
