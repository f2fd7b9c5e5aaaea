package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/pkg/response"
	"github.com/yamdb/yamdb/pkg/validation"
)

type AuthHandler struct {
	Auth *application.AuthService
}

func NewAuthHandler(auth *application.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// Register starts the sign-up flow: the confirmation code travels by
// email, never in the response body.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"email":    u.Email,
		"username": u.Username,
	}, nil)
}

type tokenRequest struct {
	Email            string `json:"email" binding:"required,email,max=254"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,min=6,max=64"`
}

// Token exchanges an email + confirmation code for a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	token, exp, err := h.Auth.IssueToken(c.Request.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.UTC(),
	}, nil)
}
