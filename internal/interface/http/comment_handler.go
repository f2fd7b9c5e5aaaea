package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/policy"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/pkg/response"
	"github.com/yamdb/yamdb/pkg/validation"
)

// CommentHandler serves comments nested under a review, which is itself
// nested under a title. Same ownership rules as reviews.
type CommentHandler struct {
	Reviews *application.ReviewService
}

func NewCommentHandler(reviews *application.ReviewService) *CommentHandler {
	return &CommentHandler{Reviews: reviews}
}

type commentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func commentPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	f := pageFilter(c)
	comments, err := h.Reviews.ListComments(c.Request.Context(), titleID, reviewID, f)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]commentView, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentView(&comments[i]))
	}
	response.OK(c, http.StatusOK, out, gin.H{"limit": f.Limit, "offset": f.Offset, "count": len(out)})
}

func (h *CommentHandler) Create(c *gin.Context) {
	caller := middleware.Caller(c)
	if !policy.ReviewCreate(caller, c.Request.Method, "") {
		response.Fail(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	cm, err := h.Reviews.CreateComment(c.Request.Context(), caller.ID, titleID, reviewID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toCommentView(cm), nil)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Reviews.GetComment(c.Request.Context(), titleID, reviewID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toCommentView(cm), nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Reviews.GetComment(c.Request.Context(), titleID, reviewID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !policy.ReviewWrite(caller, c.Request.Method, cm.AuthorID) {
		response.Fail(c, http.StatusForbidden, "not allowed to modify this comment", nil)
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	updated, err := h.Reviews.UpdateComment(c.Request.Context(), titleID, reviewID, id, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toCommentView(updated), nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Reviews.GetComment(c.Request.Context(), titleID, reviewID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !policy.ReviewWrite(caller, c.Request.Method, cm.AuthorID) {
		response.Fail(c, http.StatusForbidden, "not allowed to delete this comment", nil)
		return
	}
	if err := h.Reviews.DeleteComment(c.Request.Context(), titleID, reviewID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
