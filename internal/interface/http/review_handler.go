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

// ReviewHandler serves reviews nested under a title. Mutation of an
// existing review is gated on ownership or an elevated role; the owner
// is loaded before the predicate runs so the check sees the real author.
type ReviewHandler struct {
	Reviews *application.ReviewService
}

func NewReviewHandler(reviews *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type createReviewRequest struct {
	Text  string `json:"text" binding:"required,max=4000"`
	Score int    `json:"score" binding:"required,gte=1,lte=10"`
}

type updateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,max=4000"`
	Score *int    `json:"score" binding:"omitempty,gte=1,lte=10"`
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	f := pageFilter(c)
	reviews, err := h.Reviews.ListReviews(c.Request.Context(), titleID, f)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewView(&reviews[i]))
	}
	response.OK(c, http.StatusOK, out, gin.H{"limit": f.Limit, "offset": f.Offset, "count": len(out)})
}

func (h *ReviewHandler) Create(c *gin.Context) {
	caller := middleware.Caller(c)
	if !policy.ReviewCreate(caller, c.Request.Method, "") {
		response.Fail(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	rev, err := h.Reviews.CreateReview(c.Request.Context(), caller.ID, titleID, req.Text, req.Score)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toReviewView(rev), nil)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rev, err := h.Reviews.GetReview(c.Request.Context(), titleID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toReviewView(rev), nil)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rev, err := h.Reviews.GetReview(c.Request.Context(), titleID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !policy.ReviewWrite(caller, c.Request.Method, rev.AuthorID) {
		response.Fail(c, http.StatusForbidden, "not allowed to modify this review", nil)
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	updated, err := h.Reviews.UpdateReview(c.Request.Context(), titleID, id, application.ReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toReviewView(updated), nil)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rev, err := h.Reviews.GetReview(c.Request.Context(), titleID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !policy.ReviewWrite(caller, c.Request.Method, rev.AuthorID) {
		response.Fail(c, http.StatusForbidden, "not allowed to delete this review", nil)
		return
	}
	if err := h.Reviews.DeleteReview(c.Request.Context(), titleID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
