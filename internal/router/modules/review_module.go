package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/container"
	handlers "github.com/yamdb/yamdb/internal/interface/http"
	"github.com/yamdb/yamdb/internal/interface/middleware"
)

// ReviewModule wires reviews and comments under their parent title.
type ReviewModule struct {
	Reviews  *handlers.ReviewHandler
	Comments *handlers.CommentHandler
}

func NewReviewModule(reviews *handlers.ReviewHandler, comments *handlers.CommentHandler) *ReviewModule {
	return &ReviewModule{Reviews: reviews, Comments: comments}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByCaller(), nil)

	reviews := rg.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", readLimiter, m.Reviews.List)
		reviews.POST("", writeLimiter, m.Reviews.Create)
		reviews.GET("/:review_id", readLimiter, m.Reviews.Get)
		reviews.PATCH("/:review_id", writeLimiter, m.Reviews.Update)
		reviews.DELETE("/:review_id", writeLimiter, m.Reviews.Delete)

		comments := reviews.Group("/:review_id/comments")
		{
			comments.GET("", readLimiter, m.Comments.List)
			comments.POST("", writeLimiter, m.Comments.Create)
			comments.GET("/:comment_id", readLimiter, m.Comments.Get)
			comments.PATCH("/:comment_id", writeLimiter, m.Comments.Update)
			comments.DELETE("/:comment_id", writeLimiter, m.Comments.Delete)
		}
	}
}
