package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/container"
	handlers "github.com/yamdb/yamdb/internal/interface/http"
	"github.com/yamdb/yamdb/internal/interface/middleware"
)

// CatalogModule wires categories, genres, and titles. Reads are public;
// the handlers gate writes on the admin role.
type CatalogModule struct {
	Catalog *handlers.CatalogHandler
	Titles  *handlers.TitleHandler
}

func NewCatalogModule(catalog *handlers.CatalogHandler, titles *handlers.TitleHandler) *CatalogModule {
	return &CatalogModule{Catalog: catalog, Titles: titles}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByCaller(), nil)

	rg.GET("/categories", readLimiter, m.Catalog.ListCategories)
	rg.POST("/categories", writeLimiter, m.Catalog.CreateCategory)
	rg.DELETE("/categories/:slug", writeLimiter, m.Catalog.DeleteCategory)

	rg.GET("/genres", readLimiter, m.Catalog.ListGenres)
	rg.POST("/genres", writeLimiter, m.Catalog.CreateGenre)
	rg.DELETE("/genres/:slug", writeLimiter, m.Catalog.DeleteGenre)

	rg.GET("/titles", readLimiter, m.Titles.List)
	rg.POST("/titles", writeLimiter, m.Titles.Create)
	// Full-text search via Elasticsearch
	rg.GET("/titles/search", readLimiter, m.Titles.Search)
	rg.GET("/titles/:title_id", readLimiter, m.Titles.Get)
	rg.PATCH("/titles/:title_id", writeLimiter, m.Titles.Update)
	rg.DELETE("/titles/:title_id", writeLimiter, m.Titles.Delete)
}
