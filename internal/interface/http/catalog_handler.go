package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/policy"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/pkg/response"
	"github.com/yamdb/yamdb/pkg/validation"
)

// CatalogHandler serves categories and genres. Both are flat slug-keyed
// directories with the same read-for-all, write-for-admin rules.
type CatalogHandler struct {
	Catalog *application.CatalogService
}

func NewCatalogHandler(catalog *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

func requireCatalogWrite(c *gin.Context) bool {
	caller := middleware.Caller(c)
	if !policy.CatalogWrite(caller, c.Request.Method, "") {
		response.Fail(c, http.StatusForbidden, "admin role required", nil)
		return false
	}
	return true
}

func termFilter(c *gin.Context) repository.TermFilter {
	limit, offset := pageParams(c)
	return repository.TermFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
}

type termRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,slug"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	f := termFilter(c)
	items, err := h.Catalog.ListCategories(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, items, gin.H{"limit": f.Limit, "offset": f.Offset, "count": len(items)})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	var req termRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	cat := &entity.Category{Name: req.Name, Slug: req.Slug}
	if err := h.Catalog.CreateCategory(c.Request.Context(), cat); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, cat, nil)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	if err := h.Catalog.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	f := termFilter(c)
	items, err := h.Catalog.ListGenres(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, items, gin.H{"limit": f.Limit, "offset": f.Offset, "count": len(items)})
}

func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	var req termRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	g := &entity.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.Catalog.CreateGenre(c.Request.Context(), g); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, g, nil)
}

func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	if err := h.Catalog.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
