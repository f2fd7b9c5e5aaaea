package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/domain/repository"
	"github.com/yamdb/yamdb/pkg/response"
	"github.com/yamdb/yamdb/pkg/validation"
)

type TitleHandler struct {
	Catalog *application.CatalogService
}

func NewTitleHandler(catalog *application.CatalogService) *TitleHandler {
	return &TitleHandler{Catalog: catalog}
}

type createTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required,gte=1"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
	Genres      []string `json:"genre" binding:"omitempty,dive,slug"`
}

type updateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year" binding:"omitempty,gte=1"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
	Genres      []string `json:"genre" binding:"omitempty,dive,slug"`
}

// List supports filtering by name substring, category slug, genre slug,
// and exact year, all combinable.
func (h *TitleHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	f := repository.TitleFilter{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Limit:        limit,
		Offset:       offset,
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		f.Year = y
	}
	titles, err := h.Catalog.ListTitles(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]titleView, 0, len(titles))
	for i := range titles {
		out = append(out, toTitleView(&titles[i]))
	}
	response.OK(c, http.StatusOK, out, gin.H{"limit": limit, "offset": offset, "count": len(out)})
}

func (h *TitleHandler) Create(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	var req createTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	in := application.TitleInput{
		Name:         &req.Name,
		Year:         &req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	}
	t, err := h.Catalog.CreateTitle(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toTitleView(t), nil)
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	t, err := h.Catalog.GetTitle(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toTitleView(t), nil)
}

func (h *TitleHandler) Update(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var req updateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	in := application.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	}
	t, err := h.Catalog.UpdateTitle(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, toTitleView(t), nil)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	if !requireCatalogWrite(c) {
		return
	}
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteTitle(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search runs a full-text query against the search index.
func (h *TitleHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("limit"))
	hits, err := h.Catalog.SearchTitles(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, hits, gin.H{"count": len(hits)})
}
