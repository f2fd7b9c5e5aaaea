package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

// CatalogService manages categories, genres, and titles. Elasticsearch
// is optional: when unconfigured, indexing is skipped and search returns
// an empty result.
type CatalogService struct {
	Categories    repository.CategoryRepository
	Genres        repository.GenreRepository
	Titles        repository.TitleRepository
	ES            *elasticsearch.Client
	ESTitlesIndex string
	Logger        *logrus.Logger
}

func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository,
	titles repository.TitleRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Categories:    categories,
		Genres:        genres,
		Titles:        titles,
		ES:            es,
		ESTitlesIndex: esIndex,
		Logger:        logger,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *entity.Category) error {
	if fields := c.Validate(); len(fields) > 0 {
		return validationErr(fields)
	}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return validationErr(entity.FieldErrors{}.Add("slug", "name or slug already exists"))
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context, f repository.TermFilter) ([]entity.Category, error) {
	return s.Categories.List(ctx, f)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return mapRepoErr(s.Categories.Delete(ctx, slug))
}

func (s *CatalogService) CreateGenre(ctx context.Context, g *entity.Genre) error {
	if fields := g.Validate(); len(fields) > 0 {
		return validationErr(fields)
	}
	if err := s.Genres.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return validationErr(entity.FieldErrors{}.Add("slug", "name or slug already exists"))
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListGenres(ctx context.Context, f repository.TermFilter) ([]entity.Genre, error) {
	return s.Genres.List(ctx, f)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return mapRepoErr(s.Genres.Delete(ctx, slug))
}

// TitleInput takes category and genres by slug, the way the write API
// exposes them. Nil means "leave unchanged" on update.
type TitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string  // empty string clears the category
	GenreSlugs   []string // nil = unchanged, empty = clear
}

func (s *CatalogService) CreateTitle(ctx context.Context, in TitleInput) (*entity.Title, error) {
	t := &entity.Title{}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	genreIDs, err := s.resolveRelations(ctx, t, in)
	if err != nil {
		return nil, err
	}
	if fields := t.Validate(time.Now()); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Titles.Create(ctx, t, genreIDs); err != nil {
		return nil, err
	}
	// re-read for the canonical aggregate shape
	created, err := s.Titles.Get(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	s.indexTitle(ctx, created)
	return created, nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id int64) (*entity.Title, error) {
	t, err := s.Titles.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return t, nil
}

func (s *CatalogService) ListTitles(ctx context.Context, f repository.TitleFilter) ([]entity.Title, error) {
	return s.Titles.List(ctx, f)
}

func (s *CatalogService) UpdateTitle(ctx context.Context, id int64, in TitleInput) (*entity.Title, error) {
	t, err := s.Titles.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	genreIDs := make([]int64, 0, len(t.Genres))
	for _, g := range t.Genres {
		genreIDs = append(genreIDs, g.ID)
	}
	if in.CategorySlug != nil || in.GenreSlugs != nil {
		resolved, err := s.resolveRelations(ctx, t, in)
		if err != nil {
			return nil, err
		}
		if in.GenreSlugs != nil {
			genreIDs = resolved
		}
	}
	if fields := t.Validate(time.Now()); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Titles.Update(ctx, t, genreIDs); err != nil {
		return nil, mapRepoErr(err)
	}
	updated, err := s.Titles.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.indexTitle(ctx, updated)
	return updated, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, id int64) error {
	if err := mapRepoErr(s.Titles.Delete(ctx, id)); err != nil {
		return err
	}
	s.deleteTitleIndex(ctx, id)
	return nil
}

// resolveRelations turns slugs into rows, reporting unknown slugs as
// client-correctable field errors.
func (s *CatalogService) resolveRelations(ctx context.Context, t *entity.Title, in TitleInput) ([]int64, error) {
	if in.CategorySlug != nil {
		if *in.CategorySlug == "" {
			t.Category = nil
		} else {
			cat, err := s.Categories.GetBySlug(ctx, *in.CategorySlug)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, validationErr(entity.FieldErrors{}.Add("category", "unknown category slug"))
				}
				return nil, err
			}
			t.Category = cat
		}
	}
	var genreIDs []int64
	if in.GenreSlugs != nil {
		genres, err := s.Genres.GetBySlugs(ctx, in.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if len(genres) != len(uniqueStrings(in.GenreSlugs)) {
			return nil, validationErr(entity.FieldErrors{}.Add("genre", "unknown genre slug"))
		}
		t.Genres = genres
		genreIDs = make([]int64, 0, len(genres))
		for _, g := range genres {
			genreIDs = append(genreIDs, g.ID)
		}
	}
	return genreIDs, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func (s *CatalogService) indexTitle(ctx context.Context, t *entity.Title) {
	if s.ES == nil || s.ESTitlesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"year":        t.Year,
		"description": t.Description,
	}
	if t.Category != nil {
		doc["category"] = t.Category.Slug
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESTitlesIndex,
		DocumentID: fmt.Sprintf("%d", t.ID),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("title_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("title_id", t.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteTitleIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESTitlesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTitlesIndex, DocumentID: fmt.Sprintf("%d", id)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// SearchTitles performs a multi_match over name and description.
func (s *CatalogService) SearchTitles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTitlesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTitlesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
