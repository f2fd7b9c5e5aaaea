package application

import (
	"context"
	"strconv"
	"time"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

func pageAll() repository.PageFilter { return repository.PageFilter{Limit: 100} }

// In-memory fakes for the repository interfaces. They mirror the store
// semantics the services rely on: not-found and duplicate errors come
// back as the repository sentinel errors.

type memUserRepo struct {
	users  map[string]*entity.User // by id
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range m.users {
		if ex.Email == u.Email || ex.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = "user-" + strconv.Itoa(m.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) List(_ context.Context, f repository.UserFilter) ([]entity.User, error) {
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		if f.Username != "" && u.Username != f.Username {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	ex, ok := m.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range m.users {
		if id != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return repository.ErrDuplicate
		}
	}
	*ex = *u
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, username string) error {
	for id, u := range m.users {
		if u.Username == username {
			delete(m.users, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memTitleRepo struct {
	titles map[int64]*entity.Title
	nextID int64
}

func newMemTitleRepo() *memTitleRepo {
	return &memTitleRepo{titles: map[int64]*entity.Title{}}
}

func (m *memTitleRepo) Create(_ context.Context, t *entity.Title, _ []int64) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.titles[t.ID] = &cp
	return nil
}

func (m *memTitleRepo) Get(_ context.Context, id int64) (*entity.Title, error) {
	if t, ok := m.titles[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memTitleRepo) List(_ context.Context, _ repository.TitleFilter) ([]entity.Title, error) {
	out := make([]entity.Title, 0, len(m.titles))
	for _, t := range m.titles {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTitleRepo) Update(_ context.Context, t *entity.Title, _ []int64) error {
	if _, ok := m.titles[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	m.titles[t.ID] = &cp
	return nil
}

func (m *memTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.titles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.titles, id)
	return nil
}

type memReviewRepo struct {
	reviews map[int64]*entity.Review
	nextID  int64
	// forceDuplicate makes Create fail the way the store's unique
	// constraint does, regardless of contents.
	forceDuplicate bool
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[int64]*entity.Review{}}
}

func (m *memReviewRepo) Create(_ context.Context, r *entity.Review) error {
	if m.forceDuplicate {
		return repository.ErrDuplicate
	}
	for _, ex := range m.reviews {
		if ex.AuthorID == r.AuthorID && ex.TitleID == r.TitleID {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

func (m *memReviewRepo) Get(_ context.Context, titleID, id int64) (*entity.Review, error) {
	if r, ok := m.reviews[id]; ok && r.TitleID == titleID {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memReviewRepo) ListByTitle(_ context.Context, titleID int64, _ repository.PageFilter) ([]entity.Review, error) {
	out := []entity.Review{}
	for _, r := range m.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReviewRepo) ExistsByAuthorAndTitle(_ context.Context, authorID string, titleID int64) (bool, error) {
	for _, r := range m.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviewRepo) Update(_ context.Context, r *entity.Review) error {
	if _, ok := m.reviews[r.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, titleID, id int64) error {
	if r, ok := m.reviews[id]; ok && r.TitleID == titleID {
		delete(m.reviews, id)
		return nil
	}
	return repository.ErrNotFound
}

type memCommentRepo struct {
	comments map[int64]*entity.Comment
	nextID   int64
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[int64]*entity.Comment{}}
}

func (m *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memCommentRepo) Get(_ context.Context, reviewID, id int64) (*entity.Comment, error) {
	if c, ok := m.comments[id]; ok && c.ReviewID == reviewID {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCommentRepo) ListByReview(_ context.Context, reviewID int64, _ repository.PageFilter) ([]entity.Comment, error) {
	out := []entity.Comment{}
	for _, c := range m.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	if _, ok := m.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memCommentRepo) Delete(_ context.Context, reviewID, id int64) error {
	if c, ok := m.comments[id]; ok && c.ReviewID == reviewID {
		delete(m.comments, id)
		return nil
	}
	return repository.ErrNotFound
}

type memAuditRepo struct {
	entries []repository.AuditEntry
}

func (m *memAuditRepo) Insert(_ context.Context, e repository.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

type capturePublisher struct {
	jobs []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return nil
}

type memTermRepo struct {
	bySlug map[string]entity.Genre
}

func newMemGenreRepo(genres ...entity.Genre) *memTermRepo {
	m := &memTermRepo{bySlug: map[string]entity.Genre{}}
	for _, g := range genres {
		m.bySlug[g.Slug] = g
	}
	return m
}

func (m *memTermRepo) Create(_ context.Context, g *entity.Genre) error {
	if _, ok := m.bySlug[g.Slug]; ok {
		return repository.ErrDuplicate
	}
	g.ID = int64(len(m.bySlug) + 1)
	m.bySlug[g.Slug] = *g
	return nil
}

func (m *memTermRepo) GetBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	if g, ok := m.bySlug[slug]; ok {
		return &g, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memTermRepo) GetBySlugs(_ context.Context, slugs []string) ([]entity.Genre, error) {
	out := []entity.Genre{}
	seen := map[string]bool{}
	for _, s := range slugs {
		if seen[s] {
			continue
		}
		seen[s] = true
		if g, ok := m.bySlug[s]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memTermRepo) List(_ context.Context, _ repository.TermFilter) ([]entity.Genre, error) {
	out := []entity.Genre{}
	for _, g := range m.bySlug {
		out = append(out, g)
	}
	return out, nil
}

func (m *memTermRepo) Delete(_ context.Context, slug string) error {
	if _, ok := m.bySlug[slug]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bySlug, slug)
	return nil
}

type memCategoryRepo struct {
	bySlug map[string]entity.Category
}

func newMemCategoryRepo(categories ...entity.Category) *memCategoryRepo {
	m := &memCategoryRepo{bySlug: map[string]entity.Category{}}
	for _, c := range categories {
		m.bySlug[c.Slug] = c
	}
	return m
}

func (m *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if _, ok := m.bySlug[c.Slug]; ok {
		return repository.ErrDuplicate
	}
	c.ID = int64(len(m.bySlug) + 1)
	m.bySlug[c.Slug] = *c
	return nil
}

func (m *memCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	if c, ok := m.bySlug[slug]; ok {
		return &c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCategoryRepo) List(_ context.Context, _ repository.TermFilter) ([]entity.Category, error) {
	out := []entity.Category{}
	for _, c := range m.bySlug {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, slug string) error {
	if _, ok := m.bySlug[slug]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bySlug, slug)
	return nil
}
