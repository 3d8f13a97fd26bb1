package controllers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/eventbus"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

const testAdminToken = "test-admin-token"

func TestMain(m *testing.M) {
	os.Setenv("ADMIN_API_TOKEN", testAdminToken)
	os.Exit(m.Run())
}

type postRepoStub struct {
	posts []post.Post
}

func (s *postRepoStub) GetPaginated(_ context.Context, params *post.FindParams) ([]post.Post, int64, error) {
	var matched []post.Post
	for _, p := range s.posts {
		if params.PublishedOnly && !p.Published() {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (s *postRepoStub) GetByID(_ context.Context, id uuid.UUID) (post.Post, error) {
	for _, p := range s.posts {
		if p.ID() == id {
			return p, nil
		}
	}
	return post.Post{}, post.ErrNotFound
}

func (s *postRepoStub) GetBySlug(_ context.Context, slug string, publishedOnly bool) (post.Post, error) {
	for _, p := range s.posts {
		if p.Slug() == slug && (!publishedOnly || p.Published()) {
			return p, nil
		}
	}
	return post.Post{}, post.ErrNotFound
}

func (s *postRepoStub) Create(_ context.Context, p post.Post) (post.Post, error) {
	for _, existing := range s.posts {
		if existing.Slug() == p.Slug() {
			return post.Post{}, post.ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	created := post.Hydrate(
		uuid.New(), p.Title(), p.Slug(), p.Excerpt(), p.Content(),
		p.AuthorID(), p.CategoryID(), p.CoverUploadID(),
		false, nil, now, now,
	)
	s.posts = append(s.posts, created)
	return created, nil
}

func (s *postRepoStub) Update(_ context.Context, id uuid.UUID, p post.Post) (post.Post, error) {
	for i, existing := range s.posts {
		if existing.ID() != id {
			continue
		}
		updated := post.Hydrate(
			id, p.Title(), p.Slug(), p.Excerpt(), p.Content(),
			p.AuthorID(), p.CategoryID(), p.CoverUploadID(),
			existing.Published(), existing.PublishedAt(), existing.CreatedAt(), time.Now().UTC(),
		)
		s.posts[i] = updated
		return updated, nil
	}
	return post.Post{}, post.ErrNotFound
}

func (s *postRepoStub) SetPublished(_ context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (post.Post, error) {
	for i, existing := range s.posts {
		if existing.ID() != id {
			continue
		}
		updated := post.Hydrate(
			id, existing.Title(), existing.Slug(), existing.Excerpt(), existing.Content(),
			existing.AuthorID(), existing.CategoryID(), existing.CoverUploadID(),
			published, publishedAt, existing.CreatedAt(), time.Now().UTC(),
		)
		s.posts[i] = updated
		return updated, nil
	}
	return post.Post{}, post.ErrNotFound
}

func (s *postRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range s.posts {
		if existing.ID() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return post.ErrNotFound
}

type caseStudyRepoStub struct {
	items []casestudy.CaseStudy
}

func (s *caseStudyRepoStub) GetPaginated(_ context.Context, params *casestudy.FindParams) ([]casestudy.CaseStudy, int64, error) {
	var matched []casestudy.CaseStudy
	for _, c := range s.items {
		if params.PublishedOnly && !c.Published() {
			continue
		}
		matched = append(matched, c)
	}
	return matched, int64(len(matched)), nil
}

func (s *caseStudyRepoStub) GetByID(_ context.Context, id uuid.UUID) (casestudy.CaseStudy, error) {
	for _, c := range s.items {
		if c.ID() == id {
			return c, nil
		}
	}
	return casestudy.CaseStudy{}, casestudy.ErrNotFound
}

func (s *caseStudyRepoStub) GetBySlug(_ context.Context, slug string, publishedOnly bool) (casestudy.CaseStudy, error) {
	for _, c := range s.items {
		if c.Slug() == slug && (!publishedOnly || c.Published()) {
			return c, nil
		}
	}
	return casestudy.CaseStudy{}, casestudy.ErrNotFound
}

func (s *caseStudyRepoStub) Create(_ context.Context, c casestudy.CaseStudy) (casestudy.CaseStudy, error) {
	for _, existing := range s.items {
		if existing.Slug() == c.Slug() {
			return casestudy.CaseStudy{}, casestudy.ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	created := casestudy.Hydrate(
		uuid.New(), c.Title(), c.Slug(), c.Summary(), c.Content(),
		c.IndustryID(), c.ClientName(), false, nil, now, now,
	)
	s.items = append(s.items, created)
	return created, nil
}

func (s *caseStudyRepoStub) Update(_ context.Context, id uuid.UUID, c casestudy.CaseStudy) (casestudy.CaseStudy, error) {
	for i, existing := range s.items {
		if existing.ID() != id {
			continue
		}
		updated := casestudy.Hydrate(
			id, c.Title(), c.Slug(), c.Summary(), c.Content(),
			c.IndustryID(), c.ClientName(),
			existing.Published(), existing.PublishedAt(), existing.CreatedAt(), time.Now().UTC(),
		)
		s.items[i] = updated
		return updated, nil
	}
	return casestudy.CaseStudy{}, casestudy.ErrNotFound
}

func (s *caseStudyRepoStub) SetPublished(_ context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (casestudy.CaseStudy, error) {
	for i, existing := range s.items {
		if existing.ID() != id {
			continue
		}
		updated := casestudy.Hydrate(
			id, existing.Title(), existing.Slug(), existing.Summary(), existing.Content(),
			existing.IndustryID(), existing.ClientName(),
			published, publishedAt, existing.CreatedAt(), time.Now().UTC(),
		)
		s.items[i] = updated
		return updated, nil
	}
	return casestudy.CaseStudy{}, casestudy.ErrNotFound
}

func (s *caseStudyRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range s.items {
		if existing.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return casestudy.ErrNotFound
}

type authorRepoStub struct {
	items []author.Author
}

func (s *authorRepoStub) GetPaginated(_ context.Context, _ *author.FindParams) ([]author.Author, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *authorRepoStub) GetByID(_ context.Context, id uuid.UUID) (author.Author, error) {
	for _, a := range s.items {
		if a.ID() == id {
			return a, nil
		}
	}
	return author.Author{}, author.ErrNotFound
}

func (s *authorRepoStub) GetBySlug(_ context.Context, slug string) (author.Author, error) {
	for _, a := range s.items {
		if a.Slug() == slug {
			return a, nil
		}
	}
	return author.Author{}, author.ErrNotFound
}

func (s *authorRepoStub) Create(_ context.Context, a author.Author) (author.Author, error) {
	for _, existing := range s.items {
		if existing.Slug() == a.Slug() {
			return author.Author{}, author.ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	created := author.Hydrate(uuid.New(), a.Name(), a.Slug(), a.Bio(), a.AvatarUploadID(), now, now)
	s.items = append(s.items, created)
	return created, nil
}

func (s *authorRepoStub) Update(_ context.Context, id uuid.UUID, a author.Author) (author.Author, error) {
	for i, existing := range s.items {
		if existing.ID() != id {
			continue
		}
		updated := author.Hydrate(id, a.Name(), a.Slug(), a.Bio(), a.AvatarUploadID(), existing.CreatedAt(), time.Now().UTC())
		s.items[i] = updated
		return updated, nil
	}
	return author.Author{}, author.ErrNotFound
}

func (s *authorRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range s.items {
		if existing.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return author.ErrNotFound
}

type categoryRepoStub struct {
	items []category.Category
}

func (s *categoryRepoStub) GetPaginated(_ context.Context, _ *category.FindParams) ([]category.Category, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *categoryRepoStub) GetByID(_ context.Context, id uuid.UUID) (category.Category, error) {
	for _, c := range s.items {
		if c.ID() == id {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (s *categoryRepoStub) GetBySlug(_ context.Context, slug string) (category.Category, error) {
	for _, c := range s.items {
		if c.Slug() == slug {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (s *categoryRepoStub) Create(_ context.Context, c category.Category) (category.Category, error) {
	for _, existing := range s.items {
		if existing.Slug() == c.Slug() {
			return category.Category{}, category.ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	created := category.Hydrate(uuid.New(), c.Name(), c.Slug(), now, now)
	s.items = append(s.items, created)
	return created, nil
}

func (s *categoryRepoStub) Update(_ context.Context, id uuid.UUID, c category.Category) (category.Category, error) {
	for i, existing := range s.items {
		if existing.ID() != id {
			continue
		}
		updated := category.Hydrate(id, c.Name(), c.Slug(), existing.CreatedAt(), time.Now().UTC())
		s.items[i] = updated
		return updated, nil
	}
	return category.Category{}, category.ErrNotFound
}

func (s *categoryRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range s.items {
		if existing.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return category.ErrNotFound
}

type industryRepoStub struct {
	items []industry.Industry
}

func (s *industryRepoStub) GetPaginated(_ context.Context, _ *industry.FindParams) ([]industry.Industry, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *industryRepoStub) GetByID(_ context.Context, id uuid.UUID) (industry.Industry, error) {
	for _, i := range s.items {
		if i.ID() == id {
			return i, nil
		}
	}
	return industry.Industry{}, industry.ErrNotFound
}

func (s *industryRepoStub) GetBySlug(_ context.Context, slug string) (industry.Industry, error) {
	for _, i := range s.items {
		if i.Slug() == slug {
			return i, nil
		}
	}
	return industry.Industry{}, industry.ErrNotFound
}

func (s *industryRepoStub) Create(_ context.Context, i industry.Industry) (industry.Industry, error) {
	for _, existing := range s.items {
		if existing.Slug() == i.Slug() {
			return industry.Industry{}, industry.ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	created := industry.Hydrate(uuid.New(), i.Name(), i.Slug(), i.Description(), now, now)
	s.items = append(s.items, created)
	return created, nil
}

func (s *industryRepoStub) Update(_ context.Context, id uuid.UUID, i industry.Industry) (industry.Industry, error) {
	for idx, existing := range s.items {
		if existing.ID() != id {
			continue
		}
		updated := industry.Hydrate(id, i.Name(), i.Slug(), i.Description(), existing.CreatedAt(), time.Now().UTC())
		s.items[idx] = updated
		return updated, nil
	}
	return industry.Industry{}, industry.ErrNotFound
}

func (s *industryRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range s.items {
		if existing.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return industry.ErrNotFound
}

type cmsStubs struct {
	posts       *postRepoStub
	caseStudies *caseStudyRepoStub
	authors     *authorRepoStub
	categories  *categoryRepoStub
	industries  *industryRepoStub
}

func newCMSTestRouter(t *testing.T) (*mux.Router, *cmsStubs) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	stubs := &cmsStubs{
		posts:       &postRepoStub{},
		caseStudies: &caseStudyRepoStub{},
		authors:     &authorRepoStub{},
		categories:  &categoryRepoStub{},
		industries:  &industryRepoStub{},
	}

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(
		services.NewPostService(stubs.posts),
		services.NewCaseStudyService(stubs.caseStudies),
		services.NewAuthorService(stubs.authors),
		services.NewCategoryService(stubs.categories),
		services.NewIndustryService(stubs.industries),
	)

	r := mux.NewRouter()
	r.Use(middleware.RequestParams())
	for _, c := range []application.Controller{
		NewPostsAPIController(app),
		NewCaseStudiesAPIController(app),
		NewTaxonomyAPIController(app),
		NewPublicContentController(app),
	} {
		c.Register(r)
	}
	return r, stubs
}
