package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/cms/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/cms/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
)

// PublicContentController is the unauthenticated read surface the website
// renders from. Only published posts and case studies are reachable; single
// items carry the rendered HTML alongside the stored document.
type PublicContentController struct {
	app         application.Application
	posts       *services.PostService
	caseStudies *services.CaseStudyService
	authors     *services.AuthorService
	categories  *services.CategoryService
	industries  *services.IndustryService
	basePath    string
}

func NewPublicContentController(app application.Application) application.Controller {
	return &PublicContentController{
		app:         app,
		posts:       app.Service(services.PostService{}).(*services.PostService),
		caseStudies: app.Service(services.CaseStudyService{}).(*services.CaseStudyService),
		authors:     app.Service(services.AuthorService{}).(*services.AuthorService),
		categories:  app.Service(services.CategoryService{}).(*services.CategoryService),
		industries:  app.Service(services.IndustryService{}).(*services.IndustryService),
		basePath:    "/api",
	}
}

func (c *PublicContentController) Key() string {
	return c.basePath + "/content"
}

func (c *PublicContentController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/posts", c.ListPosts).Methods(http.MethodGet)
	router.HandleFunc("/posts/{slug}", c.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/case-studies", c.ListCaseStudies).Methods(http.MethodGet)
	router.HandleFunc("/case-studies/{slug}", c.GetCaseStudy).Methods(http.MethodGet)
	router.HandleFunc("/authors/{slug}", c.GetAuthor).Methods(http.MethodGet)
	router.HandleFunc("/categories", c.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/industries", c.ListIndustries).Methods(http.MethodGet)
}

func (c *PublicContentController) ListPosts(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &post.FindParams{
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		Search:        strings.TrimSpace(r.URL.Query().Get("searchQuery")),
		PublishedOnly: true,
	}

	items, total, err := c.posts.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list published posts")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}

	out := make([]*viewmodels.Post, 0, len(items))
	for _, p := range items {
		out = append(out, mappers.PostToListItem(p))
	}
	writeJSON(w, http.StatusOK, &viewmodels.List[*viewmodels.Post]{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}

func (c *PublicContentController) GetPost(w http.ResponseWriter, r *http.Request) {
	entity, err := c.posts.GetBySlug(r.Context(), mux.Vars(r)["slug"], true)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CMS_POST_NOT_FOUND", "post not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to get post")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}

	vm := mappers.PostToViewModel(entity)
	html, err := c.posts.RenderHTML(entity)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render post content")
	} else {
		vm.ContentHTML = html
	}
	writeJSON(w, http.StatusOK, vm)
}

func (c *PublicContentController) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &casestudy.FindParams{
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		Search:        strings.TrimSpace(r.URL.Query().Get("searchQuery")),
		PublishedOnly: true,
	}

	items, total, err := c.caseStudies.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list published case studies")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}

	out := make([]*viewmodels.CaseStudy, 0, len(items))
	for _, cs := range items {
		out = append(out, mappers.CaseStudyToListItem(cs))
	}
	writeJSON(w, http.StatusOK, &viewmodels.List[*viewmodels.CaseStudy]{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}

func (c *PublicContentController) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	entity, err := c.caseStudies.GetBySlug(r.Context(), mux.Vars(r)["slug"], true)
	if err != nil {
		if errors.Is(err, casestudy.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CMS_CASE_STUDY_NOT_FOUND", "case study not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to get case study")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}

	vm := mappers.CaseStudyToViewModel(entity)
	html, err := c.caseStudies.RenderHTML(entity)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render case study content")
	} else {
		vm.ContentHTML = html
	}
	writeJSON(w, http.StatusOK, vm)
}

func (c *PublicContentController) GetAuthor(w http.ResponseWriter, r *http.Request) {
	entity, err := c.authors.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		if errors.Is(err, author.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CMS_AUTHOR_NOT_FOUND", "author not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to get author")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.AuthorToViewModel(entity))
}

func (c *PublicContentController) ListCategories(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.categories.GetPaginated(r.Context(), &category.FindParams{
		Limit: pagination.Limit, Offset: pagination.Offset,
	})
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list categories")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}
	out := make([]*viewmodels.Category, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.CategoryToViewModel(item))
	}
	writeJSON(w, http.StatusOK, &viewmodels.List[*viewmodels.Category]{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}

func (c *PublicContentController) ListIndustries(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.industries.GetPaginated(r.Context(), &industry.FindParams{
		Limit: pagination.Limit, Offset: pagination.Offset,
	})
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list industries")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
		return
	}
	out := make([]*viewmodels.Industry, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.IndustryToViewModel(item))
	}
	writeJSON(w, http.StatusOK, &viewmodels.List[*viewmodels.Industry]{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}
