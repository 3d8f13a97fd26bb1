package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
	"github.com/solstice-web/sitekit/modules/cms/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/cms/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/cms/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

// TaxonomyAPIController serves the small supporting entities (authors,
// categories, industries) under one admin surface.
type TaxonomyAPIController struct {
	app        application.Application
	authors    *services.AuthorService
	categories *services.CategoryService
	industries *services.IndustryService
	basePath   string
}

func NewTaxonomyAPIController(app application.Application) application.Controller {
	return &TaxonomyAPIController{
		app:        app,
		authors:    app.Service(services.AuthorService{}).(*services.AuthorService),
		categories: app.Service(services.CategoryService{}).(*services.CategoryService),
		industries: app.Service(services.IndustryService{}).(*services.IndustryService),
		basePath:   "/cms/api",
	}
}

func (c *TaxonomyAPIController) Key() string {
	return c.basePath + "/taxonomy"
}

func (c *TaxonomyAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/authors", c.ListAuthors).Methods(http.MethodGet)
	router.HandleFunc("/authors/{id}", c.GetAuthor).Methods(http.MethodGet)
	router.HandleFunc("/categories", c.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/categories/{id}", c.GetCategory).Methods(http.MethodGet)
	router.HandleFunc("/industries", c.ListIndustries).Methods(http.MethodGet)
	router.HandleFunc("/industries/{id}", c.GetIndustry).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/authors", c.CreateAuthor).Methods(http.MethodPost)
	writeRouter.HandleFunc("/authors/{id}", c.UpdateAuthor).Methods(http.MethodPut)
	writeRouter.HandleFunc("/authors/{id}", c.DeleteAuthor).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/categories", c.CreateCategory).Methods(http.MethodPost)
	writeRouter.HandleFunc("/categories/{id}", c.UpdateCategory).Methods(http.MethodPut)
	writeRouter.HandleFunc("/categories/{id}", c.DeleteCategory).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/industries", c.CreateIndustry).Methods(http.MethodPost)
	writeRouter.HandleFunc("/industries/{id}", c.UpdateIndustry).Methods(http.MethodPut)
	writeRouter.HandleFunc("/industries/{id}", c.DeleteIndustry).Methods(http.MethodDelete)
}

func searchQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("searchQuery"))
}

func (c *TaxonomyAPIController) ListAuthors(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.authors.GetPaginated(r.Context(), &author.FindParams{
		Limit: pagination.Limit, Offset: pagination.Offset, Search: searchQuery(r),
	})
	if err != nil {
		c.writeAuthorError(w, r, err)
		return
	}
	out := make([]*viewmodels.Author, 0, len(items))
	for _, a := range items {
		out = append(out, mappers.AuthorToViewModel(a))
	}
	writeJSON(w, http.StatusOK, &viewmodels.List[*viewmodels.Author]{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}

func (c *TaxonomyAPIController) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid author id")
		return
	}
	entity, err := c.authors.GetByID(r.Context(), id)
	if err != nil {
		c.writeAuthorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.AuthorToViewModel(entity))
}

func (c *TaxonomyAPIController) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var dto author.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	created, err := c.authors.Create(r.Context(), &dto)
	if err != nil {
		c.writeAuthorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.AuthorToViewModel(created))
}

func (c *TaxonomyAPIController) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid author id")
		return
	}
	var dto author.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	updated, err := c.authors.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeAuthorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.AuthorToViewModel(updated))
}

func (c *TaxonomyAPIController) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid author id")
		return
	}
	if err := c.authors.Delete(r.Context(), id); err != nil {
		c.writeAuthorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *TaxonomyAPIController) ListCategories(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.categories.GetPaginated(r.Context(), &category.FindParams{
		Limit: pagination.Limit, Offset: pagination.Offset, Search: searchQuery(r),
	})
	if err != nil {
		c.writeCategoryError(w, r, err)
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

func (c *TaxonomyAPIController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid category id")
		return
	}
	entity, err := c.categories.GetByID(r.Context(), id)
	if err != nil {
		c.writeCategoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CategoryToViewModel(entity))
}

func (c *TaxonomyAPIController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto category.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	created, err := c.categories.Create(r.Context(), &dto)
	if err != nil {
		c.writeCategoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.CategoryToViewModel(created))
}

func (c *TaxonomyAPIController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid category id")
		return
	}
	var dto category.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	updated, err := c.categories.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeCategoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CategoryToViewModel(updated))
}

func (c *TaxonomyAPIController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid category id")
		return
	}
	if err := c.categories.Delete(r.Context(), id); err != nil {
		c.writeCategoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *TaxonomyAPIController) ListIndustries(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.industries.GetPaginated(r.Context(), &industry.FindParams{
		Limit: pagination.Limit, Offset: pagination.Offset, Search: searchQuery(r),
	})
	if err != nil {
		c.writeIndustryError(w, r, err)
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

func (c *TaxonomyAPIController) GetIndustry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid industry id")
		return
	}
	entity, err := c.industries.GetByID(r.Context(), id)
	if err != nil {
		c.writeIndustryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.IndustryToViewModel(entity))
}

func (c *TaxonomyAPIController) CreateIndustry(w http.ResponseWriter, r *http.Request) {
	var dto industry.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	created, err := c.industries.Create(r.Context(), &dto)
	if err != nil {
		c.writeIndustryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.IndustryToViewModel(created))
}

func (c *TaxonomyAPIController) UpdateIndustry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid industry id")
		return
	}
	var dto industry.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}
	updated, err := c.industries.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeIndustryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.IndustryToViewModel(updated))
}

func (c *TaxonomyAPIController) DeleteIndustry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid industry id")
		return
	}
	if err := c.industries.Delete(r.Context(), id); err != nil {
		c.writeIndustryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *TaxonomyAPIController) writeAuthorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, author.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CMS_AUTHOR_NOT_FOUND", "author not found")
	case errors.Is(err, author.ErrSlugTaken):
		writeAPIError(w, r, http.StatusConflict, "CMS_SLUG_CONFLICT", "an author with this slug already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("author api error")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
	}
}

func (c *TaxonomyAPIController) writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CMS_CATEGORY_NOT_FOUND", "category not found")
	case errors.Is(err, category.ErrSlugTaken):
		writeAPIError(w, r, http.StatusConflict, "CMS_SLUG_CONFLICT", "a category with this slug already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("category api error")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
	}
}

func (c *TaxonomyAPIController) writeIndustryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, industry.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CMS_INDUSTRY_NOT_FOUND", "industry not found")
	case errors.Is(err, industry.ErrSlugTaken):
		writeAPIError(w, r, http.StatusConflict, "CMS_SLUG_CONFLICT", "an industry with this slug already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("industry api error")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
	}
}
