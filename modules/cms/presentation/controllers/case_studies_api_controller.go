package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/cms/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/cms/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

type CaseStudiesAPIController struct {
	app         application.Application
	caseStudies *services.CaseStudyService
	basePath    string
}

func NewCaseStudiesAPIController(app application.Application) application.Controller {
	return &CaseStudiesAPIController{
		app:         app,
		caseStudies: app.Service(services.CaseStudyService{}).(*services.CaseStudyService),
		basePath:    "/cms/api/case-studies",
	}
}

func (c *CaseStudiesAPIController) Key() string {
	return c.basePath
}

func (c *CaseStudiesAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}/published", c.SetPublished).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *CaseStudiesAPIController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &casestudy.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		Search: strings.TrimSpace(r.URL.Query().Get("searchQuery")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("industryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_QUERY", "invalid industryId")
			return
		}
		params.IndustryID = id
	}

	items, total, err := c.caseStudies.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list case studies")
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

func (c *CaseStudiesAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid case study id")
		return
	}
	entity, err := c.caseStudies.GetByID(r.Context(), id)
	if err != nil {
		c.writeCaseStudyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CaseStudyToViewModel(entity))
}

func (c *CaseStudiesAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto casestudy.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}

	created, err := c.caseStudies.Create(r.Context(), &dto)
	if err != nil {
		c.writeCaseStudyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.CaseStudyToViewModel(created))
}

func (c *CaseStudiesAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid case study id")
		return
	}
	var dto casestudy.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}

	updated, err := c.caseStudies.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeCaseStudyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CaseStudyToViewModel(updated))
}

func (c *CaseStudiesAPIController) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid case study id")
		return
	}
	var req setPublishedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}

	updated, err := c.caseStudies.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		c.writeCaseStudyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CaseStudyToViewModel(updated))
}

func (c *CaseStudiesAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid case study id")
		return
	}
	if err := c.caseStudies.Delete(r.Context(), id); err != nil {
		c.writeCaseStudyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *CaseStudiesAPIController) writeCaseStudyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, casestudy.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CMS_CASE_STUDY_NOT_FOUND", "case study not found")
	case errors.Is(err, casestudy.ErrSlugTaken):
		writeAPIError(w, r, http.StatusConflict, "CMS_SLUG_CONFLICT", "a case study with this slug already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("case study api error")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
	}
}
