package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/modules/crm/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/crm/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/crm/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

type LeadAPIController struct {
	app      application.Application
	leads    *services.LeadService
	exports  *services.LeadExportService
	basePath string
}

func NewLeadAPIController(app application.Application) application.Controller {
	return &LeadAPIController{
		app:      app,
		leads:    app.Service(services.LeadService{}).(*services.LeadService),
		exports:  app.Service(services.LeadExportService{}).(*services.LeadExportService),
		basePath: "/crm/api",
	}
}

func (c *LeadAPIController) Key() string {
	return c.basePath
}

func (c *LeadAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/leads", c.List).Methods(http.MethodGet)
	router.HandleFunc("/leads/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/leads/{id}", c.GetByID).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/leads/{id}/status", c.UpdateStatus).Methods(http.MethodPatch)
}

func (c *LeadAPIController) List(w http.ResponseWriter, r *http.Request) {
	params, err := leadFindParams(r, listSortFields)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_QUERY", err.Error())
		return
	}

	pagination := composables.UsePaginated(r)
	params.Limit = pagination.Limit
	params.Offset = pagination.Offset

	leads, total, err := c.leads.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list leads")
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}

	totalPages := 0
	if pagination.Limit > 0 {
		totalPages = int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	}

	writeJSON(w, http.StatusOK, &viewmodels.LeadList{
		Leads:       mappers.LeadsToViewModels(leads),
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages,
	})
}

func (c *LeadAPIController) Export(w http.ResponseWriter, r *http.Request) {
	params, err := leadFindParams(r, exportSortFields)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_QUERY", err.Error())
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(time.Now(), "csv")+`"`)
		err = c.exports.WriteCSV(r.Context(), params, w)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(time.Now(), "xlsx")+`"`)
		err = c.exports.WriteXLSX(r.Context(), params, w)
	default:
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_QUERY", "invalid format; allowed values: csv, xlsx")
		return
	}
	if err != nil {
		// Headers are already out; all we can do is log and cut the stream.
		composables.UseLogger(r.Context()).WithError(err).Error("failed to export leads")
	}
}

func (c *LeadAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_ID", "invalid lead id")
		return
	}

	entity, err := c.leads.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CRM_LEAD_NOT_FOUND", "lead not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to get lead")
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.LeadToViewModel(entity))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (c *LeadAPIController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_ID", "invalid lead id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}

	updated, err := c.leads.UpdateStatus(r.Context(), id, lead.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_STATUS", "unknown status value")
		case errors.Is(err, lead.ErrNotFound):
			writeAPIError(w, r, http.StatusNotFound, "CRM_LEAD_NOT_FOUND", "lead not found")
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("failed to update lead status")
			writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, mappers.LeadToViewModel(updated))
}
