package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/modules/crm/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/crm/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

// LeadIntakeController is the public submission endpoint the marketing site
// posts contact forms to. No auth; rate limiting is applied globally.
type LeadIntakeController struct {
	app      application.Application
	leads    *services.LeadService
	basePath string
}

func NewLeadIntakeController(app application.Application) application.Controller {
	return &LeadIntakeController{
		app:      app,
		leads:    app.Service(services.LeadService{}).(*services.LeadService),
		basePath: "/leads",
	}
}

func (c *LeadIntakeController) Key() string {
	return c.basePath
}

func (c *LeadIntakeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithTransaction())
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
}

func (c *LeadIntakeController) Create(w http.ResponseWriter, r *http.Request) {
	var dto lead.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_VALIDATION_FAILED", errs.First())
		return
	}

	ip, _ := composables.UseIP(r.Context())
	created, err := c.leads.Create(r.Context(), &dto, ip)
	if err != nil {
		if errors.Is(err, lead.ErrEmailTaken) {
			writeAPIError(w, r, http.StatusConflict, "CRM_EMAIL_CONFLICT", "a lead with this email already exists")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to create lead")
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, mappers.LeadToViewModel(created))
}
