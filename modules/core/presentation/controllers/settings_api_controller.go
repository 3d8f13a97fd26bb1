package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/modules/core/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/core/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/core/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

type SettingsAPIController struct {
	app      application.Application
	settings *services.SettingService
	basePath string
}

func NewSettingsAPIController(app application.Application) application.Controller {
	return &SettingsAPIController{
		app:      app,
		settings: app.Service(services.SettingService{}).(*services.SettingService),
		basePath: "/core/api/settings",
	}
}

func (c *SettingsAPIController) Key() string {
	return c.basePath
}

func (c *SettingsAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{key}", c.GetByKey).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/{key}", c.Put).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{key}", c.Delete).Methods(http.MethodDelete)
}

// List deliberately returns only the keys. Values require a per-key read so
// decrypted secrets never show up in a bulk listing.
func (c *SettingsAPIController) List(w http.ResponseWriter, r *http.Request) {
	keys, err := c.settings.Keys(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list setting keys")
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, &viewmodels.SettingKeys{Keys: keys})
}

func (c *SettingsAPIController) GetByKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !setting.ValidKey(key) {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_KEY", "invalid setting key")
		return
	}
	entity, err := c.settings.GetByKey(r.Context(), key)
	if err != nil {
		c.writeSettingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SettingToViewModel(entity))
}

func (c *SettingsAPIController) Put(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !setting.ValidKey(key) {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_KEY", "invalid setting key")
		return
	}
	var dto setting.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_VALIDATION_FAILED", errs.First())
		return
	}

	updated, err := c.settings.Upsert(r.Context(), key, dto.Value)
	if err != nil {
		c.writeSettingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SettingToViewModel(updated))
}

func (c *SettingsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !setting.ValidKey(key) {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_KEY", "invalid setting key")
		return
	}
	if err := c.settings.Delete(r.Context(), key); err != nil {
		c.writeSettingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *SettingsAPIController) writeSettingError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, setting.ErrNotFound) {
		writeAPIError(w, r, http.StatusNotFound, "CORE_SETTING_NOT_FOUND", "setting not found")
		return
	}
	composables.UseLogger(r.Context()).WithError(err).Error("settings api error")
	writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
}
