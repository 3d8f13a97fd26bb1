package controllers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
	"github.com/solstice-web/sitekit/modules/core/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/core/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/core/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/configuration"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

type UploadsController struct {
	app      application.Application
	uploads  *services.UploadService
	basePath string
}

func NewUploadsController(app application.Application) application.Controller {
	return &UploadsController{
		app:      app,
		uploads:  app.Service(services.UploadService{}).(*services.UploadService),
		basePath: "/core/api/uploads",
	}
}

func (c *UploadsController) Key() string {
	return c.basePath
}

func (c *UploadsController) Register(r *mux.Router) {
	conf := configuration.Use()
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
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)

	// Uploaded files are public once stored.
	r.PathPrefix("/files/").Handler(
		http.StripPrefix("/files/", http.FileServer(http.Dir(conf.UploadsPath))),
	).Methods(http.MethodGet)
}

func (c *UploadsController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, total, err := c.uploads.GetPaginated(r.Context(), &upload.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		Search: r.URL.Query().Get("searchQuery"),
	})
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list uploads")
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	out := make([]*viewmodels.Upload, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.UploadToViewModel(item))
	}
	writeJSON(w, http.StatusOK, &viewmodels.UploadList{
		Items:       out,
		TotalCount:  total,
		CurrentPage: pagination.Page,
		TotalPages:  totalPages(total, pagination.Limit),
	})
}

func (c *UploadsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_ID", "invalid upload id")
		return
	}
	entity, err := c.uploads.GetByID(r.Context(), id)
	if err != nil {
		c.writeUploadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.UploadToViewModel(entity))
}

func (c *UploadsController) Create(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		writeAPIError(w, r, http.StatusRequestEntityTooLarge, "CORE_UPLOAD_TOO_LARGE", "upload exceeds the size limit")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_UPLOAD_MISSING_FILE", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_UPLOAD_UNREADABLE", "failed to read upload")
		return
	}

	created, err := c.uploads.Create(r.Context(), filepath.Base(header.Filename), data)
	if err != nil {
		c.writeUploadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.UploadToViewModel(created))
}

func (c *UploadsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_ID", "invalid upload id")
		return
	}
	if err := c.uploads.Delete(r.Context(), id); err != nil {
		c.writeUploadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *UploadsController) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, upload.ErrNotFound) {
		writeAPIError(w, r, http.StatusNotFound, "CORE_UPLOAD_NOT_FOUND", "upload not found")
		return
	}
	composables.UseLogger(r.Context()).WithError(err).Error("uploads api error")
	writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
}
