package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/presentation/mappers"
	"github.com/solstice-web/sitekit/modules/cms/presentation/viewmodels"
	"github.com/solstice-web/sitekit/modules/cms/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/middleware"
)

type PostsAPIController struct {
	app      application.Application
	posts    *services.PostService
	basePath string
}

func NewPostsAPIController(app application.Application) application.Controller {
	return &PostsAPIController{
		app:      app,
		posts:    app.Service(services.PostService{}).(*services.PostService),
		basePath: "/cms/api/posts",
	}
}

func (c *PostsAPIController) Key() string {
	return c.basePath
}

func (c *PostsAPIController) Register(r *mux.Router) {
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

func (c *PostsAPIController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &post.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		Search: strings.TrimSpace(r.URL.Query().Get("searchQuery")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_QUERY", "invalid categoryId")
			return
		}
		params.CategoryID = id
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("authorId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_QUERY", "invalid authorId")
			return
		}
		params.AuthorID = id
	}

	items, total, err := c.posts.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list posts")
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

func (c *PostsAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid post id")
		return
	}
	entity, err := c.posts.GetByID(r.Context(), id)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PostToViewModel(entity))
}

func (c *PostsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto post.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}

	created, err := c.posts.Create(r.Context(), &dto)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.PostToViewModel(created))
}

func (c *PostsAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid post id")
		return
	}
	var dto post.UpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_VALIDATION_FAILED", errs.First())
		return
	}

	updated, err := c.posts.Update(r.Context(), id, &dto)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PostToViewModel(updated))
}

type setPublishedRequest struct {
	Published bool `json:"published"`
}

func (c *PostsAPIController) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid post id")
		return
	}
	var req setPublishedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_JSON", "invalid json")
		return
	}

	updated, err := c.posts.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PostToViewModel(updated))
}

func (c *PostsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CMS_INVALID_ID", "invalid post id")
		return
	}
	if err := c.posts.Delete(r.Context(), id); err != nil {
		c.writePostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *PostsAPIController) writePostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, post.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CMS_POST_NOT_FOUND", "post not found")
	case errors.Is(err, post.ErrSlugTaken):
		writeAPIError(w, r, http.StatusConflict, "CMS_SLUG_CONFLICT", "a post with this slug already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("post api error")
		writeAPIError(w, r, http.StatusInternalServerError, "CMS_INTERNAL", "internal error")
	}
}
