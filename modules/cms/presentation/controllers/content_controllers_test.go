package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/category"
	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
)

type postDoc struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Excerpt     string          `json:"excerpt"`
	Content     json.RawMessage `json:"content"`
	ContentHTML string          `json:"contentHtml"`
	AuthorID    string          `json:"authorId"`
	Published   bool            `json:"published"`
	PublishedAt string          `json:"publishedAt"`
}

type postListDoc struct {
	Items       []postDoc `json:"items"`
	TotalCount  int64     `json:"totalCount"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

type errorDoc struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta"`
}

func authorized(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer "+testAdminToken)
	return r
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func seedPost(stub *postRepoStub, title, slug string, published bool) post.Post {
	now := time.Now().UTC()
	var publishedAt *time.Time
	if published {
		publishedAt = &now
	}
	content := json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hello from ` + title + `"}]}]}`)
	p := post.Hydrate(
		uuid.New(), title, slug, "excerpt", content,
		uuid.New(), uuid.Nil, uuid.Nil,
		published, publishedAt, now, now,
	)
	stub.posts = append(stub.posts, p)
	return p
}

func TestPostsAPI_RequiresAuthorization(t *testing.T) {
	router, _ := newCMSTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cms/api/posts", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cms/api/posts", jsonBody(t, map[string]string{"title": "x"})))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostsAPI_CreateAndGet(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	authorID := uuid.NewString()

	rec := httptest.NewRecorder()
	req := authorized(httptest.NewRequest(http.MethodPost, "/cms/api/posts", jsonBody(t, map[string]any{
		"title":    "Launch Week Recap",
		"excerpt":  "what shipped",
		"content":  json.RawMessage(`{"type":"doc","content":[]}`),
		"authorId": authorID,
	})))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created postDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NoError(t, uuid.Validate(created.ID))
	require.Equal(t, "launch-week-recap", created.Slug, "slug derives from the title when omitted")
	require.Equal(t, authorID, created.AuthorID)
	require.False(t, created.Published, "new posts start as drafts")
	require.Len(t, stubs.posts.posts, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/cms/api/posts/"+created.ID, nil)))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched postDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.JSONEq(t, `{"type":"doc","content":[]}`, string(fetched.Content))
}

func TestPostsAPI_ValidationFailures(t *testing.T) {
	router, stubs := newCMSTestRouter(t)

	for name, payload := range map[string]map[string]any{
		"missing title":  {"authorId": uuid.NewString()},
		"missing author": {"title": "No Author"},
		"bad author id":  {"title": "Bad Author", "authorId": "not-a-uuid"},
		"bad slug":       {"title": "Bad Slug", "slug": "Not A Slug!", "authorId": uuid.NewString()},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/cms/api/posts", jsonBody(t, payload))))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorDoc
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, "CMS_VALIDATION_FAILED", body.Code)
			require.NotEmpty(t, body.Meta["request_id"])
		})
	}
	require.Empty(t, stubs.posts.posts, "invalid payloads must not reach the repository")
}

func TestPostsAPI_SlugConflict(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	seedPost(stubs.posts, "First", "shared-slug", false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/cms/api/posts", jsonBody(t, map[string]any{
		"title":    "Second",
		"slug":     "shared-slug",
		"authorId": uuid.NewString(),
	}))))
	require.Equal(t, http.StatusConflict, rec.Code)

	var body errorDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CMS_SLUG_CONFLICT", body.Code)
	require.Len(t, stubs.posts.posts, 1)
}

func TestPostsAPI_PublishLifecycle(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	seeded := seedPost(stubs.posts, "Draft", "draft-post", false)

	publish := func(published bool) postDoc {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authorized(httptest.NewRequest(
			http.MethodPatch,
			"/cms/api/posts/"+seeded.ID().String()+"/published",
			jsonBody(t, map[string]bool{"published": published}),
		)))
		require.Equal(t, http.StatusOK, rec.Code)
		var body postDoc
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	first := publish(true)
	require.True(t, first.Published)
	require.NotEmpty(t, first.PublishedAt)

	unpublished := publish(false)
	require.False(t, unpublished.Published)
	require.Empty(t, unpublished.PublishedAt)

	second := publish(true)
	require.True(t, second.Published)
	require.NotEmpty(t, second.PublishedAt)
}

func TestPostsAPI_Delete(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	seeded := seedPost(stubs.posts, "Doomed", "doomed-post", false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodDelete, "/cms/api/posts/"+seeded.ID().String(), nil)))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, stubs.posts.posts)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/cms/api/posts/"+seeded.ID().String(), nil)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CMS_POST_NOT_FOUND", body.Code)
}

func TestPublicPosts_OnlyPublishedVisible(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	seedPost(stubs.posts, "Draft", "hidden-draft", false)
	published := seedPost(stubs.posts, "Live", "live-post", true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list postListDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.EqualValues(t, 1, list.TotalCount)
	require.Len(t, list.Items, 1)
	require.Equal(t, published.ID().String(), list.Items[0].ID)
	require.Empty(t, list.Items[0].Content, "list items omit the stored document")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/hidden-draft", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicPosts_GetBySlugRendersContent(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	seedPost(stubs.posts, "Live", "live-post", true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/live-post", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body postDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.ContentHTML, "<p>Hello from Live</p>")
	require.NotEmpty(t, body.Content)
}

func TestTaxonomy_CategoryCRUD(t *testing.T) {
	router, stubs := newCMSTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/cms/api/categories", jsonBody(t, map[string]string{
		"name": "Engineering",
	}))))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "engineering", created.Slug)
	require.Len(t, stubs.categories.items, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPut, "/cms/api/categories/"+created.ID, jsonBody(t, map[string]string{
		"name": "Platform Engineering",
		"slug": "platform-engineering",
	}))))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "platform-engineering", stubs.categories.items[0].Slug())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodDelete, "/cms/api/categories/"+created.ID, nil)))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, stubs.categories.items)
}

func TestTaxonomy_DuplicateSlugConflict(t *testing.T) {
	router, stubs := newCMSTestRouter(t)
	now := time.Now().UTC()
	stubs.categories.items = append(stubs.categories.items,
		category.Hydrate(uuid.New(), "Engineering", "engineering", now, now))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/cms/api/categories", jsonBody(t, map[string]string{
		"name": "Engineering",
	}))))
	require.Equal(t, http.StatusConflict, rec.Code)

	var body errorDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CMS_SLUG_CONFLICT", body.Code)
}
