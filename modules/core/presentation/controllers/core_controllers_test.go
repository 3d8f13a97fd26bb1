package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
	"github.com/solstice-web/sitekit/modules/core/services"
	"github.com/solstice-web/sitekit/pkg/application"
	"github.com/solstice-web/sitekit/pkg/eventbus"
	"github.com/solstice-web/sitekit/pkg/middleware"
	"github.com/solstice-web/sitekit/pkg/secrets"
)

const testAdminToken = "test-admin-token"

func TestMain(m *testing.M) {
	os.Setenv("ADMIN_API_TOKEN", testAdminToken)
	uploadsDir, err := os.MkdirTemp("", "uploads-test-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("UPLOADS_PATH", uploadsDir)

	code := m.Run()
	os.RemoveAll(uploadsDir)
	os.Exit(code)
}

type settingRepoStub struct {
	items map[string]setting.Setting
}

func newSettingRepoStub() *settingRepoStub {
	return &settingRepoStub{items: map[string]setting.Setting{}}
}

func (s *settingRepoStub) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *settingRepoStub) GetByKey(_ context.Context, key string) (setting.Setting, error) {
	stored, ok := s.items[key]
	if !ok {
		return setting.Setting{}, setting.ErrNotFound
	}
	return stored, nil
}

func (s *settingRepoStub) Upsert(_ context.Context, entity setting.Setting) (setting.Setting, error) {
	stored := setting.Hydrate(entity.Key(), entity.Value(), time.Now().UTC())
	s.items[entity.Key()] = stored
	return stored, nil
}

func (s *settingRepoStub) Delete(_ context.Context, key string) error {
	if _, ok := s.items[key]; !ok {
		return setting.ErrNotFound
	}
	delete(s.items, key)
	return nil
}

type uploadRepoStub struct {
	items []upload.Upload
}

func (s *uploadRepoStub) GetPaginated(_ context.Context, _ *upload.FindParams) ([]upload.Upload, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func (s *uploadRepoStub) GetByID(_ context.Context, id uuid.UUID) (upload.Upload, error) {
	for _, u := range s.items {
		if u.ID() == id {
			return u, nil
		}
	}
	return upload.Upload{}, upload.ErrNotFound
}

func (s *uploadRepoStub) GetByHash(_ context.Context, hash string) (upload.Upload, error) {
	for _, u := range s.items {
		if u.Hash() == hash {
			return u, nil
		}
	}
	return upload.Upload{}, upload.ErrNotFound
}

func (s *uploadRepoStub) Create(_ context.Context, u upload.Upload) (upload.Upload, error) {
	created := upload.Hydrate(uuid.New(), u.Name(), u.Path(), u.Hash(), u.Size(), u.Mimetype(), time.Now().UTC())
	s.items = append(s.items, created)
	return created, nil
}

func (s *uploadRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range s.items {
		if u.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return upload.ErrNotFound
}

type memoryStorage struct {
	files map[string][]byte
}

func (s *memoryStorage) Save(_ context.Context, path string, data []byte) error {
	s.files[path] = data
	return nil
}

func (s *memoryStorage) Remove(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

type coreStubs struct {
	settings *settingRepoStub
	uploads  *uploadRepoStub
	storage  *memoryStorage
}

func newCoreTestRouter(t *testing.T) (*mux.Router, *coreStubs) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	codec, err := secrets.NewCodec("test-settings-secret")
	require.NoError(t, err)

	stubs := &coreStubs{
		settings: newSettingRepoStub(),
		uploads:  &uploadRepoStub{},
		storage:  &memoryStorage{files: map[string][]byte{}},
	}

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(
		services.NewSettingService(stubs.settings, codec),
		services.NewUploadService(stubs.uploads, stubs.storage),
	)

	r := mux.NewRouter()
	r.Use(middleware.RequestParams())
	for _, c := range []application.Controller{
		NewSettingsAPIController(app),
		NewUploadsController(app),
	} {
		c.Register(r)
	}
	return r, stubs
}

func authorized(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer "+testAdminToken)
	return r
}

type settingDoc struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updatedAt"`
}

type errorDoc struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta"`
}

func TestSettingsAPI_RequiresAuthorization(t *testing.T) {
	router, _ := newCoreTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/core/api/settings", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSettingsAPI_PutAndGetRoundTrip(t *testing.T) {
	router, stubs := newCoreTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(
		http.MethodPut, "/core/api/settings/site.title",
		bytes.NewReader([]byte(`{"value":"Solstice Web"}`)),
	)))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated settingDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "site.title", updated.Key)
	require.Equal(t, "Solstice Web", updated.Value)

	// The repository never sees the plaintext.
	stored := stubs.settings.items["site.title"]
	require.NotEqual(t, "Solstice Web", stored.Value())
	require.NotContains(t, stored.Value(), "Solstice")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/settings/site.title", nil)))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched settingDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, "Solstice Web", fetched.Value)
}

func TestSettingsAPI_ListReturnsKeysOnly(t *testing.T) {
	router, _ := newCoreTestRouter(t)

	for _, key := range []string{"site.title", "contact.email"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authorized(httptest.NewRequest(
			http.MethodPut, "/core/api/settings/"+key,
			bytes.NewReader([]byte(`{"value":"secret-value"}`)),
		)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/settings", nil)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []string `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.ElementsMatch(t, []string{"site.title", "contact.email"}, body.Keys)
	require.NotContains(t, rec.Body.String(), "secret-value")
}

func TestSettingsAPI_NotFoundAndBadKey(t *testing.T) {
	router, _ := newCoreTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/settings/missing.key", nil)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CORE_SETTING_NOT_FOUND", body.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/settings/Bad%20Key", nil)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CORE_INVALID_KEY", body.Code)
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

type uploadDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Hash     string `json:"hash"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

func TestUploadsAPI_Create(t *testing.T) {
	router, stubs := newCoreTestRouter(t)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("hello uploads"))
	req := authorized(httptest.NewRequest(http.MethodPost, "/core/api/uploads", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created uploadDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NoError(t, uuid.Validate(created.ID))
	require.Equal(t, "notes.txt", created.Name)
	require.EqualValues(t, len("hello uploads"), created.Size)
	require.Equal(t, "/files/"+created.Hash[:2]+"/"+created.Hash+".txt", created.URL)
	require.Len(t, stubs.uploads.items, 1)
	require.Contains(t, stubs.storage.files, created.Hash[:2]+"/"+created.Hash+".txt")
}

func TestUploadsAPI_MissingFileField(t *testing.T) {
	router, stubs := newCoreTestRouter(t)

	body, contentType := multipartBody(t, "attachment", "notes.txt", []byte("hello"))
	req := authorized(httptest.NewRequest(http.MethodPost, "/core/api/uploads", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody errorDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	require.Equal(t, "CORE_UPLOAD_MISSING_FILE", errBody.Code)
	require.Empty(t, stubs.uploads.items)
}

func TestUploadsAPI_DuplicateContentReturnsExisting(t *testing.T) {
	router, stubs := newCoreTestRouter(t)

	post := func(filename string) uploadDoc {
		body, contentType := multipartBody(t, "file", filename, []byte("same bytes"))
		req := authorized(httptest.NewRequest(http.MethodPost, "/core/api/uploads", body))
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		var doc uploadDoc
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		return doc
	}

	first := post("a.txt")
	second := post("b.txt")
	require.Equal(t, first.ID, second.ID)
	require.Len(t, stubs.uploads.items, 1)
}

func TestUploadsAPI_GetByID(t *testing.T) {
	router, stubs := newCoreTestRouter(t)
	seeded := upload.Hydrate(
		uuid.New(), "logo.png", "ab/abc.png", "abc", 42, "image/png", time.Now().UTC(),
	)
	stubs.uploads.items = append(stubs.uploads.items, seeded)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/uploads/"+seeded.ID().String(), nil)))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc uploadDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "logo.png", doc.Name)
	require.Equal(t, "/files/ab/abc.png", doc.URL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/core/api/uploads/"+uuid.NewString(), nil)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
