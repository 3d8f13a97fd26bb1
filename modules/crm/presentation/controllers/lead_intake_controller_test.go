package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
)

func intakePayload(overrides map[string]string) *bytes.Buffer {
	payload := map[string]string{
		"fullName":       "Jane Doe",
		"email":          "Jane.Doe@Example.com",
		"phone":          "+1 (555) 123-4567",
		"company":        "Acme Inc",
		"message":        "Interested in a demo",
		"sourceFormName": "Contact Us",
		"submissionUrl":  "https://example.com/contact",
	}
	for k, v := range overrides {
		payload[k] = v
	}
	raw, _ := json.Marshal(payload)
	return bytes.NewBuffer(raw)
}

func TestLeadIntake_Create(t *testing.T) {
	repo := &leadRepositoryStub{}
	router := newTestRouter(t, repo)

	r := httptest.NewRequest("POST", "/leads", intakePayload(nil))
	r.Header.Set("X-Real-IP", "198.51.100.7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, repo.createCalls)

	var body struct {
		ID        string `json:"id"`
		FullName  string `json:"fullName"`
		Email     string `json:"email"`
		Status    string `json:"status"`
		IPAddress string `json:"ipAddress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NoError(t, uuid.Validate(body.ID))
	require.Equal(t, "Jane Doe", body.FullName)
	require.Equal(t, "jane.doe@example.com", body.Email)
	require.Equal(t, string(lead.StatusNew), body.Status)
	require.Equal(t, "198.51.100.7", body.IPAddress)
}

func TestLeadIntake_NoAuthRequired(t *testing.T) {
	repo := &leadRepositoryStub{}
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/leads", intakePayload(nil)))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLeadIntake_RejectsInvalidPhoneBeforeDataAccess(t *testing.T) {
	repo := &leadRepositoryStub{}
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/leads", intakePayload(map[string]string{
		"phone": "abc",
	})))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, repo.createCalls)

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "CRM_VALIDATION_FAILED", envelope.Code)
	require.NotEmpty(t, envelope.Message)
}

func TestLeadIntake_RejectsMissingRequiredFields(t *testing.T) {
	repo := &leadRepositoryStub{}
	router := newTestRouter(t, repo)

	for _, field := range []string{"fullName", "email", "sourceFormName", "submissionUrl"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/leads", intakePayload(map[string]string{
			field: "",
		})))
		require.Equal(t, http.StatusBadRequest, w.Code, field)
	}
	require.Zero(t, repo.createCalls)
}

func TestLeadIntake_RejectsInvalidJSON(t *testing.T) {
	repo := &leadRepositoryStub{}
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/leads", bytes.NewBufferString("{not json")))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, repo.createCalls)
}

func TestLeadIntake_DuplicateEmailConflicts(t *testing.T) {
	repo := &leadRepositoryStub{createErr: lead.ErrEmailTaken}
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/leads", intakePayload(nil)))

	require.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "CRM_EMAIL_CONFLICT", envelope.Code)
}
