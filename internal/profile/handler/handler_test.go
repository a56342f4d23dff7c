package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"noesis/internal/audit"
	"noesis/internal/integration"
	"noesis/internal/platform/middleware"
	"noesis/internal/profile/service"
	"noesis/internal/profile/store/memory"
)

func newProfileRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	t.Cleanup(auditor.Close)

	svc := service.New(memory.New(), integration.NewMapper(), service.WithAuditPublisher(auditor))

	router := chi.NewRouter()
	router.Use(middleware.RequestTime)
	New(svc, logger).Register(router)
	return router
}

func createProfile(t *testing.T, router chi.Router, email string) map[string]any {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating profile, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return resp
}

func TestCreateAndGetProfile(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")

	userID, ok := created["id"].(string)
	if !ok || userID == "" {
		t.Fatalf("expected id in create response, got %v", created["id"])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching profile, got %d", rec.Code)
	}

	var fetched struct {
		Email             string `json:"email"`
		ConsciousnessData struct {
			SymbolRecognition struct {
				PersonalSymbolDictionary map[string]string `json:"personalSymbolDictionary"`
			} `json:"symbolRecognition"`
		} `json:"consciousnessData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if fetched.Email != "ada@example.com" {
		t.Fatalf("expected email round-trip, got %q", fetched.Email)
	}
	if fetched.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary == nil {
		t.Fatalf("expected empty symbol dictionary, got nil")
	}
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	router := newProfileRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid email, got %d", rec.Code)
	}
}

func TestGetUnknownProfileReturns404(t *testing.T) {
	router := newProfileRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown profile, got %d", rec.Code)
	}
}

func TestMalformedUserIDReturns400(t *testing.T) {
	router := newProfileRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestPatchMergesPartialUpdate(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	patch := []byte(`{"consciousnessData":{"skillDevelopment":{"masteryAreas":["go"],"competenceLevel":55}}}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+userID, bytes.NewReader(patch))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 patching profile, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ConsciousnessData struct {
			SkillDevelopment struct {
				MasteryAreas    []string `json:"masteryAreas"`
				CompetenceLevel float64  `json:"competenceLevel"`
			} `json:"skillDevelopment"`
		} `json:"consciousnessData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode patch response: %v", err)
	}
	if resp.ConsciousnessData.SkillDevelopment.CompetenceLevel != 55 {
		t.Fatalf("expected competence level 55, got %v", resp.ConsciousnessData.SkillDevelopment.CompetenceLevel)
	}
}

func TestPatchOutOfRangeScoreReturns422(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	patch := []byte(`{"consciousnessData":{"symbolRecognition":{"meaningDevelopmentScore":150}}}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+userID, bytes.NewReader(patch))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for out-of-range score, got %d", rec.Code)
	}
}

func TestSyncAppliesEventAndRecordsActivity(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	event := []byte(`{"sourceSystem":"symbol_quest","dataType":"symbol_interpretation","payload":{"symbol":"tree","interpretation":"growth","confidence":0.9}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID+"/sync", bytes.NewReader(event))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 syncing event, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ConsciousnessData struct {
			SymbolRecognition struct {
				PersonalSymbolDictionary map[string]string `json:"personalSymbolDictionary"`
				MeaningDevelopmentScore  float64           `json:"meaningDevelopmentScore"`
			} `json:"symbolRecognition"`
		} `json:"consciousnessData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode sync response: %v", err)
	}
	if resp.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary["tree"] != "growth" {
		t.Fatalf("expected symbol mapping applied, got %v", resp.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary)
	}
	if resp.ConsciousnessData.SymbolRecognition.MeaningDevelopmentScore != 90 {
		t.Fatalf("expected score 90, got %v", resp.ConsciousnessData.SymbolRecognition.MeaningDevelopmentScore)
	}

	actReq := httptest.NewRequest(http.MethodGet, "/api/users/"+userID+"/activity", nil)
	actRec := httptest.NewRecorder()
	router.ServeHTTP(actRec, actReq)
	if actRec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing activity, got %d", actRec.Code)
	}

	var trail struct {
		Events []struct {
			Action string `json:"action"`
		} `json:"events"`
	}
	if err := json.NewDecoder(actRec.Body).Decode(&trail); err != nil {
		t.Fatalf("failed to decode activity: %v", err)
	}
	if len(trail.Events) != 2 {
		t.Fatalf("expected 2 activity events, got %d", len(trail.Events))
	}
	if trail.Events[1].Action != "sync_applied" {
		t.Fatalf("expected sync_applied, got %q", trail.Events[1].Action)
	}
}

func TestPatchIgnoresServerAssignedFields(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)
	createdAt := created["createdAt"].(string)

	// A client echoing back a full document may carry id and createdAt;
	// both stay server-owned and the rest of the patch still applies.
	patch := []byte(`{"id":"` + uuid.New().String() + `","createdAt":"1999-01-01T00:00:00Z","email":"lovelace@example.com"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+userID, bytes.NewReader(patch))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 patching with extra fields, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode patch response: %v", err)
	}
	if resp.ID != userID {
		t.Fatalf("expected id %q to survive patch, got %q", userID, resp.ID)
	}
	if resp.CreatedAt != createdAt {
		t.Fatalf("expected createdAt %q to survive patch, got %q", createdAt, resp.CreatedAt)
	}
	if resp.Email != "lovelace@example.com" {
		t.Fatalf("expected email updated, got %q", resp.Email)
	}
}

func TestSyncToleratesFullEventDocument(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	// Integrations resend complete event documents; userId, timestamp, and
	// syncStatus are assigned server-side regardless of what arrives.
	event := []byte(`{"sourceSystem":"symbol_quest","dataType":"symbol_interpretation",` +
		`"payload":{"symbol":"river","interpretation":"change","confidence":0.8},` +
		`"userId":"` + uuid.New().String() + `","timestamp":"1999-01-01T00:00:00Z","syncStatus":"error"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID+"/sync", bytes.NewReader(event))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 syncing full document, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID                string `json:"id"`
		ConsciousnessData struct {
			SymbolRecognition struct {
				PersonalSymbolDictionary map[string]string `json:"personalSymbolDictionary"`
			} `json:"symbolRecognition"`
		} `json:"consciousnessData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode sync response: %v", err)
	}
	if resp.ID != userID {
		t.Fatalf("expected path user %q to be synced, got %q", userID, resp.ID)
	}
	if resp.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary["river"] != "change" {
		t.Fatalf("expected symbol mapping applied, got %v", resp.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary)
	}
}

func TestSyncUnknownSourceReturns400(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	event := []byte(`{"sourceSystem":"astral_tracker","dataType":"aura_reading","payload":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID+"/sync", bytes.NewReader(event))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown source, got %d", rec.Code)
	}
}

func TestDeleteProfileIsIdempotent(t *testing.T) {
	router := newProfileRouter(t)
	created := createProfile(t, router, "ada@example.com")
	userID := created["id"].(string)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 deleting profile (attempt %d), got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
