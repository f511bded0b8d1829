package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aurra-labs/AuraCore/internal/engagement"
	"github.com/aurra-labs/AuraCore/internal/models"
	"github.com/aurra-labs/AuraCore/internal/store"
)

func TestNewTestServer(t *testing.T) {
	server := NewTestServer()
	if server == nil {
		t.Fatal("NewTestServer returned nil")
	}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	AssertHTTPStatus(t, http.StatusOK, rr.Code, "health check")
	AssertJSONResponse(t, rr, "ok")
}

func TestCreateHTTPRequest(t *testing.T) {
	req := CreateHTTPRequest(t, http.MethodPost, "/route", models.RouteRequest{UserID: "u1", Message: "hi"})
	if req.Method != http.MethodPost || req.URL.Path != "/route" {
		t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
	}
	if req.Body == nil {
		t.Error("expected non-nil body")
	}
}

func TestSeedEngagement(t *testing.T) {
	st := store.NewInMemoryStore()
	seeded := SeedEngagement(t, st, "u1", 42, 10)
	if seeded.TotalMessages != 42 {
		t.Errorf("expected 42 messages, got %d", seeded.TotalMessages)
	}
	got, err := st.GetEngagement("u1")
	if err != nil {
		t.Fatalf("GetEngagement: %v", err)
	}
	if got == nil || got.TotalDaysActive != 10 {
		t.Errorf("unexpected stored engagement: %+v", got)
	}
}

func TestRecordInteractionsAndCount(t *testing.T) {
	st := store.NewInMemoryStore()
	svc := engagement.NewService(st)
	RecordInteractions(t, svc, "u1", models.InteractionMood, 3)
	AssertInteractionCount(t, st, "u1", 3, "after recording")
}
