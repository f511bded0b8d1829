// Package testutil provides common test utilities and helpers for AuraCore tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aurra-labs/AuraCore/internal/agents"
	"github.com/aurra-labs/AuraCore/internal/api"
	"github.com/aurra-labs/AuraCore/internal/autonomy"
	"github.com/aurra-labs/AuraCore/internal/engagement"
	"github.com/aurra-labs/AuraCore/internal/models"
	"github.com/aurra-labs/AuraCore/internal/orchestrator"
	"github.com/aurra-labs/AuraCore/internal/store"
	"github.com/aurra-labs/AuraCore/internal/synth"
)

// NewTestServer creates a test API server with in-memory dependencies.
// This centralizes the test server creation logic used across multiple test files.
func NewTestServer() *api.Server {
	catalog := agents.NewCatalog()
	engage := engagement.NewService(store.NewInMemoryStore())
	orch := orchestrator.New(catalog, autonomy.NewSelector(), synth.NewSynthesizer(catalog), engage)
	return api.NewServer(orch, engage)
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t *testing.T, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// AssertJSONResponse decodes JSON response and validates the status field.
func AssertJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus string) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}

	if status, ok := response["status"].(string); ok {
		if status != expectedStatus {
			t.Errorf("expected status '%s', got '%s'", expectedStatus, status)
		}
	} else {
		t.Error("response missing or invalid 'status' field")
	}

	return response
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	return req
}

// AssertInteractionCount validates the number of stored interactions for a user.
func AssertInteractionCount(t *testing.T, st store.Store, userID string, expected int, context string) {
	t.Helper()
	records, err := st.GetInteractions(userID)
	if err != nil {
		t.Fatalf("%s: failed to get interactions: %v", context, err)
	}
	if len(records) != expected {
		t.Errorf("%s: expected %d interactions, got %d", context, expected, len(records))
	}
}

// SeedEngagement creates an engagement row with the given counters for testing.
func SeedEngagement(t *testing.T, st store.Store, userID string, messages, days int) models.UserEngagement {
	t.Helper()
	now := time.Now()
	e := models.NewUserEngagement(userID, now)
	e.TotalMessages = messages
	e.TotalDaysActive = days
	e.FirstInteractionAt = now.AddDate(0, 0, -days)
	if err := st.CreateEngagement(e); err != nil {
		t.Fatalf("failed to seed engagement: %v", err)
	}
	return e
}

// RecordInteractions records n interactions of the given type through the service.
func RecordInteractions(t *testing.T, svc *engagement.Service, userID string, typ models.InteractionType, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := svc.RecordInteraction(context.Background(), userID, typ); err != nil {
			t.Fatalf("failed to record interaction %d: %v", i, err)
		}
	}
}
