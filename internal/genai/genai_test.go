package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
)

// mockChatService implements chatService for testing.
type mockChatService struct {
	resp   openai.ChatCompletion
	err    error
	params openai.ChatCompletionNewParams
}

func (m *mockChatService) Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error) {
	m.params = params
	return m.resp, m.err
}

func TestEnrichAgentMessage_Success(t *testing.T) {
	mockResp := openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "Take a short walk and refill your water."}},
		},
	}
	client := &Client{chat: &mockChatService{resp: mockResp}, model: openai.ChatModelGPT4oMini}
	out, err := client.EnrichAgentMessage(context.Background(), "system prompt", "canned message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Take a short walk and refill your water." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestEnrichAgentMessage_ServiceError(t *testing.T) {
	client := &Client{chat: &mockChatService{err: errors.New("service failure")}, model: openai.ChatModelGPT4oMini}
	_, err := client.EnrichAgentMessage(context.Background(), "sys", "usr")
	if err == nil || !strings.Contains(err.Error(), "service failure") {
		t.Errorf("expected service failure error, got %v", err)
	}
}

func TestEnrichAgentMessage_NoChoices(t *testing.T) {
	mockResp := openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{}}
	client := &Client{chat: &mockChatService{resp: mockResp}, model: openai.ChatModelGPT4oMini}
	_, err := client.EnrichAgentMessage(context.Background(), "sys", "usr")
	if err != ErrNoChoicesReturned {
		t.Errorf("expected no choices returned error, got %v", err)
	}
}

func TestGeneratePrompt_DelegatesToEnrich(t *testing.T) {
	mock := &mockChatService{resp: openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "ok"}},
		},
	}}
	client := &Client{chat: mock, model: openai.ChatModelGPT4oMini}
	out, err := client.GeneratePrompt("sys", "usr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "ok" {
		t.Errorf("expected 'ok', got %q", out)
	}
	if len(mock.params.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(mock.params.Messages))
	}
}

func TestNewClient_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient()
	if err == nil {
		t.Error("expected error when API key not provided, got nil")
	}
}

func TestNewClient_WithKey(t *testing.T) {
	cli, err := NewClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("expected no error with API key, got %v", err)
	}
	if cli == nil {
		t.Error("expected client instance, got nil")
	}
}
