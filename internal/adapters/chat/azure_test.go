package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradinvite/internal/domain"
)

func TestNewAzureCompleter_Unconfigured(t *testing.T) {
	assert.Nil(t, NewAzureCompleter(AzureConfig{}))
	assert.Nil(t, NewAzureCompleter(AzureConfig{APIKey: "k", Endpoint: "https://x.openai.azure.com"}))
}

func TestAzureCompleter_Complete(t *testing.T) {
	var (
		gotPath    string
		gotVersion string
		gotKey     string
		gotBody    map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotKey = r.Header.Get("api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Lễ tốt nghiệp bắt đầu lúc 9 giờ."},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	c := NewAzureCompleter(AzureConfig{
		APIKey:     "secret-key",
		Endpoint:   srv.URL,
		APIVersion: "2024-02-15-preview",
		Deployment: "grad-gpt",
	})
	require.NotNil(t, c)

	reply, err := c.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "system prompt"},
		{Role: domain.ChatRoleUser, Content: "Mấy giờ bắt đầu?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lễ tốt nghiệp bắt đầu lúc 9 giờ.", reply)

	assert.Equal(t, "/openai/deployments/grad-gpt/chat/completions", gotPath)
	assert.Equal(t, "2024-02-15-preview", gotVersion)
	assert.Equal(t, "secret-key", gotKey)
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestAzureCompleter_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`)
	}))
	defer srv.Close()

	c := NewAzureCompleter(AzureConfig{APIKey: "bad", Endpoint: srv.URL, Deployment: "grad-gpt"})
	_, err := c.Complete(context.Background(), []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.Error(t, err)
}

func TestAzureCompleter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c2","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	c := NewAzureCompleter(AzureConfig{APIKey: "k", Endpoint: srv.URL, Deployment: "grad-gpt"})
	_, err := c.Complete(context.Background(), []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.Error(t, err)
}
