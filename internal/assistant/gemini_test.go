package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kisanmandi/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return string(b)
}

func TestGeminiClient_Recommend(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		_, _ = io.WriteString(w, geminiReply(`[{"title":"PM-KISAN","description":"Income support","type":"SCHEME","link":"https://pmkisan.gov.in"}]`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", srv.URL, time.Second)
	recs, err := c.Recommend(context.Background(), user.LanguageHindi, "")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationScheme, recs[0].Type)
	assert.Equal(t, "/models/"+ModelReasoning+":generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "ARRAY", gotReq.GenerationConfig.ResponseSchema.Type)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, DefaultTopic)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "language code: hi")
}

func TestGeminiClient_InterpretCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, ModelFast))
		_, _ = io.WriteString(w, geminiReply(`{"action":"NAVIGATE_INVENTORY","feedback":"Opening your stock"}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", srv.URL, time.Second)
	cmd, err := c.InterpretCommand(context.Background(), "show my stock", user.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, ActionNavigateInventory, cmd.Action)
	assert.Equal(t, "Opening your stock", cmd.Feedback)
}

func TestGeminiClient_Translate(t *testing.T) {
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		_, _ = io.WriteString(w, geminiReply("  ਆਲੂ \n"))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", srv.URL, time.Second)
	out, err := c.Translate(context.Background(), "Potato", user.LanguagePunjabi)

	require.NoError(t, err)
	assert.Equal(t, "ਆਲੂ", out)
	assert.Nil(t, gotReq.GenerationConfig)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, body: `{}`, wantMsg: "invalid or missing API key"},
		{name: "Server error", status: http.StatusServiceUnavailable, body: `{}`, wantMsg: "temporarily unavailable"},
		{name: "No candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: ErrNoCandidates},
		{name: "Empty text", status: http.StatusOK, body: geminiReply("   "), wantErr: ErrEmptyResponse},
		{name: "Malformed", status: http.StatusOK, body: `not json`, wantMsg: "failed to parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewGeminiClient("secret", srv.URL, time.Second).Translate(context.Background(), "x", user.LanguageHindi)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGeminiClient_NoAPIKey(t *testing.T) {
	_, err := NewGeminiClient("", "", time.Second).Translate(context.Background(), "x", user.LanguageHindi)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
