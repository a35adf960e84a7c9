package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kisanmandi/internal/logger"
	"kisanmandi/internal/user"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	ModelReasoning = "gemini-3-pro-preview"
	ModelFast      = "gemini-3-flash-preview"
)

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GeminiClient) Recommend(ctx context.Context, lang user.Language, topic string) ([]Recommendation, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	prompt := fmt.Sprintf("Suggest 3 agriculture-related loans, govt schemes, or farming laws for a farmer in India. "+
		"Use the language code: %s. Context: %s", lang, topic)

	text, err := c.generate(ctx, ModelReasoning, prompt, recommendationsSchema)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	if err := json.Unmarshal([]byte(text), &recs); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return recs, nil
}

func (c *GeminiClient) InterpretCommand(ctx context.Context, text string, lang user.Language) (Command, error) {
	prompt := fmt.Sprintf(`The user said: %q in %s. Interpret this as a command for a farming app. `+
		`Possible actions: "NAVIGATE_MARKET", "NAVIGATE_INVENTORY", "NAVIGATE_LOANS", "ADD_CROP", "UNKNOWN". `+
		`Return a JSON object with 'action' and a friendly 'feedback' message in %s.`, text, lang, lang)

	out, err := c.generate(ctx, ModelFast, prompt, commandSchema)
	if err != nil {
		return Command{}, err
	}

	var cmd Command
	if err := json.Unmarshal([]byte(out), &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to parse command: %w", err)
	}
	if !cmd.Action.Valid() {
		cmd.Action = ActionUnknown
	}
	return cmd, nil
}

func (c *GeminiClient) Translate(ctx context.Context, text string, lang user.Language) (string, error) {
	prompt := fmt.Sprintf("Translate the following text to %s: %q. Return only the translated text.", lang, text)
	return c.generate(ctx, ModelFast, prompt, nil)
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string, sch *schema) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	log := logger.FromCtx(ctx)

	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	if sch != nil {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   sch,
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("gemini request failed",
			zap.String("model", model),
			zap.Int("status_code", resp.StatusCode))
		return "", statusError(resp.StatusCode, body)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	log.Debug("gemini response received",
		zap.String("model", model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_length", len(text)))
	return text, nil
}

func statusError(code int, body []byte) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("gemini API error: invalid or missing API key")
	case http.StatusTooManyRequests:
		return fmt.Errorf("gemini API error: rate limit exceeded")
	case http.StatusBadRequest:
		return fmt.Errorf("gemini API error: invalid request - %s", string(body))
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("gemini API error: service temporarily unavailable (status %d)", code)
	default:
		return fmt.Errorf("gemini API error (status %d): %s", code, string(body))
	}
}
