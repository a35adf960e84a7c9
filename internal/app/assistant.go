package app

import (
	"context"

	"kisanmandi/internal/assistant"
	"kisanmandi/internal/voice"
)

// Recommendations asks the assistant for loans, schemes and laws in the
// session language. The facade lock is not held during the call.
func (a *App) Recommendations(ctx context.Context, topic string) []assistant.Recommendation {
	if a.assistant == nil {
		return []assistant.Recommendation{}
	}
	return a.assistant.Recommendations(ctx, a.Language(), topic)
}

// Translate returns text in the session language, or text itself when no
// translation is available.
func (a *App) Translate(ctx context.Context, text string) string {
	if a.assistant == nil {
		return text
	}
	return a.assistant.Translate(ctx, text, a.Language())
}

// Listen runs one voice command in the session language.
func (a *App) Listen(ctx context.Context) (*voice.Result, error) {
	if a.voice == nil {
		return nil, ErrVoiceUnavailable
	}
	return a.voice.Listen(ctx, a.Language())
}
