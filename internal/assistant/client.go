package assistant

import (
	"context"

	"kisanmandi/internal/user"
)

const DefaultTopic = "general crop management"

// Client is the generative backend. Implementations return errors; the
// Service turns them into safe defaults.
type Client interface {
	Recommend(ctx context.Context, lang user.Language, topic string) ([]Recommendation, error)
	InterpretCommand(ctx context.Context, text string, lang user.Language) (Command, error)
	Translate(ctx context.Context, text string, lang user.Language) (string, error)
}
