// Package voice drives a single spoken command: listen once, interpret the
// transcript and speak the feedback.
package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisanmandi/internal/assistant"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/user"

	"go.uber.org/zap"
)

var (
	ErrRecognition = errors.New("speech recognition failed")
	ErrNoSpeech    = errors.New("no speech detected")
)

// Recognizer captures one utterance and returns its transcript.
type Recognizer interface {
	Recognize(ctx context.Context, locale string) (string, error)
}

// Synthesizer speaks text. It is fire and forget.
type Synthesizer interface {
	Speak(text, locale string)
}

// Interpreter maps a transcript to an app command without failing.
type Interpreter interface {
	InterpretCommand(ctx context.Context, text string, lang user.Language) assistant.Command
}

func LocaleTag(lang user.Language) string {
	switch lang {
	case user.LanguageHindi:
		return "hi-IN"
	case user.LanguagePunjabi:
		return "pa-IN"
	default:
		return "en-US"
	}
}

type Result struct {
	Transcript string
	Command    assistant.Command
}

type Assistant struct {
	recognizer  Recognizer
	interpreter Interpreter
	synthesizer Synthesizer
}

func NewAssistant(r Recognizer, i Interpreter, s Synthesizer) *Assistant {
	return &Assistant{recognizer: r, interpreter: i, synthesizer: s}
}

func (a *Assistant) Listen(ctx context.Context, lang user.Language) (*Result, error) {
	locale := LocaleTag(lang)

	transcript, err := a.recognizer.Recognize(ctx, locale)
	if err != nil {
		logger.FromCtx(ctx).Warn("speech recognition failed", zap.String("locale", locale), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, ErrNoSpeech
	}

	cmd := a.interpreter.InterpretCommand(ctx, transcript, lang)
	if cmd.Feedback != "" && a.synthesizer != nil {
		a.synthesizer.Speak(cmd.Feedback, locale)
	}

	return &Result{Transcript: transcript, Command: cmd}, nil
}
