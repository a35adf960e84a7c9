package assistant

import (
	"context"
	"errors"
	"time"

	"kisanmandi/internal/logger"
	"kisanmandi/internal/metrics"
	"kisanmandi/internal/user"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Service wraps a Client so that callers never see an error: every failure
// becomes the safe default for the call.
type Service interface {
	Recommendations(ctx context.Context, lang user.Language, topic string) []Recommendation
	InterpretCommand(ctx context.Context, text string, lang user.Language) Command
	Translate(ctx context.Context, text string, lang user.Language) string
}

type Options struct {
	Timeout time.Duration
	Rate    float64 // calls per second, <= 0 means unlimited
	Burst   int

	// FailureThreshold consecutive failures open the breaker for
	// OpenTimeout.
	FailureThreshold uint32
	OpenTimeout      time.Duration

	Fallbacks *metrics.Counter
}

const (
	defaultTimeout          = 15 * time.Second
	defaultFailureThreshold = 3
	defaultOpenTimeout      = 30 * time.Second
)

var apologies = map[user.Language]string{
	user.LanguageEnglish: "I didn't quite catch that.",
	user.LanguageHindi:   "माफ़ कीजिए, मैं समझ नहीं पाया।",
	user.LanguagePunjabi: "ਮਾਫ਼ ਕਰਨਾ, ਮੈਂ ਸਮਝ ਨਹੀਂ ਸਕਿਆ।",
}

// Apology is the feedback given when a command cannot be interpreted.
func Apology(lang user.Language) string {
	if msg, ok := apologies[lang]; ok {
		return msg
	}
	return apologies[user.LanguageEnglish]
}

type service struct {
	client    Client
	timeout   time.Duration
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[any]
	fallbacks *metrics.Counter
}

func NewService(client Client, opts Options) Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = defaultFailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaultOpenTimeout
	}
	if opts.Fallbacks == nil {
		opts.Fallbacks = metrics.NewCounter("assistant_fallbacks")
	}

	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}

	threshold := opts.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "assistant",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// a canceled caller says nothing about the backend
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn("assistant breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &service{
		client:    client,
		timeout:   opts.Timeout,
		limiter:   rate.NewLimiter(limit, opts.Burst),
		breaker:   breaker,
		fallbacks: opts.Fallbacks,
	}
}

func (s *service) Recommendations(ctx context.Context, lang user.Language, topic string) []Recommendation {
	out, err := s.call(ctx, "recommendations", func(ctx context.Context) (any, error) {
		return s.client.Recommend(ctx, lang, topic)
	})
	if err != nil {
		return []Recommendation{}
	}

	recs, _ := out.([]Recommendation)
	valid := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		if r.Type.Valid() && r.Title != "" {
			valid = append(valid, r)
		}
	}
	return valid
}

func (s *service) InterpretCommand(ctx context.Context, text string, lang user.Language) Command {
	fallback := Command{Action: ActionUnknown, Feedback: Apology(lang)}

	out, err := s.call(ctx, "interpret_command", func(ctx context.Context) (any, error) {
		return s.client.InterpretCommand(ctx, text, lang)
	})
	if err != nil {
		return fallback
	}

	cmd, _ := out.(Command)
	if !cmd.Action.Valid() {
		cmd.Action = ActionUnknown
	}
	if cmd.Feedback == "" {
		cmd.Feedback = fallback.Feedback
	}
	return cmd
}

func (s *service) Translate(ctx context.Context, text string, lang user.Language) string {
	out, err := s.call(ctx, "translate", func(ctx context.Context) (any, error) {
		return s.client.Translate(ctx, text, lang)
	})
	if err != nil {
		return text
	}
	if translated, _ := out.(string); translated != "" {
		return translated
	}
	return text
}

func (s *service) call(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	log := logger.FromCtx(ctx).With(zap.String("operation", op))

	if !s.limiter.Allow() {
		s.fallbacks.Inc()
		log.Warn("assistant call rate limited")
		return nil, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	timer := metrics.StartTimer()
	out, err := s.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		s.fallbacks.Inc()
		log.Warn("assistant call failed, using fallback",
			zap.Duration("duration", timer.Duration()),
			zap.Error(err))
		return nil, err
	}

	log.Debug("assistant call completed", zap.Duration("duration", timer.Duration()))
	return out, nil
}
