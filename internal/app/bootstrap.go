package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kisanmandi/internal/assistant"
	"kisanmandi/internal/config"
	"kisanmandi/internal/connectivity"
	"kisanmandi/internal/db"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/order"
	"kisanmandi/internal/store"
	"kisanmandi/internal/user"
	"kisanmandi/internal/voice"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const probeTimeout = 3 * time.Second

type BuildOptions struct {
	Recognizer  voice.Recognizer
	Synthesizer voice.Synthesizer

	// WatchConnectivity starts a background probe of
	// cfg.ConnectivityProbeAddr.
	WatchConnectivity bool
}

// OpenStore returns the backend selected by cfg.StoreDriver and a func
// that releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), noop, nil

	case config.DriverFile:
		fs, err := store.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case config.DriverPostgres:
		conn, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, noop, err
		}
		return store.NewPostgresStore(conn), closer(conn), nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping failed: %w", err)
		}
		return store.NewRedisStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownStoreDriver, cfg.StoreDriver)
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			logger.L().Warn("failed to close database", zap.Error(err))
		}
	}
}

// Build wires a started App from configuration. The returned func stops
// background work and releases the store.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*App, func(), error) {
	log := logger.FromCtx(ctx)

	st, release, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}

	m := NewMetrics()
	var ai assistant.Service
	if cfg.GeminiAPIKey != "" {
		ai = assistant.NewService(
			assistant.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.AITimeout),
			assistant.Options{
				Timeout:   cfg.AITimeout,
				Rate:      cfg.AIRate,
				Burst:     cfg.AIBurst,
				Fallbacks: m.AIFallbacks,
			},
		)
	} else {
		log.Info("GEMINI_APIKEY not set, assistant features use defaults")
	}

	var va *voice.Assistant
	if opts.Recognizer != nil {
		var interp voice.Interpreter = offlineInterpreter{}
		if ai != nil {
			interp = ai
		}
		va = voice.NewAssistant(opts.Recognizer, interp, opts.Synthesizer)
	}

	observer := connectivity.NewObserver(true)
	a := New(Deps{
		Users:        user.NewService(user.NewRepository(st), user.MockIdentityProvider{}),
		Orders:       order.NewService(order.NewRepository(st)),
		Inventory:    inventory.NewService(inventory.NewRepository(st)),
		Connectivity: observer,
		Assistant:    ai,
		Voice:        va,
		Metrics:      m,
	})

	if err := a.Start(ctx); err != nil {
		release()
		return nil, func() {}, err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	if opts.WatchConnectivity && cfg.ConnectivityProbeAddr != "" {
		go observer.Watch(watchCtx, connectivity.TCPProbe(cfg.ConnectivityProbeAddr, probeTimeout), cfg.ConnectivityInterval)
	}

	log.Info("session core ready",
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("assistant", ai != nil))

	return a, func() {
		cancel()
		a.Close()
		release()
	}, nil
}

// offlineInterpreter answers every command with the apology when no
// assistant is configured.
type offlineInterpreter struct{}

func (offlineInterpreter) InterpretCommand(_ context.Context, _ string, lang user.Language) assistant.Command {
	return assistant.Command{Action: assistant.ActionUnknown, Feedback: assistant.Apology(lang)}
}
