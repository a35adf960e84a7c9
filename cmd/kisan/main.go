package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"kisanmandi/internal/app"
	"kisanmandi/internal/config"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/metrics"
	"kisanmandi/internal/voice"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(os.Stdin, os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "kisan",
		Usage:     "Kisan Mandi marketplace session in the terminal",
		Writer:    out,
		Reader:    in,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "store driver: memory, file, postgres or redis (overrides STORE_DRIVER)",
			},
			&cli.StringFlag{
				Name:  "store-path",
				Usage: "directory of the file store (overrides STORE_PATH)",
			},
		},
		Action: shellCommand,
		Commands: []*cli.Command{
			{
				Name:   "shell",
				Usage:  "interactive session (default)",
				Action: shellCommand,
			},
			{
				Name:   "whoami",
				Usage:  "print the saved user",
				Action: whoamiCommand,
			},
			{
				Name:   "orders",
				Usage:  "list order history, newest first",
				Action: ordersCommand,
			},
			{
				Name:   "catalog",
				Usage:  "list catalog products",
				Action: catalogCommand,
			},
			{
				Name:      "recommend",
				Usage:     "ask the assistant for loans, schemes and laws",
				ArgsUsage: "[topic]",
				Action:    recommendCommand,
			},
		},
	}
}

func loadConfig(c *cli.Context) *config.Config {
	cfg := config.LoadConfig()
	if v := c.String("store"); v != "" {
		cfg.StoreDriver = v
	}
	if v := c.String("store-path"); v != "" {
		cfg.StorePath = v
	}
	return cfg
}

// withApp builds the session core for one command and tears it down after.
func withApp(c *cli.Context, opts app.BuildOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg := loadConfig(c)
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx := logger.WithSessionID(c.Context, uuid.NewString())
	a, release, err := app.Build(ctx, cfg, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to start session", zap.Error(err))
		return cli.Exit(err.Error(), 1)
	}
	defer release()
	defer func() {
		logger.FromCtx(ctx).Info("session metrics", metrics.Fields(a.Metrics().Counters()...)...)
	}()

	return fn(ctx, a)
}

func shellCommand(c *cli.Context) error {
	lines := voice.NewLineRecognizer(c.App.Reader, c.App.Writer)
	opts := app.BuildOptions{
		Recognizer:        lines,
		Synthesizer:       voice.WriterSynthesizer{W: c.App.Writer},
		WatchConnectivity: true,
	}
	return withApp(c, opts, func(ctx context.Context, a *app.App) error {
		return newShell(a, lines, c.App.Writer).run(ctx)
	})
}

func whoamiCommand(c *cli.Context) error {
	return withApp(c, app.BuildOptions{}, func(_ context.Context, a *app.App) error {
		printUser(c.App.Writer, a.User())
		return nil
	})
}

func ordersCommand(c *cli.Context) error {
	return withApp(c, app.BuildOptions{}, func(_ context.Context, a *app.App) error {
		printOrders(c.App.Writer, a.Orders())
		return nil
	})
}

func catalogCommand(c *cli.Context) error {
	return withApp(c, app.BuildOptions{}, func(_ context.Context, a *app.App) error {
		printProducts(c.App.Writer, a.Catalog())
		return nil
	})
}

func recommendCommand(c *cli.Context) error {
	return withApp(c, app.BuildOptions{}, func(ctx context.Context, a *app.App) error {
		printRecommendations(c.App.Writer, a.Recommendations(ctx, c.Args().First()))
		return nil
	})
}
