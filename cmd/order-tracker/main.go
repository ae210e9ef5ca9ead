package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"canteen/internal/gateway/http/canteen"
	"canteen/internal/pkg/config"
	"canteen/internal/pkg/dotenv"
	"canteen/pkg/logger"
	"canteen/pkg/logger/zap_adapter"

	"github.com/spf13/cobra"
)

// errFallback - единственное, что видит пользователь при ошибке сервера или сети.
var errFallback = errors.New("Something went wrong, please try again") //nolint:staticcheck // текст для пользователя

type tracker struct {
	log     logger.Logger
	cfg     *config.Tracker
	gateway *canteen.Gateway
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		logLevel   string
		t          tracker
		syncLogger func() error
	)

	root := &cobra.Command{
		Use:           "order-tracker",
		Short:         "Campus canteen terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			zapLogger, err := zap_adapter.NewZapAdapter(
				zap_adapter.WithConsole(),
				zap_adapter.WithLevel(logLevel),
			)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			syncLogger = zapLogger.Sync
			t.log = zapLogger

			if _, err := dotenv.LoadIfExists(".env"); err != nil {
				t.log.Warn("failed to load .env file", logger.NewField("error", err))
			}

			cfg, err := config.LoadTracker()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			t.cfg = cfg

			client := &http.Client{Timeout: cfg.APITimeout}
			t.gateway = canteen.New(cfg.APIURL, client)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if syncLogger == nil {
				return
			}
			if err := syncLogger(); err != nil {
				stdlog.Printf("failed to sync logger: %v", err)
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newSignupCommand(&t),
		newOrderCommand(&t),
		newWatchCommand(&t),
	)
	return root
}

// fail пишет подробности в лог и отдает пользователю только общий текст.
func (t *tracker) fail(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	t.log.Error(op, logger.NewField("error", err))
	return errFallback
}
