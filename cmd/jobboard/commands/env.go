package commands

import (
	"context"
	"os/signal"
	"syscall"

	"jobboard/internal/config"
	"jobboard/internal/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every command needs before it touches a backend.
type env struct {
	cfg config.Config
	log *zap.SugaredLogger
}

func loadEnv() (env, error) {
	cfg, err := config.Load()
	if err != nil {
		return env{}, errors.Wrap(err, "load configuration")
	}
	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		return env{}, errors.Wrap(err, "build logger")
	}
	return env{cfg: cfg, log: log}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}
