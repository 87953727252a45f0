// Package cli implements the suraksha command line for working with the
// record store directly.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/repository"
	"github.com/mamadbah2/suraksha/internal/service/notify"
	"github.com/mamadbah2/suraksha/internal/service/records"
	"github.com/mamadbah2/suraksha/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "suraksha",
	Short: "Manage water tank cleaning service records",
	Long: `suraksha reads and edits the service record store used by the
suraksha server. It opens the storage backend selected by STORAGE_DRIVER,
so changes made here are visible to the server on its next load.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "Path to an env file to load before reading configuration")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is an opened record store plus what is needed to tear it down.
type session struct {
	cfg    *config.Config
	store  *records.Store
	logger *zap.Logger
	close  repository.CloseFunc
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openSessionWith(cmd, cfg)
}

// openSessionWith opens storage and loads the store. A backend without a
// snapshot gets seeded here, so callers validate their input first.
func openSessionWith(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	base, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	storage, closeFn, err := repository.Open(ctx, *cfg, base.Named("repo"))
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	store := records.NewStore(storage, notify.NewLogNotifier(base.Named("notify.log")), base.Named("svc.records"),
		records.WithKey(cfg.Storage.Key))
	store.Load(ctx)

	return &session{cfg: cfg, store: store, logger: base, close: closeFn}, nil
}

func (s *session) Close() {
	if err := s.close(context.Background()); err != nil {
		s.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = s.logger.Sync()
}
