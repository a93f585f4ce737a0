package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"signpost/internal/community"
	"signpost/internal/config"
	"signpost/internal/logging"
	"signpost/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Signpost server",
	Long:  `Start the redirect front door and proxy pass-through traffic to the upstream marketplace application.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := logging.Setup(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().Msg("Starting Signpost server...")
	log.Info().Int("port", cfg.Server.Port).Msg("Front door")
	log.Info().Str("app_domain", cfg.Platform.AppDomain).Bool("always_use_ssl", cfg.Platform.AlwaysUseSSL).Msg("Platform")
	if cfg.Server.Upstream != "" {
		log.Info().Str("upstream", cfg.Server.Upstream).Msg("Pass-through upstream")
	}

	store, err := community.OpenStore(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open community store")
	}
	defer store.Close()

	srv, err := server.NewServer(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutting down...")
		cancel()
		if err := <-errChan; err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}
}
