package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/reciters/internal/database"
	"github.com/deppfellow/reciters/internal/handler"
	"github.com/deppfellow/reciters/internal/repository"
	"github.com/deppfellow/reciters/internal/router"
	"github.com/deppfellow/reciters/internal/server"
	"github.com/deppfellow/reciters/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const ShutdownTimeout = 30 * time.Second

var flagMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&flagMigrate, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagMigrate {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
	}

	s, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	services := service.NewServices(
		&log,
		repository.NewRepositories(s.DB),
		s.Cache,
		service.PolicyFor(cfg.Service.StrictErrors),
	)
	s.SetupHTTPServer(router.NewRouter(s, handler.NewHandlers(s, services)))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = s.Shutdown(context.Background())
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
