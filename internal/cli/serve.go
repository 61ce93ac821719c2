package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"pgtypegen/internal/server"
	"pgtypegen/internal/services"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated declarations over HTTP",
		Long: `Start a read-only HTTP server that renders the declarations on every request.

Endpoints:
  GET /                 health check
  GET /api/v1/types     JSON envelope with the declarations
  GET /api/v1/types.ts  declarations as plain text

Both API endpoints accept ?schema= to inspect another schema.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.cfg.Verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.NewServer(server.Options{
				Addr:          rt.cfg.Addr,
				DefaultSchema: rt.cfg.Schema,
				NewService:    func(schema string) *services.TypegenService { return rt.service(schema) },
				Logger:        rt.logger,
			})

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("server listening", slog.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down server gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")

	return cmd
}
