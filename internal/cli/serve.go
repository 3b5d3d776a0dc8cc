package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the wait for outstanding requests on shutdown.
const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags documentFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a page that dumps a document to the browser console",
		Long: `Starts an HTTP server with a page that runs the dump script of a document.
Open the page and look at the browser console. The file is read again on
every request, so edits show up on reload. Each response carries a fresh
Content-Security-Policy nonce.

Endpoints:
  GET /         page with the dump script
  GET /script   the script element alone
  PUT /debug    turn dumps on or off (?enabled=true|false)
  GET /healthz  health check
  GET /metrics  Prometheus metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			load := func() (any, error) { return c.readDocument(args, &flags) }
			if len(args) == 0 || args[0] == "-" {
				// stdin can be read only once.
				value, err := load()
				if err != nil {
					return err
				}
				load = func() (any, error) { return value, nil }
			}

			srv := NewServer(load, flags.label, c.config, logger)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return serve(ctx, &http.Server{Handler: srv.Handler()}, ln, logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "address to listen on")
	return cmd
}

// serve runs hs on ln until ctx is cancelled, then shuts it down gracefully.
// It returns ctx's error after a shutdown caused by cancellation.
func serve(ctx context.Context, hs *http.Server, ln net.Listener, logger *log.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", "http://"+ln.Addr().String())
		serverErrors <- hs.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := hs.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := hs.Close(); err != nil {
				return fmt.Errorf("close server: %w", err)
			}
		}
		return ctx.Err()
	}
}
