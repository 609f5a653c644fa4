package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/acdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/acdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
	"github.com/kailas-cloud/acdex/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup()
			if err != nil {
				return err
			}
			defer a.Close()
			if cmd.Flags().Changed("port") {
				a.cfg.HTTP.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides http.port)")
	return cmd
}

// serve wires the composition root and blocks until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	a.logger.Info("Starting acdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", a.cfg.HTTP.Port),
		zap.String("catalog_source", a.cfg.Catalog.Source),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}
	metrics.CatalogRecords.WithLabelValues(a.cfg.Catalog.Source).Set(float64(cat.Len()))

	// Decorator chain: Service -> Cached -> Instrumented
	searcher, err := a.searcher(cat, metrics.SuggestCacheTotal)
	if err != nil {
		return err
	}
	searcher = searchuc.NewInstrumented(searcher, a.logger)

	// Pass a nil interface, not a typed nil, when the catalog is not in Redis.
	var pinger healthuc.DBPinger
	if a.store != nil {
		pinger = a.store
	}
	healthSvc := healthuc.New(cat, pinger)

	server := chiTransport.NewServer(searcher, cat, healthSvc, a.logger)
	handler := chiTransport.NewRouter(server, a.cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}
