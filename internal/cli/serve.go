package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mediassist/internal/config"
	"mediassist/internal/metrics"
	"mediassist/internal/models"
	"mediassist/internal/routes"
	"mediassist/internal/store"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the development clinic API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) openStores() (*store.Set, error) {
	if a.cfg.Server.Storage == config.StorageMemory {
		return store.NewMemorySet(), nil
	}
	db, err := models.InitDB(a.cfg.Database, a.log)
	if err != nil {
		return nil, err
	}
	return store.NewGormSet(db), nil
}

func (a *app) serve(ctx context.Context) error {
	if !a.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	stores, err := a.openStores()
	if err != nil {
		return err
	}

	router := routes.NewRouter(a.cfg.Server, stores, a.log, metrics.NewCollector("mediassist"))
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("storage", a.cfg.Server.Storage),
			zap.Bool("require_auth", a.cfg.Server.RequireAuth),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped")
	return nil
}
