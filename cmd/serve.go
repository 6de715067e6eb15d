package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	"github.com/spf13/cobra"

	"github.com/eleven-am/taskboard/internal/config"
	"github.com/eleven-am/taskboard/internal/logger"
	"github.com/eleven-am/taskboard/internal/store"
	"github.com/eleven-am/taskboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskboard web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("no database URL configured (set database.url or TASKBOARD_DATABASE_URL)")
	}

	ctx := cmd.Context()

	dbCfg := store.NewDBConfig(cfg.Database.URL)
	dbCfg.MaxOpenConns = cfg.Database.MaxConnections
	db, err := dbCfg.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrations.AutoApply {
		if err := store.Migrate(ctx, db); err != nil {
			return err
		}
	}

	sessions := scs.New()
	sessions.Store = postgresstore.New(db.DB)
	sessions.Lifetime = cfg.Sessions.Lifetime.Std()
	sessions.IdleTimeout = cfg.Sessions.IdleTimeout.Std()
	sessions.Cookie.Secure = cfg.Sessions.Secure
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	server, err := web.NewServer(store.New(db), sessions)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.CLI().Info("listening", "addr", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.CLI().Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
