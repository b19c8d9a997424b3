package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"monad_spin/internal/config"
	"monad_spin/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) initLogger() error {
	cfg := s.ServiceProvider.LoggerCfg()
	return logger.Initialize(logger.Config{
		Level:       cfg.Level(),
		Environment: cfg.Environment(),
		Service:     "monad_spin",
	})
}

// Run поднимает HTTP сервер и координатор игры, останавливается по SIGINT/SIGTERM
func (s *App) Run() error {
	envErr := config.Load(".env")
	s.initServiceProvider()
	if err := s.initLogger(); err != nil {
		return err
	}
	defer s.ServiceProvider.Close()

	l := logger.GetLogger()
	if envErr != nil {
		l.Warn("error loading .env file", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameServ := s.ServiceProvider.GameService(ctx)
	if err := gameServ.Start(ctx); err != nil {
		return err
	}
	defer gameServ.Stop()

	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("starting server", zap.String("address", srv.Addr))
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
	case <-ctx.Done():
		l.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
