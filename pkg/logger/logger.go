// Package logger - обёртка над zap с глобальным логгером и HTTP middleware
package logger

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Config - настройки логгера
type Config struct {
	Level       string
	Environment string
	Service     string
}

var (
	mtx          sync.RWMutex
	globalLogger *zap.Logger
)

// Initialize создает глобальный логгер.
// production - JSON без stacktrace, иначе консольный development формат
func Initialize(cfg Config) error {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
		zapConfig.DisableStacktrace = true
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = level

	if cfg.Service != "" {
		zapConfig.InitialFields = map[string]interface{}{
			"service": cfg.Service,
		}
	}

	l, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mtx.Lock()
	globalLogger = l
	mtx.Unlock()
	return nil
}

// GetLogger возвращает глобальный логгер, до Initialize - development логгер
func GetLogger() *zap.Logger {
	mtx.RLock()
	l := globalLogger
	mtx.RUnlock()
	if l != nil {
		return l
	}

	if err := Initialize(Config{Level: "info", Environment: "development"}); err != nil {
		panic(fmt.Sprintf("failed to initialize fallback logger: %v", err))
	}
	return GetLogger()
}

// Sync сбрасывает буферы глобального логгера
func Sync() {
	_ = GetLogger().Sync()
}

// Middleware логирует каждый запрос с request id из chi middleware.RequestID
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		fields := []zap.Field{
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status_code", ww.Status()),
			zap.Int("response_size", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		}

		l := GetLogger()
		switch {
		case ww.Status() >= http.StatusInternalServerError:
			l.Error("request completed", fields...)
		case ww.Status() >= http.StatusBadRequest:
			l.Warn("request completed", fields...)
		default:
			l.Info("request completed", fields...)
		}
	})
}
