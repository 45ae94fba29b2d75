// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"travelai/internal/ai"
	"travelai/internal/config"
	httptransport "travelai/internal/http"
	"travelai/internal/infra"
	"travelai/internal/modules/planner"
	"travelai/internal/modules/session"
	"travelai/internal/modules/usage"
	"travelai/internal/obs"
	"travelai/internal/search"
)

func main() {
	_ = config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	sessionStore := session.NewRedisStore(redisClient, session.WithTTL(cfg.Session.TTL))
	sessions := session.NewService(sessionStore)

	var usageSvc *usage.Service
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		defer pool.Close()
		usageSvc = usage.NewService(usage.NewStore(pool), cfg.Usage.MonthlyCalls)
	} else {
		logger.Info("no TRAVELAI_DB_DSN set, usage metering disabled")
	}

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		logger.Fatal("gemini init", zap.Error(err))
	}
	defer provider.Close()

	var searcher planner.Searcher
	if svc, err := search.New(ctx, cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.MapsKey, logger); err != nil {
		logger.Warn("search disabled", zap.Error(err))
	} else {
		searcher = svc
	}

	var meter planner.Meter
	if usageSvc != nil {
		meter = usageSvc
	}
	plannerSvc := planner.NewService(sessions, provider, searcher, meter, logger)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner: plannerSvc,
		Logger:  logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}
