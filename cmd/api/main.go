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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carebridge/medchat/cmd/mainconfig"
	"github.com/carebridge/medchat/internal/api/router"
	"github.com/carebridge/medchat/internal/app/bootstrap"
	"github.com/carebridge/medchat/internal/booking"
	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/conversation"
	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/internal/medqa"
	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/internal/webchat"
	"github.com/carebridge/medchat/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medchat API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     a.handler,
		ReadTimeout: 15 * time.Second,
		// WebSocket connections outlive any write deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

type app struct {
	handler http.Handler
	chat    *conversation.Service
	redis   *redis.Client
	pool    *pgxpool.Pool
	llm     *bootstrap.LLMSetup
}

func (a *app) Close() {
	if a.llm != nil {
		a.llm.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// setupMetrics registers the chat metrics on a dedicated registry that also
// carries the Go runtime collectors.
func setupMetrics() (http.Handler, *metrics.ChatMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewChatMetrics(reg)
}

func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*app, error) {
	metricsHandler, chatMetrics := setupMetrics()
	a := &app{}

	var awsCfg *aws.Config
	if mainconfig.NeedsAWS(cfg) {
		loaded, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		awsCfg = &loaded
	}

	dir, err := bootstrap.LoadDirectory(ctx, cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	if cfg.UseRedisSessions() {
		a.redis = bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	}
	store := bootstrap.BuildSessionStore(cfg, a.redis, logger)
	transcripts := bootstrap.BuildTranscriptStore(cfg, a.redis)

	sender, provider := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	opts := []booking.Option{booking.WithMetrics(chatMetrics)}
	ledger, pool, err := bootstrap.BuildLedger(ctx, cfg, logger)
	if err != nil {
		logger.Warn("appointment ledger disabled", "error", err)
	} else if ledger != nil {
		a.pool = pool
		opts = append(opts, booking.WithLedger(ledger))
	}
	bookingSvc := booking.NewService(sender, logger, opts...)

	a.llm = bootstrap.BuildLLMClient(ctx, cfg, awsCfg, logger)
	answerer := medqa.NewService(a.llm.Client, medqa.ServiceConfig{
		Provider:  a.llm.Provider,
		Model:     a.llm.Model,
		MaxTokens: int32(cfg.LLMMaxTokens),
		Timeout:   cfg.LLMTimeout,
	}, chatMetrics, logger)

	engine := dialogue.NewEngine(dir, conversation.BookingAdapter{Service: bookingSvc}, answerer, logger)
	var chatOpts []conversation.Option
	if locker := bootstrap.BuildSessionLocker(cfg, a.redis); locker != nil {
		chatOpts = append(chatOpts, conversation.WithLocker(locker))
	}
	a.chat = conversation.NewService(engine, store, transcripts, chatMetrics, logger, chatOpts...)

	a.handler = router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        conversation.NewHandler(a.chat, logger),
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		WebChat:            webchat.NewHandler(a.chat, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
	})

	logger.Info("medchat wired",
		"email_provider", provider,
		"llm_provider", a.llm.Provider,
		"redis", a.redis != nil,
		"ledger", a.pool != nil,
	)
	return a, nil
}
