package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-mentor/internal/ai"
	"voice-mentor/internal/assessment"
	"voice-mentor/internal/audit"
	"voice-mentor/internal/auth"
	"voice-mentor/internal/calls"
	"voice-mentor/internal/config"
	"voice-mentor/internal/httpapi"
	"voice-mentor/internal/mentor"
	"voice-mentor/internal/reporting"
	"voice-mentor/internal/telephony"
	"voice-mentor/internal/todos"
	"voice-mentor/internal/users"
	"voice-mentor/pkg/logger"
	"voice-mentor/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Twilio.BaseURL == "" {
		log.Warn("BASE_URL is not set; call placement will fail until it is configured")
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	st, err := openStores(rootCtx, cfg, log)
	if err != nil {
		log.Error("store init failed", "driver", cfg.Store.Driver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	limiter, closeRedis := newCallLimiter(rootCtx, cfg, log)
	defer closeRedis()

	// One generator client for the process lifetime.
	generator, err := ai.NewGenerator(ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.BaseURL), cfg.AI.Model)
	if err != nil {
		log.Error("ai init failed", "err", err)
		os.Exit(1)
	}

	gateway, err := newGateway(cfg, log)
	if err != nil {
		log.Error("telephony init failed", "err", err)
		os.Exit(1)
	}

	todoSvc := todos.NewService(st.Todos)
	callSvc := calls.NewService(
		st.Calls,
		gateway,
		limiter,
		calls.Config{FromNumber: cfg.Twilio.PhoneNumber, BaseURL: cfg.Twilio.BaseURL},
	)

	api := httpapi.Handlers{
		Auth:         authManager,
		Users:        users.NewService(st.Users),
		Todos:        todoSvc,
		Calls:        callSvc,
		Assessment:   assessment.NewService(generator, st.Assessment),
		Reporting:    reporting.NewService(reporting.Sources{Calls: st.Calls, Todos: st.Todos}),
		Audit:        audit.NewService(st.Audit),
		CookieSecure: cfg.Auth.CookieSecure,
	}
	voice := mentor.Handlers{Flow: mentor.NewFlow(generator, todoSvc)}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(cors.New(corsConfig(cfg.App.CORSOrigins)))

	var webhookMW []gin.HandlerFunc
	if cfg.Twilio.ValidateSignature {
		webhookMW = append(webhookMW, telephony.RequireTwilioSignature(cfg.Twilio.AuthToken, cfg.Twilio.BaseURL))
	}

	registerRoutes(r, routeDeps{
		api:       api,
		voice:     voice,
		authMW:    auth.RequireAccessToken(authManager),
		webhookMW: webhookMW,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Webhook turns wait on the generator; keep this above its latency.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "gateway", gateway.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

func newGateway(cfg config.Config, log *slog.Logger) (telephony.Gateway, error) {
	if cfg.Twilio.DryRun {
		log.Warn("TWILIO_DRY_RUN enabled; no real calls will be placed")
		return &telephony.DryRunGateway{Log: log}, nil
	}
	return telephony.NewTwilioGateway(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
}

// corsConfig reflects the request origin for "*" so cookies still work cross-origin.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}
	c.AllowOrigins = origins
	return c
}

// newCallLimiter connects the per-user call cap. Without Redis the service still
// starts and places calls uncapped, matching the limiter's runtime behaviour.
func newCallLimiter(ctx context.Context, cfg config.Config, log *slog.Logger) (calls.Limiter, func()) {
	rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{Addr: cfg.RedisAddr(), Password: cfg.Redis.Password})
	if err != nil {
		log.Warn("redis unavailable, call concurrency cap disabled", "addr", cfg.RedisAddr(), "err", err)
		return nil, func() {}
	}
	return calls.NewRedisLimiter(rdb, cfg.Redis.CallConcurrencyLimit, cfg.Redis.CallSlotTTL), func() { _ = rdb.Close() }
}
