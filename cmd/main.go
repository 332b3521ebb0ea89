package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/Vovarama1992/quote-agent/internal/ai"
	"github.com/Vovarama1992/quote-agent/internal/chat"
	"github.com/Vovarama1992/quote-agent/internal/config"
	"github.com/Vovarama1992/quote-agent/internal/knowledge"
	"github.com/Vovarama1992/quote-agent/internal/language"
	"github.com/Vovarama1992/quote-agent/internal/logger"
	"github.com/Vovarama1992/quote-agent/internal/metrics"
	"github.com/Vovarama1992/quote-agent/internal/middleware"
	"github.com/Vovarama1992/quote-agent/internal/pricing"
	"github.com/Vovarama1992/quote-agent/internal/validator"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Data ---
	catalog, err := pricing.LoadConfiguration(cfg.PricingFile)
	if err != nil {
		log.Error("pricing load error", "path", cfg.PricingFile, "error", err)
		os.Exit(1)
	}
	kb, err := knowledge.Load(cfg.KnowledgeFile)
	if err != nil {
		log.Error("knowledge load error", "path", cfg.KnowledgeFile, "error", err)
		os.Exit(1)
	}
	log.Info("data loaded", "services", len(catalog.Services), "knowledge_records", kb.Len())

	m := metrics.New()

	// --- Language ---
	translator := language.Identity()
	if cfg.TranslationEnabled() {
		opts := language.Options{Timeout: cfg.TranslateTimeout, Metrics: m, Log: log}

		if cfg.CacheEnabled() {
			cache, err := language.NewRedisCache(cfg.RedisURL, cfg.TranslateCacheTTL)
			if err != nil {
				log.Error("redis config error", "error", err)
				os.Exit(1)
			}
			defer cache.Close()

			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			if err := cache.Ping(pingCtx); err != nil {
				log.Warn("redis unreachable, continuing without translation cache", "error", err)
			} else {
				opts.Cache = cache
			}
			cancel()
		}

		aiClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, log)
		translator = language.NewTranslator(aiClient, opts)
	} else {
		log.Warn("OPENAI_API_KEY is not set, messages are treated as English")
	}

	// --- DB ---
	var repo chat.Repo
	if cfg.TranscriptsEnabled() {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("db open error", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(dbCtx); err != nil {
			cancel()
			log.Error("db ping error", "error", err)
			os.Exit(1)
		}
		if err := chat.EnsureSchema(dbCtx, db); err != nil {
			cancel()
			log.Error("db schema error", "error", err)
			os.Exit(1)
		}
		cancel()
		repo = chat.NewRepo(db)
	}

	var outbound chat.Outbound
	if cfg.OperatorEnabled() {
		outbound = chat.NewWebhookOutbound(cfg.OperatorWebhookURL, cfg.OperatorWebhookToken)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	// --- Chat module wiring ---
	chatService := chat.NewService(chat.Deps{
		Orchestrator: chat.NewOrchestrator(catalog, kb, cfg.HandoffEmail, log),
		Translator:   translator,
		Repo:         repo,
		Outbound:     outbound,
		Validator:    validator.New(),
		Metrics:      m,
		Log:          log,
	})
	chatHandler := chat.NewHandler(chatService)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)
		chat.RegisterRoutes(r, chatHandler)
	})

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("stopped")
}
