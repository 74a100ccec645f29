// cmd/assistant-server/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"finance-assistant/internal/common/config"
	"finance-assistant/internal/common/database"
	stderrors "finance-assistant/internal/common/errors"
	"finance-assistant/internal/common/logger"
	"finance-assistant/internal/common/notify"
	"finance-assistant/internal/common/observability"
	"finance-assistant/internal/models"
	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/internal/router"
	"finance-assistant/internal/service"
	"finance-assistant/internal/store"
	"finance-assistant/pkg/patterns"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting assistant server", map[string]interface{}{
		"environment": cfg.App.Environment,
		"port":        cfg.Server.Port,
	})

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server exited with error", nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := loadRegistry(cfg, log)
	if err != nil {
		return err
	}
	if err := registry.ValidateCoverage(models.RoutableIntents()); err != nil {
		return stderrors.NewPatternRegistryError("pattern coverage check failed", err)
	}

	telemetry, err := observability.NewTelemetry()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("telemetry shutdown failed", nil)
		}
	}()

	var db *sql.DB
	if err := retryWithBackoff(ctx, 5, 2*time.Second, func() error {
		var connErr error
		db, connErr = database.NewPostgres(ctx, cfg.Database.Postgres)
		return connErr
	}); err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	log.Info("connected to postgres", map[string]interface{}{"host": cfg.Database.Postgres.Host})

	routerOpts := []router.Option{}

	var redisClient *redis.Client
	var cache service.AnswerCache
	if cfg.Assistant.CacheEnabled {
		redisClient, err = database.NewRedis(ctx, cfg.Database.Redis)
		if err != nil {
			// Cache is an optimization; start degraded rather than fail.
			log.WithError(err).Warn("redis unavailable, caching disabled", nil)
		} else {
			defer redisClient.Close()
			cache = store.NewAnswerCache(redisClient, time.Duration(cfg.Assistant.CacheTTLSeconds)*time.Second)
			log.Info("answer cache enabled", map[string]interface{}{"addr": cfg.Database.Redis.Addr})
		}
	}

	if cfg.Assistant.SearchEnabled {
		esClient, esErr := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if esErr != nil {
			log.WithError(esErr).Warn("elasticsearch unavailable, search falls back to scans", nil)
		} else {
			routerOpts = append(routerOpts, router.WithSearch(store.NewTransactionSearch(esClient)))
		}
	}

	alerts, err := notify.NewAlertPublisher(ctx, cfg.Notifications, log)
	if err != nil {
		return err
	}
	if alerts != nil {
		routerOpts = append(routerOpts, router.WithAlerts(alerts))
	}

	dataStore := store.NewPostgresStore(db)
	rtr := router.New(dataStore, registry, log, routerOpts...)

	assistant := service.New(service.Options{
		Registry:      registry,
		TieBreak:      tieBreakPolicy(cfg.Assistant.TieBreak),
		Router:        rtr,
		Cache:         cache,
		Telemetry:     telemetry,
		Logger:        log,
		DefaultLocale: cfg.Assistant.DefaultLocale,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ready")
	})
	mux.HandleFunc("/api/v1/query", queryHandler(assistant, log))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadRegistry(cfg *config.Config, log logger.Logger) (*patterns.Registry, error) {
	if cfg.Assistant.PatternsPath == "" {
		log.Info("using builtin pattern tables", nil)
		return patterns.NewBuiltin()
	}
	reg, err := patterns.Load(cfg.Assistant.PatternsPath)
	if err != nil {
		return nil, stderrors.NewPatternRegistryError("loading pattern file", err)
	}
	log.Info("loaded pattern file", map[string]interface{}{
		"path":    cfg.Assistant.PatternsPath,
		"version": reg.Version(),
	})
	return reg, nil
}

// tieBreakPolicy merges configured overrides onto the compiled
// defaults, so a partial config section keeps the tuned values.
func tieBreakPolicy(cfg config.TieBreakConfig) classifier.TieBreakPolicy {
	policy := classifier.DefaultTieBreakPolicy()
	if cfg.ConfidentScore > 0 {
		policy.ConfidentScore = cfg.ConfidentScore
	}
	if cfg.AmbiguityGap > 0 {
		policy.AmbiguityGap = cfg.AmbiguityGap
	}
	if len(cfg.Preferred) > 0 {
		preferred := make([]models.Intent, 0, len(cfg.Preferred))
		for _, label := range cfg.Preferred {
			preferred = append(preferred, models.Intent(label))
		}
		policy.Preferred = preferred
	}
	return policy
}

type queryRequest struct {
	UserID  string                    `json:"userId"`
	Query   string                    `json:"query"`
	Locale  string                    `json:"locale"`
	History []models.ConversationTurn `json:"history"`
}

func queryHandler(assistant *service.Assistant, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.UserID == "" || req.Query == "" {
			http.Error(w, "userId and query are required", http.StatusBadRequest)
			return
		}

		answer, err := assistant.Answer(r.Context(), service.AnswerRequest{
			UserID:  req.UserID,
			Query:   req.Query,
			Locale:  req.Locale,
			History: req.History,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if stderrors.CodeOf(err) == stderrors.ErrCodeUnsupportedLocale {
				status = http.StatusBadRequest
			}
			log.WithError(err).Error("query failed", map[string]interface{}{"user_id": req.UserID})
			http.Error(w, stderrors.CodeOf(err), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(answer); err != nil {
			log.WithError(err).Warn("writing response failed", nil)
		}
	}
}

// retryWithBackoff retries fn with doubling delays, respecting context
// cancellation between attempts.
func retryWithBackoff(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	delay := initial
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
