package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/packfinderz-storefront/internal/cartsync"
	"github.com/angelmondragon/packfinderz-storefront/internal/catalog"
	"github.com/angelmondragon/packfinderz-storefront/internal/eventbus"
	"github.com/angelmondragon/packfinderz-storefront/internal/recency"
	"github.com/angelmondragon/packfinderz-storefront/internal/suggest"
	"github.com/angelmondragon/packfinderz-storefront/pkg/backend"
	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
	"github.com/angelmondragon/packfinderz-storefront/pkg/redis"
	"github.com/angelmondragon/packfinderz-storefront/pkg/session"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	// Recent searches live in Redis when one is configured; without it the
	// list is memory-only and resets with the process. Either way the rest
	// of the core is unaffected.
	var slot recency.Slot = &recency.MemorySlot{}
	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Warn(ctx, "redis unavailable, recent searches will not persist")
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logg.Error(ctx, "error closing redis", err)
				}
			}()
			slot = recency.NewRedisSlot(redisClient, cfg.Search.RecencySlotKey)
		}
	}

	recentSearches := recency.NewStore(slot, cfg.Search.RecencyCap, logg)
	recentSearches.Load(ctx)

	tokens := &session.Store{}
	checker := session.NewChecker(tokens)

	apiClient, err := backend.NewClient(cfg.Backend, tokens, logg)
	if err != nil {
		logg.Error(ctx, "failed to build backend client", err)
		os.Exit(1)
	}

	bus := eventbus.New(logg, storefrontMetrics)

	mutator, err := cartsync.NewMutator(cartsync.MutatorOptions{
		API:           apiClient,
		Bus:           bus,
		Session:       checker,
		RequireAuth:   cfg.Backend.RequireAuth,
		CartTopic:     cfg.Cart.Topic,
		WishlistTopic: cfg.Cart.WishlistTopic,
		Logger:        logg,
		Metrics:       storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to build mutator", err)
		os.Exit(1)
	}

	badge := cartsync.NewBadge(ctx, cartsync.BadgeOptions{
		Bus:     bus,
		Topic:   mutator.CartTopic(),
		Fetcher: apiClient,
		Logger:  logg,
	})
	defer badge.Close()

	addControl := cartsync.NewControl(cfg.Cart.ConfirmRevert)
	defer addControl.Close()

	ranker := suggest.NewRanker(seedCorpus(), recentSearches)
	searchInput := suggest.NewInput(suggest.InputOptions{
		Ranker:   ranker,
		Recent:   recentSearches,
		Debounce: cfg.Search.DebounceInterval,
		Metrics:  storefrontMetrics,
		OnSearch: func(term string) {
			logg.Info(logg.WithField(ctx, "term", term), "search committed")
		},
	})
	defer searchInput.Close()

	listing := catalog.NewEngine(seedShops())
	presets, err := seedPresets()
	if err != nil {
		logg.Error(ctx, "failed to parse filter presets", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	browseRoutes(router, listing, presets, logg)
	cartRoutes(router, mutator, addControl, badge)
	searchRoutes(router, searchInput, ranker)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := ":" + cfg.App.Port
	logg.Info(logg.WithField(ctx, "addr", addr), "starting storefront shell")

	server := &http.Server{Addr: addr, Handler: router}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront shell stopped unexpectedly", err)
		os.Exit(1)
	}
}
