package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/application/admission"
	"github.com/dkotelnikov/eventory/internal/application/catalog"
	"github.com/dkotelnikov/eventory/internal/application/event"
	"github.com/dkotelnikov/eventory/internal/config"
	rediscache "github.com/dkotelnikov/eventory/internal/infrastructure/caching/redis"
	"github.com/dkotelnikov/eventory/internal/infrastructure/db/pgstore"
	"github.com/dkotelnikov/eventory/internal/infrastructure/db/postgres"
	rabbitpub "github.com/dkotelnikov/eventory/internal/infrastructure/messaging/rabbitmq"
	statsgw "github.com/dkotelnikov/eventory/internal/infrastructure/stats"
	"github.com/dkotelnikov/eventory/internal/logger"
	"github.com/dkotelnikov/eventory/internal/transport/http/handlers"
	authmw "github.com/dkotelnikov/eventory/internal/transport/http/middleware"
	"github.com/dkotelnikov/eventory/internal/transport/http/router"
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies of the api binary.
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Pool   *pgxpool.Pool

	Publisher *rabbitpub.Publisher
	Cache     *rediscache.Cache
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("pgx pool init failed")
	}
	defer pool.Close()

	app := NewApp(cfg, db, pool)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB, pool *pgxpool.Pool) *App {
	// 1) Infrastructure
	eventRepo := postgres.New(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	userRepo := postgres.NewUserRepo(db)
	store := pgstore.New(pool)

	var rabbit *rabbitpub.Publisher
	var pub event.Publisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	var cache *rediscache.Cache
	var viewCache event.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(context.Background(), cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: view counts are uncached")
		} else {
			cache = c
			viewCache = c
		}
	}

	var stats event.StatsGateway = event.NoopStats{}
	if cfg.StatsURL != "" {
		stats = statsgw.NewClient(cfg.StatsURL, cfg.AppName, 5*time.Second)
	}

	// 2) Application
	eventSvc := event.New(eventRepo, categoryRepo, userRepo, stats,
		sysClock{}, pub, viewCache, cfg.CacheTTLView)
	admissionSvc := admission.New(store, userRepo, sysClock{}, pub)
	catalogSvc := catalog.New(categoryRepo, userRepo)

	// 3) Transport
	events := handlers.NewEventsHandler(eventSvc, catalogSvc)
	requests := handlers.NewRequestsHandler(admissionSvc)
	cat := handlers.NewCatalogHandler(catalogSvc)
	health := handlers.NewHealthHandler()
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)

	// 4) Router + server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(events, requests, cat, health, auth, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Pool:      pool,
		Publisher: rabbit,
		Cache:     cache,
	}
}
