package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/config"
	"github.com/dkotelnikov/eventory/internal/logger"
	"github.com/dkotelnikov/eventory/internal/stats"
	"github.com/dkotelnikov/eventory/internal/stats/handler"
	"github.com/dkotelnikov/eventory/internal/stats/postgres"
)

func main() {
	logger.Init()

	cfg, err := config.LoadStats()
	if err != nil {
		log.Fatal(err)
	}

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

	svc := stats.NewService(postgres.New(db))
	h := handler.New(svc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Router(h),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}
