package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-catalog-cart.git/internal/cart"
	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	"github.com/ariefcatur/go-catalog-cart.git/internal/config"
	"github.com/ariefcatur/go-catalog-cart.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-catalog-cart.git/internal/kafka"
	"github.com/ariefcatur/go-catalog-cart.git/internal/postgres"
	"github.com/ariefcatur/go-catalog-cart.git/internal/redisx"
	"github.com/ariefcatur/go-catalog-cart.git/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: cfg.ServiceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for catalog events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicItemEvents, 1024)
	prod.Start(ctx)

	// Repo & handlers
	repo := catalog.NewRepo(db)
	router := httpx.NewRouter()

	ih := &httpx.ItemsHandler{
		Repo:     repo,
		Redis:    rdb,
		Producer: prod,
		Service:  cfg.ServiceName,
	}
	ih.Register(router, httpx.BearerAuth(cfg.JWTSecret))

	ch := &httpx.CartHandler{
		Checker:   cart.NewChecker(repo),
		Validator: cart.NewValidator(repo),
	}
	ch.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush & close writer
	prod.WaitClosed()
}
