package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-catalog-cart.git/internal/cache"
	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	"github.com/ariefcatur/go-catalog-cart.git/internal/config"
	kafkax "github.com/ariefcatur/go-catalog-cart.git/internal/kafka"
	"github.com/ariefcatur/go-catalog-cart.git/internal/redisx"
	"github.com/ariefcatur/go-catalog-cart.git/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: cfg.ServiceName + "-cachesync", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &cache.Service{
		Redis:       rdb,
		ServiceName: "cachesync",
	}

	group := getenv("CACHESYNC_GROUP", "cachesync")
	workers := atoiOr(os.Getenv("CACHESYNC_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, catalog.TopicItemEvents, workers)

	go func() {
		log.Info("cachesync consumer started", "group", group, "topic", catalog.TopicItemEvents, "workers", workers)
		if err := cons.Start(ctx, svc.HandleItemEvent); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
