package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/MozaAdirafi/tabletap/analytics-svc/internal/api/http"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/storage"
	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/config"
	"github.com/MozaAdirafi/tabletap/httpx"

	"golang.org/x/sync/errgroup"
)

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := defaultLocation()
	if err != nil {
		log.Fatalf("Invalid TZ_DEFAULT: %v", err)
	}

	db := config.MustInitPostgres()
	defer db.Close()

	cache := newDashboardCache()
	consumer := newInvalidationConsumer(cache)

	svc := service.NewDashboardService(storage.NewPostgresReader(db), cache)
	handler := httpapi.NewHandler(svc, auth.NewAuthenticator(config.MustGetEnv("JWT_SECRET")), loc)
	router := httpapi.NewRouter(handler, config.GetDuration("REQUEST_TIMEOUT", 15*time.Second))
	srv := httpx.NewServer(":"+config.GetEnv("PORT", "8083"), router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpx.Serve(gctx, "Analytics Service", srv) })
	if consumer != nil {
		g.Go(func() error { return consumer.Start(gctx) })
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Analytics Service stopped: %v", err)
	}
}

// defaultLocation is the zone used to cut "today" when a request sends no tz.
func defaultLocation() (*time.Location, error) {
	name := os.Getenv("TZ_DEFAULT")
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// newDashboardCache returns a nil cache when Redis is not configured. The
// service then computes every dashboard from storage.
func newDashboardCache() service.DashboardCache {
	if os.Getenv("REDIS_HOST") == "" {
		log.Println("[CONFIG] REDIS_HOST not set, dashboards are not cached")
		return nil
	}
	return storage.NewRedisCache(config.MustInitRedis())
}

func newInvalidationConsumer(cache service.DashboardCache) *service.Consumer {
	if cache == nil {
		return nil
	}
	if !config.KafkaEnabled() {
		log.Println("[CONFIG] KAFKA_BROKER not set, cached dashboards expire by TTL only")
		return nil
	}
	return service.NewConsumer(config.NewKafkaReader(config.OrdersTopic, "analytics-dashboard"), cache)
}
