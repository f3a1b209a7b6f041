package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/config"
	"github.com/MozaAdirafi/tabletap/httpx"
	httpapi "github.com/MozaAdirafi/tabletap/order-svc/internal/api/http"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/cart"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/livesync"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, closeRepository := newOrderRepository(ctx)
	defer closeRepository()

	broker := livesync.NewBroker(repository)
	defer broker.Close()

	publisher, consumer, closeStream := newEventStream(broker)
	defer closeStream()

	policy, err := cartKeyPolicy()
	if err != nil {
		log.Fatalf("Invalid CART_KEY_POLICY: %v", err)
	}

	catalog := service.NewMenuCatalog(config.GetEnv("MENU_SVC_URL", "http://menu-svc:8081"), 5*time.Second)
	orders := service.NewOrderService(repository, catalog, publisher)
	carts := service.NewCartService(newCartStorage(), catalog, orders, policy)

	limiter, err := newOrderLimiter()
	if err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	handler := httpapi.NewHandler(orders, carts, broker, auth.NewAuthenticator(config.MustGetEnv("JWT_SECRET")), limiter)
	router := httpapi.NewRouter(handler, config.GetDuration("REQUEST_TIMEOUT", 15*time.Second))
	srv := httpx.NewServer(":"+config.GetEnv("PORT", "8082"), router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpx.Serve(gctx, "Order Service", srv) })
	if consumer != nil {
		g.Go(func() error { return consumer.Start(gctx) })
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Order Service stopped: %v", err)
	}
}

func newOrderRepository(ctx context.Context) (service.OrderRepository, func()) {
	if os.Getenv("DB_HOST") == "" {
		log.Println("[CONFIG] DB_HOST not set, keeping orders in memory")
		return storage.NewMemoryRepository(), func() {}
	}

	db := config.MustInitPostgres()
	repository := storage.NewPostgresRepository(db)
	if err := repository.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare order schema: %v", err)
	}
	return repository, func() { db.Close() }
}

// newEventStream publishes through Kafka when a broker is configured. Each
// instance tails the topic with its own consumer group so every instance
// sees every event.
func newEventStream(broker *livesync.Broker) (service.EventPublisher, *livesync.Consumer, func()) {
	if !config.KafkaEnabled() {
		log.Println("[CONFIG] KAFKA_BROKER not set, publishing order events in-process")
		return livesync.NewLocalPublisher(broker), nil, func() {}
	}

	writer := config.NewKafkaWriter(config.OrdersTopic)
	reader := config.NewKafkaTailReader(config.OrdersTopic, "order-live-"+uuid.NewString())
	return storage.NewKafkaPublisher(writer), livesync.NewConsumer(reader, broker), func() { writer.Close() }
}

func newCartStorage() cart.Storage {
	if os.Getenv("REDIS_HOST") == "" {
		log.Println("[CONFIG] REDIS_HOST not set, keeping carts in memory")
		return cart.NewMemoryStorage()
	}
	ttl := config.GetDuration("CART_TTL", storage.DefaultCartTTL)
	return storage.NewRedisCartStorage(config.MustInitRedis(), ttl)
}

// newOrderLimiter throttles order placement per customer. Behind the gateway
// the customer address comes from X-Forwarded-For, which is only honoured for
// peers listed in TRUSTED_PROXIES.
func newOrderLimiter() (*httpx.RateLimiter, error) {
	trusted, err := httpx.ParseTrustedProxies(config.GetList("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}
	limiter := httpx.NewRateLimiter(
		rate.Limit(float64(config.GetInt("ORDER_RATE_PER_MINUTE", 30))/60),
		config.GetInt("ORDER_RATE_BURST", 10),
	)
	return limiter.WithTrustedProxies(trusted), nil
}

func cartKeyPolicy() (cart.KeyPolicy, error) {
	return cart.ParseKeyPolicy(os.Getenv("CART_KEY_POLICY"))
}
