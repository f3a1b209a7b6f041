package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/config"
	"github.com/MozaAdirafi/tabletap/httpx"
	httpapi "github.com/MozaAdirafi/tabletap/menu-svc/internal/api/http"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/storage"
)

const (
	storePostgres = "postgres"
	storeMongo    = "mongo"
)

type repositories struct {
	restaurants service.RestaurantRepository
	menu        service.MenuRepository
	tables      service.TableRepository
	close       func()
}

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := menuStore()
	if err != nil {
		log.Fatalf("Invalid MENU_STORE: %v", err)
	}
	repos := newRepositories(ctx, store)
	defer repos.close()

	qr := service.DefaultQRGenerator{BaseURL: strings.TrimRight(config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/")}
	restaurants := service.NewRestaurantService(repos.restaurants)
	handler := httpapi.NewHandler(
		restaurants,
		service.NewMenuService(repos.menu, restaurants),
		service.NewTableService(repos.tables, restaurants, qr),
		auth.NewAuthenticator(config.MustGetEnv("JWT_SECRET")),
	)
	router := httpapi.NewRouter(handler, config.GetDuration("REQUEST_TIMEOUT", 15*time.Second))
	srv := httpx.NewServer(":"+config.GetEnv("PORT", "8081"), router)

	if err := httpx.Serve(ctx, "Menu Service", srv); err != nil {
		log.Fatalf("Menu Service stopped: %v", err)
	}
}

func menuStore() (string, error) {
	switch store := strings.ToLower(os.Getenv("MENU_STORE")); store {
	case "", storePostgres:
		return storePostgres, nil
	case storeMongo:
		return storeMongo, nil
	default:
		return "", fmt.Errorf("unknown menu store %q", store)
	}
}

// newRepositories keeps everything in memory when DB_HOST is unset. With a
// database, restaurants and tables live in postgres and the menu catalog
// lives in whichever store MENU_STORE selects.
func newRepositories(ctx context.Context, store string) repositories {
	if os.Getenv("DB_HOST") == "" {
		log.Println("[CONFIG] DB_HOST not set, keeping the menu in memory")
		memory := storage.NewMemoryRepository()
		return repositories{restaurants: memory, menu: memory, tables: memory, close: func() {}}
	}

	db := config.MustInitPostgres()
	postgres := storage.NewPostgresRepository(db)
	if err := postgres.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare menu schema: %v", err)
	}
	repos := repositories{restaurants: postgres, menu: postgres, tables: postgres, close: func() { db.Close() }}

	if store == storeMongo {
		mongoDB := config.MustInitMongo()
		catalog := storage.NewMongoRepository(mongoDB)
		if err := catalog.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to prepare menu indexes: %v", err)
		}
		log.Println("[CONFIG] menu catalog stored in MongoDB")
		repos.menu = catalog
		repos.close = func() {
			db.Close()
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongoDB.Client().Disconnect(disconnectCtx)
		}
	}
	return repos
}
