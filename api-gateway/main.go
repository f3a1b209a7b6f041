package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MozaAdirafi/tabletap/api-gateway/internal/gateway"
	"github.com/MozaAdirafi/tabletap/config"
	"github.com/MozaAdirafi/tabletap/httpx"
)

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout := config.GetDuration("REQUEST_TIMEOUT", 15*time.Second)
	gw := gateway.NewGateway(loadConfig(), &http.Client{Timeout: timeout})
	srv := httpx.NewServer(":"+config.GetEnv("PORT", "8080"), httpx.Chain(gw.SetupRoutes(), timeout))

	if err := httpx.Serve(ctx, "API Gateway", srv); err != nil {
		log.Fatalf("API Gateway stopped: %v", err)
	}
}

func loadConfig() gateway.Config {
	return gateway.Config{
		MenuSvcURL:      config.GetEnv("MENU_SVC_URL", "http://localhost:8081"),
		OrderSvcURL:     config.GetEnv("ORDER_SVC_URL", "http://localhost:8082"),
		AnalyticsSvcURL: config.GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}
}
