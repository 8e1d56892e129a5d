package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"memopad/internal/assist"
	"memopad/internal/cart"
	"memopad/internal/catalog"
	"memopad/internal/config"
	"memopad/internal/gateway"
	httpapi "memopad/internal/http"
	"memopad/internal/obs"
	"memopad/internal/order"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	gw := gateway.New(gateway.Config{
		BaseURL:    cfg.GatewayURL,
		HTTPClient: &http.Client{Timeout: cfg.GatewayTimeout},
	})
	cat := catalog.NewStore(gw)
	crt := cart.New()
	orders := order.NewService(gw, cat, crt)
	describer := assist.New(assist.Config{
		URL:        cfg.AssistURL,
		APIKey:     cfg.AssistAPIKey,
		Model:      cfg.AssistModel,
		HTTPClient: &http.Client{Timeout: cfg.AssistTimeout},
	})

	// стартовые загрузки независимы и могут завершиться в любом порядке;
	// недоступный сервис не мешает поднять HTTP-сервер
	startCtx := context.Background()
	if err := cat.Refresh(startCtx); err != nil {
		obs.Logger.Warn("initial catalog refresh failed", "error", err)
	}
	orders.RefreshHistory(startCtx)

	srv := httpapi.NewServer(cat, crt, orders, describer)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		obs.Logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		obs.Logger.Error("shutdown error", "error", err)
	}
}
