package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fander/internal/config"
	httpapi "fander/internal/http"
	"fander/internal/repository"
	"fander/internal/service"

	_ "fander/docs"
)

// @title FANDER Leather API
// @version 1.0
// @description Backend for the FANDER Leather shop: auth, product catalog, cash-on-delivery orders.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	store, err := repository.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("open data file: %v", err)
	}
	tx := repository.NewFileTx(store)

	authSvc := service.NewAuthService(store, tx)
	productsSvc := service.NewProductService(store, tx)
	ordersSvc := service.NewOrderService(store, store, tx)

	srv := httpapi.NewServer(authSvc, productsSvc, ordersSvc)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
