package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"phuongnam/internal/config"
	"phuongnam/internal/domain"
	httpapi "phuongnam/internal/http"
	"phuongnam/internal/repository"
	"phuongnam/internal/service"

	_ "phuongnam/docs"
)

// @title Restaurant API
// @version 1.0
// @description REST backend for the Phuong Nam restaurant: categories, food catalog and chat assistant.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The process refuses to start without the catalog store.
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Food{}, &domain.OrderItem{}); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	log.Println("database connected and migrated")

	catalogRepo := repository.NewGormCatalog(db)
	catalogSvc := service.NewCatalogService(catalogRepo)
	chatSvc := service.NewChatService(nil)

	srv := httpapi.NewServer(catalogSvc, chatSvc, cfg.Env, cfg.ImagesDir)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
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
