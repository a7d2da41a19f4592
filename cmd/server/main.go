package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/storelab/catalog-service/app/catalog"
	"github.com/storelab/catalog-service/app/categories"
	"github.com/storelab/catalog-service/internal/config"
	"github.com/storelab/catalog-service/internal/database"
	"github.com/storelab/catalog-service/internal/middleware"
	"github.com/storelab/catalog-service/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.InitialFields = map[string]any{"service": "catalog"}
	log, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		log.Fatal("schema sync failed", zap.Error(err))
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)

	catalogHandler := catalog.NewCatalogHandler(productsRepo, log)
	categoriesHandler := categories.NewCategoryHandler(categoriesRepo, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/category/add", categoriesHandler.HandleAdd)
	r.Get("/category/all", categoriesHandler.HandleGetAll)

	r.Get("/product", catalogHandler.HandleList)
	r.Post("/product/add", catalogHandler.HandleAdd)
	r.Post("/product/addProducts", catalogHandler.HandleBulkAdd)
	r.Get("/product/{slug}", catalogHandler.HandleGetBySlug)
	r.Put("/product/update/{id}", catalogHandler.HandleUpdate)
	r.Delete("/product/delete/{id}", catalogHandler.HandleDelete)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped")
}
