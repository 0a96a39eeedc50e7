package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/deepak6009/customer-service-bot/internal/api"
	"github.com/deepak6009/customer-service-bot/internal/blob"
	"github.com/deepak6009/customer-service-bot/internal/config"
	"github.com/deepak6009/customer-service-bot/internal/core"
	"github.com/deepak6009/customer-service-bot/internal/logger"
	"github.com/deepak6009/customer-service-bot/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	log := logger.New(config.AppConfig.LogLevel, config.AppConfig.LogFormat)
	defer log.Sync()

	// Command line flag for catalog seeding
	seedFile := flag.String("seed", "", "Load a JSON catalog seed file and exit")
	flag.Parse()

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbStore.Close()

	// Handle catalog seeding if flag is set
	if *seedFile != "" {
		log.Info("Starting catalog seed", zap.String("file", *seedFile))
		numSeeded, err := dbStore.SeedFromFile(context.Background(), *seedFile)
		if err != nil {
			log.Fatal("Catalog seed failed", zap.Error(err))
		}
		log.Info("Catalog seed complete, exiting", zap.Int("products", numSeeded))
		os.Exit(0)
	}

	// Initialize the signed-link issuer
	linkIssuer, err := blob.NewS3LinkIssuer(
		context.Background(),
		config.AppConfig.AssetBucket,
		config.AppConfig.AWSRegion,
		time.Duration(config.AppConfig.SignedURLTTLSeconds)*time.Second,
	)
	if err != nil {
		log.Fatal("Failed to initialize link issuer", zap.Error(err))
	}

	// Initialize Chat service
	chatService := core.NewChatService(dbStore, linkIssuer, log)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(dbStore, chatService, linkIssuer, log)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Info("Starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting gracefully")
}
