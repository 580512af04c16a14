package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	logger "github.com/makaka119911-oss/Tatiana-Server/internal/logging"
	"github.com/makaka119911-oss/Tatiana-Server/internal/notify"
	"github.com/makaka119911-oss/Tatiana-Server/internal/router"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Open the store: postgres with retries, or the in-memory fallback
	store, err := storage.Open(config.Conf, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	notifier := notify.New(config.Conf.Telegram, log)

	// Setup router, passing the logger to it
	r := router.Setup(log, store, notifier)

	srv := &http.Server{
		Addr:    ":" + config.Conf.Server.Port,
		Handler: r,
	}

	go func() {
		log.Info("Server listening on http://localhost:" + config.Conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
