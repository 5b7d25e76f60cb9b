package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digest-service/api"
	"digest-service/auth"
	"digest-service/config"
	"digest-service/events"
	"digest-service/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg := config.Load()
	metrics.Init("digest-service", "1.0", os.Getenv("ENVIRONMENT"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	cancel()
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}
	if err := client.Ping(context.Background(), readpref.Primary()); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	db := client.Database(cfg.MongoDB)

	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTimeout)
	if err != nil {
		log.Fatal("JWT setup failed:", err)
	}

	// The API works without a broker; events are just dropped.
	publisher, err := events.Connect(cfg.NATSURL, "digest-service")
	if err != nil {
		log.Printf("[WARN] NATS unavailable at %s, running without events: %v", cfg.NATSURL, err)
		publisher = nil
	}

	router := api.NewRouter(db, publisher, tokens)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(),
	}

	go func() {
		log.Printf("[INFO] Digest API is running at :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] Shutting down digest service...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server shutdown failed: %v", err)
	}
	publisher.Close()
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("[ERROR] MongoDB disconnect failed: %v", err)
	}
}
