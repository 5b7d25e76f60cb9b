package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digest-service/events"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}

	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "digestdb"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
		log.Printf("NATS_URL not set, using default: %s", natsURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	cancel()
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}
	db := client.Database(mongoDB)

	log.Printf("Connecting to NATS at %s", natsURL)
	consumer, err := events.NewConsumer(db, natsURL)
	if err != nil {
		log.Fatal("Failed to connect to NATS:", err)
	}
	defer consumer.Close()

	if err := consumer.Start(); err != nil {
		log.Fatal("Failed to start consumers:", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] Shutting down trend consumer...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("[ERROR] MongoDB disconnect failed: %v", err)
	}
}
