package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Consumer folds view and interaction events into the category_trends
// collection, one document per (editionKey, category).
type Consumer struct {
	db   *mongo.Database
	conn *nats.Conn
}

func NewConsumer(db *mongo.Database, natsURL string) (*Consumer, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("digest-trends-consumer"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[INFO] Reconnected to NATS at %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{db: db, conn: nc}, nil
}

func (c *Consumer) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Start subscribes to both digest subjects on a shared queue group so
// multiple consumer replicas split the load.
func (c *Consumer) Start() error {
	if _, err := c.conn.QueueSubscribe(SubjectViews, "digest-trends", c.handleView); err != nil {
		return err
	}
	if _, err := c.conn.QueueSubscribe(SubjectInteractions, "digest-trends", c.handleInteraction); err != nil {
		return err
	}

	log.Printf("[INFO] Trend consumers started for %s and %s", SubjectViews, SubjectInteractions)
	return nil
}

func (c *Consumer) handleView(msg *nats.Msg) {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		log.Printf("[ERROR] Failed to unmarshal view event: %v", err)
		return
	}
	if env.View == nil || env.View.Category == "" {
		return
	}

	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	c.foldTrend(env.View.EditionKey, env.View.Category, update)
}

func (c *Consumer) handleInteraction(msg *nats.Msg) {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		log.Printf("[ERROR] Failed to unmarshal interaction event: %v", err)
		return
	}
	ev := env.Interaction
	if ev == nil || ev.Category == "" {
		return
	}

	inc := bson.M{"timeSpent": ev.TimeSpent}
	if ev.Completed {
		inc["reads"] = 1
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": time.Now()},
	}
	c.foldTrend(ev.EditionKey, ev.Category, update)
}

func (c *Consumer) foldTrend(editionKey, category string, update bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"editionKey": editionKey, "category": category}
	_, err := c.db.Collection("category_trends").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("[ERROR] Trend fold failed for edition=%s category=%s: %v", editionKey, category, err)
	}
}
