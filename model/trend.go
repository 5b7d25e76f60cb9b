package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryTrend is the per-edition, per-category rollup maintained by the
// event consumer from view and interaction events.
type CategoryTrend struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	EditionKey string             `json:"editionKey" bson:"editionKey"`
	Category   string             `json:"category" bson:"category"`
	Views      int64              `json:"views" bson:"views"`
	Reads      int64              `json:"reads" bson:"reads"`
	TimeSpent  int64              `json:"timeSpent" bson:"timeSpent"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
