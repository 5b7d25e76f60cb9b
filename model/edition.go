package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsItem is one article-like entry inside an edition. Views only ever
// move up, via $inc on the embedded document.
type NewsItem struct {
	ID        int    `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Summary   string `json:"summary" bson:"summary"`
	Category  string `json:"category" bson:"category"`
	ImageURL  string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	Views     int64  `json:"views" bson:"views"`
}

// Edition is a 12-hour news cycle bundle. The key has the shape
// "YYYY-MM-DD_06:00" or "YYYY-MM-DD_18:00". Editions are written by the
// external summarization pipeline; this service only reads them and
// increments item view counters.
type Edition struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Key         string             `json:"key" bson:"key"`
	Date        string             `json:"date" bson:"date"`
	GeneratedAt time.Time          `json:"generatedAt" bson:"generatedAt"`
	NewsItems   []NewsItem         `json:"newsItems" bson:"newsItems"`
}

// Item returns the embedded news item with the given id, or nil.
func (e *Edition) Item(id int) *NewsItem {
	for i := range e.NewsItems {
		if e.NewsItems[i].ID == id {
			return &e.NewsItems[i]
		}
	}
	return nil
}

// Categories returns the distinct item categories in first-seen order.
func (e *Edition) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range e.NewsItems {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}
