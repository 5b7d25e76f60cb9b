package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemInteraction is the per-news-item engagement entry inside an
// Interaction. At most one entry exists per news item id; repeated
// recordings accumulate TimeSpent and overwrite Completed and the date.
type ItemInteraction struct {
	NewsItemID      int       `json:"newsItemId" bson:"newsItemId"`
	TimeSpent       int64     `json:"timeSpent" bson:"timeSpent"`
	Completed       bool      `json:"completed" bson:"completed"`
	InteractionDate time.Time `json:"interactionDate" bson:"interactionDate"`
}

// Interaction is the per-user, per-edition-document engagement record,
// unique on (userId, documentId). The top-level fields mirror the most
// recent update across all sub-entries.
type Interaction struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string             `json:"userId" bson:"userId"`
	DocumentID      string             `json:"documentId" bson:"documentId"`
	TimeSpent       int64              `json:"timeSpent" bson:"timeSpent"`
	Completed       bool               `json:"completed" bson:"completed"`
	InteractionDate time.Time          `json:"interactionDate" bson:"interactionDate"`
	NewsItems       []ItemInteraction  `json:"newsItems" bson:"newsItems"`
}

// Item returns the sub-entry for the given news item id, or nil.
func (in *Interaction) Item(newsItemID int) *ItemInteraction {
	for i := range in.NewsItems {
		if in.NewsItems[i].NewsItemID == newsItemID {
			return &in.NewsItems[i]
		}
	}
	return nil
}

// ArticleRef is the parsed form of the client-side article identifier.
// Clients send either a plain edition document id, or the compound
// "{documentId}_{newsItemId}" string plus an explicit newsItemId field.
type ArticleRef struct {
	DocumentID string
	NewsItemID int
	HasItem    bool
}

// ParseArticleRef splits a raw article id into its document and item
// parts. Compound ids split on the first underscore; everything after it
// is only consulted when no explicit newsItemId was sent. Non-numeric
// item ids are rejected rather than passed through as raw strings.
func ParseArticleRef(articleID, newsItemID string) (ArticleRef, error) {
	if articleID == "" {
		return ArticleRef{}, fmt.Errorf("articleId is required")
	}

	ref := ArticleRef{DocumentID: articleID}
	remainder := ""
	if idx := strings.Index(articleID, "_"); idx >= 0 {
		ref.DocumentID = articleID[:idx]
		remainder = articleID[idx+1:]
		if ref.DocumentID == "" {
			return ArticleRef{}, fmt.Errorf("invalid compound articleId %q", articleID)
		}
	}

	// The explicit newsItemId is authoritative; the compound remainder is
	// a fallback for callers that only send the combined string.
	itemID := newsItemID
	if itemID == "" {
		itemID = remainder
	}
	if itemID == "" {
		return ref, nil
	}

	n, err := strconv.Atoi(itemID)
	if err != nil {
		return ArticleRef{}, fmt.Errorf("newsItemId %q is not numeric", itemID)
	}
	ref.NewsItemID = n
	ref.HasItem = true
	return ref, nil
}
