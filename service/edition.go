package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digest-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const dateLayout = "2006-01-02"

// CurrentEditionKey maps an instant to the edition key whose content
// should be shown at that moment. Editions roll over at 06:00 and 18:00
// local time; the overnight hours belong to the prior evening edition.
// Ties at an exact boundary resolve to the edition starting there.
func CurrentEditionKey(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 18:
		return fmt.Sprintf("%s_18:00", now.Format(dateLayout))
	case h >= 6:
		return fmt.Sprintf("%s_06:00", now.Format(dateLayout))
	default:
		return fmt.Sprintf("%s_18:00", now.AddDate(0, 0, -1).Format(dateLayout))
	}
}

// WindowStart returns the instant the current edition window opened: the
// most recent 06:00 or 18:00 boundary at or before now.
func WindowStart(now time.Time) time.Time {
	y, m, d := now.Date()
	switch h := now.Hour(); {
	case h >= 18:
		return time.Date(y, m, d, 18, 0, 0, 0, now.Location())
	case h >= 6:
		return time.Date(y, m, d, 6, 0, 0, 0, now.Location())
	default:
		yesterday := now.AddDate(0, 0, -1)
		y, m, d = yesterday.Date()
		return time.Date(y, m, d, 18, 0, 0, 0, now.Location())
	}
}

// EditionService reads editions and bumps embedded item view counters.
// Edition documents themselves are produced by the summarization pipeline.
type EditionService struct {
	db *mongo.Database
}

func NewEditionService(db *mongo.Database) *EditionService {
	return &EditionService{db: db}
}

func (s *EditionService) collection() *mongo.Collection {
	return s.db.Collection("editions")
}

// GetByKey fetches one edition by its date key.
func (s *EditionService) GetByKey(ctx context.Context, key string) (*model.Edition, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: edition key is required", ErrInvalidInput)
	}

	var edition model.Edition
	err := s.collection().FindOne(ctx, bson.M{"key": key}).Decode(&edition)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: edition %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return &edition, nil
}

// Current fetches the edition for the window containing now.
func (s *EditionService) Current(ctx context.Context, now time.Time) (*model.Edition, error) {
	return s.GetByKey(ctx, CurrentEditionKey(now))
}

// IncrementView bumps the view counter of one item inside an edition and
// returns the item's category for event publishing.
func (s *EditionService) IncrementView(ctx context.Context, key string, itemID int) (string, error) {
	edition, err := s.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	item := edition.Item(itemID)
	if item == nil {
		return "", fmt.Errorf("%w: item %d in edition %s", ErrNotFound, itemID, key)
	}

	filter := bson.M{"key": key, "newsItems.id": itemID}
	update := bson.M{"$inc": bson.M{"newsItems.$.views": 1}}
	result, err := s.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return "", err
	}
	if result.MatchedCount == 0 {
		return "", fmt.Errorf("%w: item %d in edition %s", ErrNotFound, itemID, key)
	}

	return item.Category, nil
}

// categoryOf resolves the category of a news item inside the edition
// document with the given id. Used by the interaction recorder's
// best-effort category fold.
func (s *EditionService) categoryOf(ctx context.Context, documentID string, itemID int) (string, string, error) {
	filter, err := editionFilter(documentID)
	if err != nil {
		return "", "", err
	}

	var edition model.Edition
	if err := s.collection().FindOne(ctx, filter).Decode(&edition); err != nil {
		return "", "", err
	}
	item := edition.Item(itemID)
	if item == nil {
		return "", edition.Key, fmt.Errorf("item %d not in edition %s", itemID, edition.Key)
	}
	return item.Category, edition.Key, nil
}

// editionFilter accepts either an ObjectID hex string or an edition key,
// since clients historically sent both forms as the document id.
func editionFilter(documentID string) (bson.M, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: documentId is required", ErrInvalidInput)
	}
	if oid, err := primitive.ObjectIDFromHex(documentID); err == nil {
		return bson.M{"_id": oid}, nil
	}
	return bson.M{"key": documentID}, nil
}
