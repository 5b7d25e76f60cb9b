package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"digest-service/events"
	"digest-service/metrics"
	"digest-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InteractionService records per-user reading activity and folds completed
// reads into the user's engagement stats.
type InteractionService struct {
	db       *mongo.Database
	editions *EditionService
	events   *events.Publisher
}

func NewInteractionService(db *mongo.Database, editions *EditionService, publisher *events.Publisher) *InteractionService {
	return &InteractionService{db: db, editions: editions, events: publisher}
}

func (s *InteractionService) collection() *mongo.Collection {
	return s.db.Collection("user_article_interactions")
}

// Record merges one reading interaction into the (userId, documentId)
// record. Top-level and sub-entry timeSpent accumulate; completed and the
// interaction date are overwritten. Both merge steps are single atomic
// Mongo updates, so concurrent recordings for the same item cannot drop
// increments.
func (s *InteractionService) Record(ctx context.Context, userID string, ref model.ArticleRef, timeSpent int64, completed bool) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if ref.DocumentID == "" {
		return fmt.Errorf("%w: articleId is required", ErrInvalidInput)
	}
	if timeSpent < 0 {
		return fmt.Errorf("%w: timeSpent must be >= 0", ErrInvalidInput)
	}

	now := time.Now()
	prior, err := s.merge(ctx, userID, ref, timeSpent, completed, now)
	if err != nil {
		return err
	}

	metrics.InteractionsRecorded.WithLabelValues(strconv.FormatBool(completed)).Inc()

	category, editionKey := "", ""
	if completed {
		// Category resolution is best-effort enrichment; a miss only
		// skips the per-category fold.
		category, editionKey, err = s.editions.categoryOf(ctx, ref.DocumentID, ref.NewsItemID)
		if err != nil {
			log.Printf("[WARN] Category lookup failed for document=%s item=%d: %v", ref.DocumentID, ref.NewsItemID, err)
			category = ""
		}

		firstCompletion := shouldCountCompletion(prior, ref, completed)
		if err := s.updateStats(ctx, userID, timeSpent, firstCompletion, category, now); err != nil {
			return err
		}
	}

	if err := s.events.PublishInteraction(events.InteractionEvent{
		UserID:     userID,
		DocumentID: ref.DocumentID,
		NewsItemID: ref.NewsItemID,
		TimeSpent:  timeSpent,
		Completed:  completed,
		Category:   category,
		EditionKey: editionKey,
	}); err != nil {
		log.Printf("[WARN] Failed to publish interaction event: %v", err)
	}

	return nil
}

// merge applies the interaction to the store and returns the record as it
// was before the update (nil on first-time creation).
func (s *InteractionService) merge(ctx context.Context, userID string, ref model.ArticleRef, timeSpent int64, completed bool, now time.Time) (*model.Interaction, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	if ref.HasItem {
		// Step 1: the sub-entry already exists, accumulate in place.
		filter := bson.M{
			"userId":               userID,
			"documentId":           ref.DocumentID,
			"newsItems.newsItemId": ref.NewsItemID,
		}
		update := bson.M{
			"$inc": bson.M{
				"timeSpent":             timeSpent,
				"newsItems.$.timeSpent": timeSpent,
			},
			"$set": bson.M{
				"completed":                   completed,
				"interactionDate":             now,
				"newsItems.$.completed":       completed,
				"newsItems.$.interactionDate": now,
			},
		}

		var prior model.Interaction
		err := s.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&prior)
		if err == nil {
			return &prior, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	// Step 2: no matching sub-entry. Upsert the record and, for item-level
	// recordings, append the new sub-entry.
	filter := bson.M{"userId": userID, "documentId": ref.DocumentID}
	update := bson.M{
		"$inc": bson.M{"timeSpent": timeSpent},
		"$set": bson.M{
			"completed":       completed,
			"interactionDate": now,
		},
	}
	if ref.HasItem {
		update["$push"] = bson.M{"newsItems": model.ItemInteraction{
			NewsItemID:      ref.NewsItemID,
			TimeSpent:       timeSpent,
			Completed:       completed,
			InteractionDate: now,
		}}
	}

	var prior model.Interaction
	err := s.collection().FindOneAndUpdate(ctx, filter, update, opts.SetUpsert(true)).Decode(&prior)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prior, nil
}

// shouldCountCompletion decides whether this recording is the first
// completion of its target and may increment articlesRead. Resending
// completed=true for an already-completed item must not double-count.
func shouldCountCompletion(prior *model.Interaction, ref model.ArticleRef, completed bool) bool {
	if !completed {
		return false
	}
	if prior == nil {
		return true
	}
	if ref.HasItem {
		item := prior.Item(ref.NewsItemID)
		return item == nil || !item.Completed
	}
	return !prior.Completed
}

// updateStats folds a completed read into user_stats. Time always
// accumulates; the read counters only move on first completion.
func (s *InteractionService) updateStats(ctx context.Context, userID string, timeSpent int64, firstCompletion bool, category string, now time.Time) error {
	statsColl := s.db.Collection("user_stats")
	day := now.Format(dateLayout)

	inc := bson.M{"totalTimeSpent": timeSpent}
	if firstCompletion {
		inc["articlesRead"] = 1
	}
	if category != "" {
		inc["categoryEngagement."+category+".timeSpent"] = timeSpent
		if firstCompletion {
			inc["categoryEngagement."+category+".articlesRead"] = 1
		}
	}

	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"lastActivity": now},
	}
	_, err := statsColl.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}

	// Daily bucket: accumulate in place, push a fresh bucket when today's
	// is missing. Same two-step shape as the sub-entry merge.
	dayInc := bson.M{"dailyStats.$.timeSpent": timeSpent}
	if firstCompletion {
		dayInc["dailyStats.$.articlesRead"] = 1
	}
	result, err := statsColl.UpdateOne(ctx,
		bson.M{"userId": userID, "dailyStats.date": day},
		bson.M{"$inc": dayInc},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		var read int64
		if firstCompletion {
			read = 1
		}
		_, err = statsColl.UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{"$push": bson.M{"dailyStats": model.DailyStat{
				Date:         day,
				TimeSpent:    timeSpent,
				ArticlesRead: read,
			}}},
		)
	}
	return err
}

// History returns the user's interaction records, newest first.
func (s *InteractionService) History(ctx context.Context, userID string, limit int64) ([]model.Interaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.M{"interactionDate": -1}).
		SetLimit(limit)

	cursor, err := s.collection().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interactions []model.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}
