package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"digest-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRank is one entry of the top-categories ranking.
type CategoryRank struct {
	Category     string `json:"category"`
	TimeSpent    int64  `json:"timeSpent"`
	ArticlesRead int64  `json:"articlesRead"`
	Score        int64  `json:"score"`
}

// TopCategories ranks the engagement map descending by the combined
// timeSpent+articlesRead score. Ties break on category name so the
// ranking is deterministic.
func TopCategories(stats *model.UserStats, n int) []CategoryRank {
	if stats == nil || n <= 0 {
		return nil
	}

	ranks := make([]CategoryRank, 0, len(stats.CategoryEngagement))
	for name, engagement := range stats.CategoryEngagement {
		ranks = append(ranks, CategoryRank{
			Category:     name,
			TimeSpent:    engagement.TimeSpent,
			ArticlesRead: engagement.ArticlesRead,
			Score:        engagement.TimeSpent + engagement.ArticlesRead,
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Score != ranks[j].Score {
			return ranks[i].Score > ranks[j].Score
		}
		return ranks[i].Category < ranks[j].Category
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// ProgressPercentage reports how far through an edition the user is,
// clamped to 100. An empty edition reads as zero progress.
func ProgressPercentage(articlesRead, totalArticles int64) int {
	if totalArticles <= 0 || articlesRead <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(articlesRead) / float64(totalArticles)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// CountReadSince counts completed reads at or after the window start.
// Records carrying a newsItems sub-list are counted per sub-entry; when no
// record has one, legacy top-level records count instead.
func CountReadSince(interactions []model.Interaction, since time.Time) int {
	count := 0
	hasSubLists := false
	for _, in := range interactions {
		if len(in.NewsItems) > 0 {
			hasSubLists = true
		}
		for _, item := range in.NewsItems {
			if item.Completed && !item.InteractionDate.Before(since) {
				count++
			}
		}
	}
	if hasSubLists {
		return count
	}

	for _, in := range interactions {
		if in.Completed && !in.InteractionDate.Before(since) {
			count++
		}
	}
	return count
}

// StatsService serves the engagement rollups behind the digest progress
// and profile screens.
type StatsService struct {
	db *mongo.Database
}

func NewStatsService(db *mongo.Database) *StatsService {
	return &StatsService{db: db}
}

// Get returns the user's stats record, or an all-zero record when the
// user has no activity yet.
func (s *StatsService) Get(ctx context.Context, userID string) (*model.UserStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	var stats model.UserStats
	err := s.db.Collection("user_stats").FindOne(ctx, bson.M{"userId": userID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &model.UserStats{
			UserID:             userID,
			CategoryEngagement: map[string]model.CategoryEngagement{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if stats.CategoryEngagement == nil {
		stats.CategoryEngagement = map[string]model.CategoryEngagement{}
	}
	return &stats, nil
}

// ReadInCurrentWindow counts the user's completed reads inside the
// edition window containing now.
func (s *StatsService) ReadInCurrentWindow(ctx context.Context, userID string, now time.Time) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	since := WindowStart(now)
	filter := bson.M{
		"userId":          userID,
		"interactionDate": bson.M{"$gte": since},
	}

	cursor, err := s.db.Collection("user_article_interactions").Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var interactions []model.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return 0, err
	}
	return CountReadSince(interactions, since), nil
}

// Trending returns the consumer-maintained category rollup for an
// edition, most engaged first.
func (s *StatsService) Trending(ctx context.Context, editionKey string, limit int64) ([]model.CategoryTrend, error) {
	if editionKey == "" {
		return nil, fmt.Errorf("%w: edition key is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	pipeline := []bson.M{
		{"$match": bson.M{"editionKey": editionKey}},
		{"$addFields": bson.M{"score": bson.M{"$add": []interface{}{"$views", "$reads", "$timeSpent"}}}},
		{"$sort": bson.M{"score": -1}},
		{"$limit": limit},
	}

	cursor, err := s.db.Collection("category_trends").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trends []model.CategoryTrend
	if err := cursor.All(ctx, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}
