package service

import (
	"context"
	"testing"
	"time"

	"digest-service/model"

	"github.com/stretchr/testify/assert"
)

func TestRecordValidation(t *testing.T) {
	// Validation fires before any store access, so a zero-value service
	// is enough here.
	svc := &InteractionService{}
	ref := model.ArticleRef{DocumentID: "doc1", NewsItemID: 1, HasItem: true}

	err := svc.Record(context.Background(), "", ref, 30, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Record(context.Background(), "user1", model.ArticleRef{}, 30, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Record(context.Background(), "user1", ref, -5, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestShouldCountCompletionFirstTime(t *testing.T) {
	ref := model.ArticleRef{DocumentID: "doc1", NewsItemID: 7, HasItem: true}

	// No prior record at all.
	assert.True(t, shouldCountCompletion(nil, ref, true))

	// Prior record without this sub-entry.
	prior := &model.Interaction{
		UserID:     "user1",
		DocumentID: "doc1",
		NewsItems: []model.ItemInteraction{
			{NewsItemID: 3, Completed: true},
		},
	}
	assert.True(t, shouldCountCompletion(prior, ref, true))

	// Sub-entry exists but was never completed.
	prior.NewsItems = append(prior.NewsItems, model.ItemInteraction{NewsItemID: 7, Completed: false})
	assert.True(t, shouldCountCompletion(prior, ref, true))
}

func TestShouldCountCompletionDeduplicatesRepeats(t *testing.T) {
	// Resending completed=true for an already-completed item must not
	// bump articlesRead a second time.
	ref := model.ArticleRef{DocumentID: "doc1", NewsItemID: 7, HasItem: true}
	prior := &model.Interaction{
		NewsItems: []model.ItemInteraction{
			{NewsItemID: 7, Completed: true, InteractionDate: time.Now()},
		},
	}
	assert.False(t, shouldCountCompletion(prior, ref, true))
}

func TestShouldCountCompletionNotCompleted(t *testing.T) {
	ref := model.ArticleRef{DocumentID: "doc1", NewsItemID: 7, HasItem: true}
	assert.False(t, shouldCountCompletion(nil, ref, false))
}

func TestShouldCountCompletionTopLevel(t *testing.T) {
	// Plain (non-compound) recordings dedup on the top-level flag.
	ref := model.ArticleRef{DocumentID: "doc1"}

	assert.True(t, shouldCountCompletion(nil, ref, true))
	assert.True(t, shouldCountCompletion(&model.Interaction{Completed: false}, ref, true))
	assert.False(t, shouldCountCompletion(&model.Interaction{Completed: true}, ref, true))
}

func TestHistoryValidation(t *testing.T) {
	svc := &InteractionService{}
	_, err := svc.History(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
