package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArticleRefPlain(t *testing.T) {
	ref, err := ParseArticleRef("6613f2ab01", "")
	assert.NoError(t, err)
	assert.Equal(t, "6613f2ab01", ref.DocumentID)
	assert.False(t, ref.HasItem)
}

func TestParseArticleRefPlainWithExplicitItem(t *testing.T) {
	ref, err := ParseArticleRef("6613f2ab01", "4")
	assert.NoError(t, err)
	assert.Equal(t, "6613f2ab01", ref.DocumentID)
	assert.True(t, ref.HasItem)
	assert.Equal(t, 4, ref.NewsItemID)
}

func TestParseArticleRefCompound(t *testing.T) {
	ref, err := ParseArticleRef("6613f2ab01_7", "")
	assert.NoError(t, err)
	assert.Equal(t, "6613f2ab01", ref.DocumentID)
	assert.True(t, ref.HasItem)
	assert.Equal(t, 7, ref.NewsItemID)
}

func TestParseArticleRefExplicitItemWins(t *testing.T) {
	// The explicit newsItemId is authoritative over the compound suffix.
	ref, err := ParseArticleRef("6613f2ab01_7", "12")
	assert.NoError(t, err)
	assert.Equal(t, "6613f2ab01", ref.DocumentID)
	assert.Equal(t, 12, ref.NewsItemID)
}

func TestParseArticleRefSplitsOnFirstUnderscore(t *testing.T) {
	ref, err := ParseArticleRef("doc_1_2", "5")
	assert.NoError(t, err)
	assert.Equal(t, "doc", ref.DocumentID)
	assert.Equal(t, 5, ref.NewsItemID)
}

func TestParseArticleRefRejectsNonNumericItem(t *testing.T) {
	_, err := ParseArticleRef("doc1", "abc")
	assert.Error(t, err)

	_, err = ParseArticleRef("doc1_xyz", "")
	assert.Error(t, err)

	// A multi-underscore suffix is not numeric either when no explicit
	// item id was sent.
	_, err = ParseArticleRef("doc_1_2", "")
	assert.Error(t, err)
}

func TestParseArticleRefRejectsEmpty(t *testing.T) {
	_, err := ParseArticleRef("", "")
	assert.Error(t, err)

	_, err = ParseArticleRef("_7", "")
	assert.Error(t, err)
}

func TestInteractionItemLookup(t *testing.T) {
	in := Interaction{
		NewsItems: []ItemInteraction{
			{NewsItemID: 1, TimeSpent: 30},
			{NewsItemID: 2, TimeSpent: 60},
		},
	}

	item := in.Item(2)
	assert.NotNil(t, item)
	assert.Equal(t, int64(60), item.TimeSpent)
	assert.Nil(t, in.Item(99))
}
