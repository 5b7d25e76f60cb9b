package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentEditionKeyEveningHours(t *testing.T) {
	for hour := 18; hour < 24; hour++ {
		now := time.Date(2025, 3, 15, hour, 30, 0, 0, time.Local)
		assert.Equal(t, "2025-03-15_18:00", CurrentEditionKey(now), "hour %d", hour)
	}
}

func TestCurrentEditionKeyDaytimeHours(t *testing.T) {
	for hour := 6; hour < 18; hour++ {
		now := time.Date(2025, 3, 15, hour, 30, 0, 0, time.Local)
		assert.Equal(t, "2025-03-15_06:00", CurrentEditionKey(now), "hour %d", hour)
	}
}

func TestCurrentEditionKeyOvernightHours(t *testing.T) {
	// Overnight belongs to the prior evening edition.
	for hour := 0; hour < 6; hour++ {
		now := time.Date(2025, 3, 15, hour, 30, 0, 0, time.Local)
		assert.Equal(t, "2025-03-14_18:00", CurrentEditionKey(now), "hour %d", hour)
	}
}

func TestCurrentEditionKeyExactBoundaries(t *testing.T) {
	// Ties resolve to the edition starting at the boundary.
	morning := time.Date(2025, 3, 15, 6, 0, 0, 0, time.Local)
	assert.Equal(t, "2025-03-15_06:00", CurrentEditionKey(morning))

	evening := time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local)
	assert.Equal(t, "2025-03-15_18:00", CurrentEditionKey(evening))

	midnight := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2025-03-14_18:00", CurrentEditionKey(midnight))
}

func TestCurrentEditionKeyCrossesMonthAndYear(t *testing.T) {
	newYear := time.Date(2025, 1, 1, 2, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-12-31_18:00", CurrentEditionKey(newYear))

	firstOfMonth := time.Date(2025, 3, 1, 5, 59, 59, 0, time.Local)
	assert.Equal(t, "2025-02-28_18:00", CurrentEditionKey(firstOfMonth))
}

func TestCurrentEditionKeyIsPure(t *testing.T) {
	now := time.Date(2025, 7, 4, 12, 15, 42, 0, time.Local)
	assert.Equal(t, CurrentEditionKey(now), CurrentEditionKey(now))
}

func TestCurrentEditionKeyFormat(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2025, 3, 15, hour, 0, 0, 0, time.Local)
		key := CurrentEditionKey(now)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}_(06|18):00$`, key, fmt.Sprintf("hour %d", hour))
	}
}

func TestWindowStart(t *testing.T) {
	evening := time.Date(2025, 3, 15, 22, 10, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local), WindowStart(evening))

	daytime := time.Date(2025, 3, 15, 6, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 3, 15, 6, 0, 0, 0, time.Local), WindowStart(daytime))

	overnight := time.Date(2025, 3, 15, 3, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 3, 14, 18, 0, 0, 0, time.Local), WindowStart(overnight))
}

func TestWindowStartMatchesEditionKey(t *testing.T) {
	// The window start instant always belongs to the edition the resolver
	// picks for the same moment.
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2025, 3, 15, hour, 45, 0, 0, time.Local)
		start := WindowStart(now)
		assert.Equal(t, CurrentEditionKey(now), CurrentEditionKey(start), "hour %d", hour)
		assert.False(t, start.After(now), "hour %d", hour)
	}
}
