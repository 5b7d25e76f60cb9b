package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth providers accepted by the auth endpoints. Email carries a local
// password hash; google and github users are created on first sign-in.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// ValidProvider reports whether p is one of the known auth providers.
func ValidProvider(p string) bool {
	return p == ProviderEmail || p == ProviderGoogle || p == ProviderGithub
}

type User struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email"`
	Name           string             `json:"name" bson:"name"`
	AuthProvider   string             `json:"authProvider" bson:"authProvider"`
	PasswordHash   string             `json:"-" bson:"passwordHash,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastLoginAt    time.Time          `json:"lastLoginAt" bson:"lastLoginAt"`
}

// CategoryEngagement is one bucket of the per-category engagement map.
// A missing bucket reads as {0, 0}; folds create it via $inc on the
// dotted categoryEngagement.<name> path.
type CategoryEngagement struct {
	TimeSpent    int64 `json:"timeSpent" bson:"timeSpent"`
	ArticlesRead int64 `json:"articlesRead" bson:"articlesRead"`
}

// DailyStat is one calendar-day bucket, keyed by "YYYY-MM-DD".
type DailyStat struct {
	Date         string `json:"date" bson:"date"`
	TimeSpent    int64  `json:"timeSpent" bson:"timeSpent"`
	ArticlesRead int64  `json:"articlesRead" bson:"articlesRead"`
}

// UserStats is the one-per-user engagement rollup. TotalTimeSpent and
// ArticlesRead are monotonically non-decreasing; they track completed
// interactions with eventual consistency only.
type UserStats struct {
	ID                 primitive.ObjectID            `json:"-" bson:"_id,omitempty"`
	UserID             string                        `json:"userId" bson:"userId"`
	TotalTimeSpent     int64                         `json:"totalTimeSpent" bson:"totalTimeSpent"`
	ArticlesRead       int64                         `json:"articlesRead" bson:"articlesRead"`
	CategoryEngagement map[string]CategoryEngagement `json:"categoryEngagement" bson:"categoryEngagement"`
	DailyStats         []DailyStat                   `json:"dailyStats" bson:"dailyStats"`
	LastActivity       time.Time                     `json:"lastActivity" bson:"lastActivity"`
}
