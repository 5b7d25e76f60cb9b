package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"digest-service/auth"
	"digest-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns user records and session tokens. OAuth users are
// created lazily on first sign-in; email users register with a password.
type AuthService struct {
	db     *mongo.Database
	tokens *auth.JWTManager
}

func NewAuthService(db *mongo.Database, tokens *auth.JWTManager) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

func (s *AuthService) users() *mongo.Collection {
	return s.db.Collection("users")
}

// Register creates an email-provider user with a bcrypt password hash and
// issues a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	existing := s.users().FindOne(ctx, bson.M{"email": email, "authProvider": model.ProviderEmail})
	if existing.Err() == nil {
		return nil, "", fmt.Errorf("%w: user %s", ErrDuplicate, email)
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return nil, "", existing.Err()
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := model.User{
		Email:        email,
		Name:         name,
		AuthProvider: model.ProviderEmail,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	result, err := s.users().InsertOne(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[INFO] Registered user %s", email)
	return &user, token, nil
}

// Login verifies an email user's password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	var user model.User
	err := s.users().FindOne(ctx, bson.M{"email": email, "authProvider": model.ProviderEmail}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: account deactivated", ErrUnauthorized)
	}
	if !verifyPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	now := time.Now()
	_, err = s.users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"lastLoginAt": now}})
	if err != nil {
		log.Printf("[WARN] Failed to update lastLoginAt for %s: %v", email, err)
	}
	user.LastLoginAt = now

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// OAuthSignIn finds or creates a google/github user and issues a session
// token. The provider handshake itself happens in the frontend; this
// endpoint only trusts its verified profile payload.
func (s *AuthService) OAuthSignIn(ctx context.Context, provider, email, name, picture string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !model.ValidProvider(provider) || provider == model.ProviderEmail {
		return nil, "", fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, provider)
	}

	now := time.Now()
	filter := bson.M{"email": email, "authProvider": provider}
	update := bson.M{
		"$set": bson.M{
			"name":           name,
			"profilePicture": picture,
			"lastLoginAt":    now,
		},
		"$setOnInsert": bson.M{
			"email":        email,
			"authProvider": provider,
			"isActive":     true,
			"createdAt":    now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user model.User
	if err := s.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: account deactivated", ErrUnauthorized)
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetByID fetches one user by its hex id.
func (s *AuthService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrInvalidInput)
	}

	var user model.User
	err = s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate soft-deletes a user. The record and its stats stay behind.
func (s *AuthService) Deactivate(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrInvalidInput)
	}

	result, err := s.users().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}

// Delete hard-deletes a user along with its stats and interactions.
func (s *AuthService) Delete(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrInvalidInput)
	}

	result, err := s.users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	// Best effort: a partial cleanup leaves orphaned stats, not broken
	// users, and both deletes are retried on the next hard delete.
	if _, err := s.db.Collection("user_stats").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Printf("[WARN] Failed to delete stats for user %s: %v", userID, err)
	}
	if _, err := s.db.Collection("user_article_interactions").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Printf("[WARN] Failed to delete interactions for user %s: %v", userID, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
