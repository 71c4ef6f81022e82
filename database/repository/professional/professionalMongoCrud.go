package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new professional document.
func (r *MongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("professional for user %s: %w", p.UserID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

// Update modifies an existing professional document.
func (r *MongoProfessionalRepo) Update(ctx context.Context, p *models.Professional) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update professional with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("professional %s: %w", p.ID, models.ErrNotFound)
	}
	return nil
}

// SetVerification updates the verification fields only.
func (r *MongoProfessionalRepo) SetVerification(ctx context.Context, id, status string, verified bool) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"verificationStatus": status,
		"verified":           verified,
		"updatedAt":          time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update verification of professional %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("professional %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteByUserID removes the profile of userID; a missing profile is not an error.
func (r *MongoProfessionalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete professional of user %s: %w", userID, err)
	}
	return nil
}
