package listingRepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoListingRepo) Create(ctx context.Context, l *models.ServiceListing) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) Update(ctx context.Context, l *models.ServiceListing) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("failed to update listing with id %s: %w", l.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("listing %s: %w", l.ID, models.ErrNotFound)
	}
	return nil
}

func (r *MongoListingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("listing %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *MongoListingRepo) SetVerifiedForProfessional(ctx context.Context, professionalID string, verified bool) (int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	result, err := r.coll.UpdateMany(ctx,
		bson.M{"professionalId": professionalID},
		bson.M{"$set": bson.M{"verified": verified, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update listings of %s: %w", professionalID, err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoListingRepo) RenameProfessional(ctx context.Context, professionalID, name string) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"professionalId": professionalID},
		bson.M{"$set": bson.M{"professionalName": name}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename professional on listings of %s: %w", professionalID, err)
	}
	return nil
}

func (r *MongoListingRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"professionalId": professionalID}); err != nil {
		return fmt.Errorf("failed to delete listings of %s: %w", professionalID, err)
	}
	return nil
}
