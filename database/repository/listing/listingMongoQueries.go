package listingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a new instance of ListingRepository using MongoDB.
func NewMongoListingRepo(db *mongo.Database) ListingRepository {
	repo := &MongoListingRepo{coll: db.Collection("service_listings")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("listing repository: index creation failed", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.ServiceListing, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var l models.ServiceListing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("listing %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &l, nil
}

func (r *MongoListingRepo) ListByProfessional(ctx context.Context, professionalID string, page, pageSize int) ([]models.ServiceListing, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": professionalID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(models.Skip(page, pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings of %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var out []models.ServiceListing
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return out, total, nil
}

func (r *MongoListingRepo) Published(ctx context.Context) ([]models.ServiceListing, error) {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"status": models.ListingPublished})
	if err != nil {
		return nil, fmt.Errorf("failed to query published listings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.ServiceListing{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode published listings: %w", err)
	}
	return out, nil
}

func (r *MongoListingRepo) CountByTaxonomy(ctx context.Context, field, id string) (int64, error) {
	switch field {
	case FieldSector, FieldCategory, FieldSubCategory:
	default:
		return 0, fmt.Errorf("unknown taxonomy field %q: %w", field, models.ErrInvalidInput)
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{field: id})
	if err != nil {
		return 0, fmt.Errorf("failed to count listings by %s: %w", field, err)
	}
	return n, nil
}
