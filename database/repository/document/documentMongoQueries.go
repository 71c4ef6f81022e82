package documentRepo

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

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new instance of DocumentRepository using MongoDB.
func NewMongoDocumentRepo(db *mongo.Database) DocumentRepository {
	repo := &MongoDocumentRepo{coll: db.Collection("verification_documents")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("document repository: index creation failed", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoDocumentRepo) GetByID(ctx context.Context, id string) (*models.VerificationDocument, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc models.VerificationDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("document %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch document with id %s: %w", id, err)
	}
	return &doc, nil
}

func (r *MongoDocumentRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.VerificationDocument, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"professionalId": professionalID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents of %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	out := []models.VerificationDocument{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return out, nil
}

func (r *MongoDocumentRepo) List(ctx context.Context, status string, page, pageSize int) ([]models.VerificationDocument, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(models.Skip(page, pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.VerificationDocument
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("failed to decode documents: %w", err)
	}
	return out, total, nil
}
