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
)

func (r *MongoDocumentRepo) Create(ctx context.Context, doc *models.VerificationDocument) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *MongoDocumentRepo) Decide(ctx context.Context, id string, d Decision) (*models.VerificationDocument, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": d.Status, "reviewerId": d.ReviewerID, "reviewedAt": d.At}
	if d.Reason != "" {
		set["rejectionReason"] = d.Reason
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc models.VerificationDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "status": models.DocPending}, bson.M{"$set": set}, opts).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to record decision on document %s: %w", id, err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to look up document %s: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("document %s: %w", id, models.ErrNotFound)
	}
	return nil, fmt.Errorf("document %s already reviewed: %w", id, models.ErrConflict)
}

func (r *MongoDocumentRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"professionalId": professionalID}); err != nil {
		return fmt.Errorf("failed to delete documents of %s: %w", professionalID, err)
	}
	return nil
}
