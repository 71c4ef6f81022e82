package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo creates a new instance of ProfessionalRepository using MongoDB.
func NewMongoProfessionalRepo(db *mongo.Database) ProfessionalRepository {
	repo := &MongoProfessionalRepo{coll: db.Collection("professionals")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("professional repository: index creation failed", zap.Error(err))
	}
	return repo
}

// newContext derives a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoProfessionalRepo) findOne(ctx context.Context, filter bson.M, label string) (*models.Professional, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("professional %s: %w", label, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch professional %s: %w", label, err)
	}
	return &p, nil
}

// GetByID retrieves a professional by its unique ID.
func (r *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"id": id}, id)
}

// GetByUserID retrieves the professional owned by userID.
func (r *MongoProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"userId": userID}, "for user "+userID)
}
