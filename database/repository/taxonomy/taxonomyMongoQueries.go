package taxonomyRepo

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

// MongoTaxonomyRepo implements TaxonomyRepository using three MongoDB collections.
type MongoTaxonomyRepo struct {
	sectors       *mongo.Collection
	categories    *mongo.Collection
	subCategories *mongo.Collection
}

// NewMongoTaxonomyRepo creates a new instance of TaxonomyRepository using MongoDB.
func NewMongoTaxonomyRepo(db *mongo.Database) TaxonomyRepository {
	repo := &MongoTaxonomyRepo{
		sectors:       db.Collection("sectors"),
		categories:    db.Collection("service_categories"),
		subCategories: db.Collection("service_subcategories"),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("taxonomy repository: index creation failed", zap.Error(err))
	}
	return repo
}

// newContext derives a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

var siblingOrder = bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}

// findAll decodes every document matching filter in sibling order.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(siblingOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// findByID decodes the document with the given id.
func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc T
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", coll.Name(), id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch %s %s: %w", coll.Name(), id, err)
	}
	return &doc, nil
}

func (r *MongoTaxonomyRepo) Sectors(ctx context.Context) ([]models.Sector, error) {
	return findAll[models.Sector](ctx, r.sectors, bson.M{})
}

func (r *MongoTaxonomyRepo) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	return findAll[models.ServiceCategory](ctx, r.categories, bson.M{"sectorId": sectorID})
}

func (r *MongoTaxonomyRepo) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	return findAll[models.ServiceSubCategory](ctx, r.subCategories, bson.M{"categoryId": categoryID})
}

func (r *MongoTaxonomyRepo) GetSector(ctx context.Context, id string) (*models.Sector, error) {
	return findByID[models.Sector](ctx, r.sectors, id)
}

func (r *MongoTaxonomyRepo) GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error) {
	return findByID[models.ServiceCategory](ctx, r.categories, id)
}

func (r *MongoTaxonomyRepo) GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error) {
	return findByID[models.ServiceSubCategory](ctx, r.subCategories, id)
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll.Name(), err)
	}
	return n, nil
}

func (r *MongoTaxonomyRepo) CountCategories(ctx context.Context, sectorID string) (int64, error) {
	return count(ctx, r.categories, bson.M{"sectorId": sectorID})
}

func (r *MongoTaxonomyRepo) CountSubCategories(ctx context.Context, categoryID string) (int64, error) {
	return count(ctx, r.subCategories, bson.M{"categoryId": categoryID})
}

func (r *MongoTaxonomyRepo) CountChildren(ctx context.Context, parentID string) (int64, error) {
	return count(ctx, r.subCategories, bson.M{"parentId": parentID})
}
