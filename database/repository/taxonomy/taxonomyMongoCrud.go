package taxonomyRepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func insert(ctx context.Context, coll *mongo.Collection, doc any, slug string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug %q already used by a sibling: %w", slug, models.ErrConflict)
		}
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug already used by a sibling: %w", models.ErrConflict)
		}
		return fmt.Errorf("failed to update %s %s: %w", coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", coll.Name(), id, models.ErrNotFound)
	}
	return nil
}

func remove(ctx context.Context, coll *mongo.Collection, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", coll.Name(), id, models.ErrNotFound)
	}
	return nil
}

func (r *MongoTaxonomyRepo) CreateSector(ctx context.Context, s *models.Sector) error {
	return insert(ctx, r.sectors, s, s.Slug)
}

func (r *MongoTaxonomyRepo) CreateCategory(ctx context.Context, c *models.ServiceCategory) error {
	return insert(ctx, r.categories, c, c.Slug)
}

func (r *MongoTaxonomyRepo) CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	return insert(ctx, r.subCategories, sc, sc.Slug)
}

func (r *MongoTaxonomyRepo) UpdateSector(ctx context.Context, s *models.Sector) error {
	return replace(ctx, r.sectors, s.ID, s)
}

func (r *MongoTaxonomyRepo) UpdateCategory(ctx context.Context, c *models.ServiceCategory) error {
	return replace(ctx, r.categories, c.ID, c)
}

func (r *MongoTaxonomyRepo) UpdateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	return replace(ctx, r.subCategories, sc.ID, sc)
}

func (r *MongoTaxonomyRepo) DeleteSector(ctx context.Context, id string) error {
	return remove(ctx, r.sectors, id)
}

func (r *MongoTaxonomyRepo) DeleteCategory(ctx context.Context, id string) error {
	return remove(ctx, r.categories, id)
}

func (r *MongoTaxonomyRepo) DeleteSubCategory(ctx context.Context, id string) error {
	return remove(ctx, r.subCategories, id)
}
