package taxonomyRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the id and slug indexes of the three taxonomy collections.
// Category slugs are unique within a sector; subcategory slugs within a category at any depth.
func (r *MongoTaxonomyRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	byOrder := bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}

	plan := map[*mongo.Collection][]mongo.IndexModel{
		r.sectors: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: byOrder},
		},
		r.categories: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "sectorId", Value: 1}, {Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "sectorId", Value: 1}, {Key: "sortOrder", Value: 1}}},
		},
		r.subCategories: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "parentId", Value: 1}}},
		},
	}
	for coll, idx := range plan {
		if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}
