package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/migrations/mongo/validators"
	"staybook/pkg/config"
	"staybook/pkg/logger"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "startDate", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{
			{Key: "listingId", Value: 1},
			{Key: "startDate", Value: -1},
		}},
	}

	ListingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "address.market", Value: 1}}},
		{Keys: bson.D{
			{Key: "property_type", Value: 1},
			{Key: "bedrooms", Value: 1},
		}},
	}
)

// Collection describes one managed collection. A nil Validator leaves the
// collection's schema alone; the listings data set is owned elsewhere.
type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections(cfg *config.Config) []Collection {
	return []Collection{
		{
			Name:      cfg.BookingsCollection,
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		{
			Name:    cfg.ListingsCollection,
			Indexes: ListingsIndexes,
		},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	log := cfg.Log
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections(cfg) {
		if def.Validator != nil {
			if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
				return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
			}
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
