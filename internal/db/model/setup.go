package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spritzen-labs/simply-staking/internal/config"
)

const (
	EventsCollection        = "events"
	BalancesCollection      = "balances"
	AllowancesCollection    = "allowances"
	SupplyCollection        = "supply"
	PositionsCollection     = "positions"
	StakingParamsCollection = "staking_params"
)

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	EventsCollection: {
		{Keys: bson.D{{Key: "sequence", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "sequence", Value: -1}}},
	},
	BalancesCollection:      {{Keys: bson.D{{Key: "token", Value: 1}}}},
	AllowancesCollection:    {{Keys: bson.D{{Key: "token", Value: 1}}}},
	SupplyCollection:        {},
	PositionsCollection:     {},
	StakingParamsCollection: {},
}

// Setup creates the collections and indexes used by the service.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	for collection, indexes := range collections {
		createCollection(ctx, database, collection)
		for _, idx := range indexes {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	// an error here means the collection already exists
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("collection", collectionName).Msg("Collection maybe already exists")
		return
	}

	log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection created successfully")
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Keys) == 0 {
		return nil
	}

	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Index created successfully")
	return nil
}
