package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
)

func (db *Database) UpsertPosition(ctx context.Context, doc *model.PositionDocument) error {
	return db.upsert(ctx, model.PositionsCollection, doc.Account, doc)
}

func (db *Database) GetPositions(ctx context.Context) ([]*model.PositionDocument, error) {
	cursor, err := db.collection(model.PositionsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var positions []*model.PositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}
