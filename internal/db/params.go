package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
)

func (db *Database) UpsertStakingParams(ctx context.Context, doc *model.StakingParamsDocument) error {
	doc.ID = model.StakingParamsID
	return db.upsert(ctx, model.StakingParamsCollection, doc.ID, doc)
}

func (db *Database) GetStakingParams(ctx context.Context) (*model.StakingParamsDocument, error) {
	filter := bson.M{"_id": model.StakingParamsID}
	res := db.collection(model.StakingParamsCollection).FindOne(ctx, filter)

	var doc model.StakingParamsDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.StakingParamsID,
				Message: "staking params not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}
