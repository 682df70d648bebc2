package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
)

func (db *Database) UpsertBalance(ctx context.Context, doc *model.BalanceDocument) error {
	return db.upsert(ctx, model.BalancesCollection, doc.ID, doc)
}

func (db *Database) UpsertAllowance(ctx context.Context, doc *model.AllowanceDocument) error {
	return db.upsert(ctx, model.AllowancesCollection, doc.ID, doc)
}

func (db *Database) UpsertSupply(ctx context.Context, doc *model.SupplyDocument) error {
	return db.upsert(ctx, model.SupplyCollection, doc.Token, doc)
}

func (db *Database) GetLedgerState(ctx context.Context, token string) (*model.LedgerState, error) {
	var supply model.SupplyDocument
	err := db.collection(model.SupplyCollection).FindOne(ctx, bson.M{"_id": token}).Decode(&supply)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     token,
				Message: "ledger state not found",
			}
		}
		return nil, err
	}

	state := &model.LedgerState{Supply: &supply}

	cursor, err := db.collection(model.BalancesCollection).Find(ctx, bson.M{"token": token})
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &state.Balances); err != nil {
		return nil, err
	}

	cursor, err = db.collection(model.AllowancesCollection).Find(ctx, bson.M{"token": token})
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &state.Allowances); err != nil {
		return nil, err
	}

	return state, nil
}

func (db *Database) upsert(ctx context.Context, collection string, id string, doc any) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": doc}

	_, err := db.collection(collection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
