package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
)

func (db *Database) SaveEvents(ctx context.Context, events []*model.EventDocument) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]any, len(events))
	for i, ev := range events {
		docs[i] = ev
	}

	_, err := db.collection(model.EventsCollection).InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Key:     events[0].ID,
				Message: "event already exists",
			}
		}
		return err
	}

	return nil
}

func (db *Database) GetEvents(ctx context.Context, filter EventFilter) ([]*model.EventDocument, error) {
	query := bson.M{}
	if filter.Account != "" {
		query["participants"] = filter.Account
	}
	if filter.Source != "" {
		query["source"] = filter.Source
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	limit := filter.Limit
	if limit <= 0 || limit > db.maxEventsLimit {
		limit = db.maxEventsLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sequence", Value: -1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.EventsCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.EventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (db *Database) GetLastEventSequence(ctx context.Context) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "sequence", Value: -1}})

	var doc model.EventDocument
	err := db.collection(model.EventsCollection).FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	return doc.Sequence, nil
}
