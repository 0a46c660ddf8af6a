package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collabhub/admin-console/state"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// stateDocument is the stored form of a session state.
type stateDocument struct {
	Key       string      `bson:"_id"`
	State     state.State `bson:"state"`
	UpdatedAt time.Time   `bson:"updatedAt"`
}

// Load returns the state stored for key, or state.ErrNotFound.
func (ms *MongoStorage) Load(ctx context.Context, key string) (state.State, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stateDocument
	if err := ms.states.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return state.State{}, state.ErrNotFound
		}
		return state.State{}, fmt.Errorf("failed to get state: %w", err)
	}
	return doc.State, nil
}

// Save upserts the state stored for key.
func (ms *MongoStorage) Save(ctx context.Context, key string, s state.State) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := stateDocument{Key: key, State: s, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := ms.states.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Delete removes the state stored for key.
func (ms *MongoStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := ms.states.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	if res.DeletedCount == 0 {
		return state.ErrNotFound
	}
	return nil
}

var _ state.Persister = (*MongoStorage)(nil)
