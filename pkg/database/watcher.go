package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FieldChange is one observed write to a watched collection, reduced to
// the before/after values of a single string field. Before is empty for
// inserts or when the field was absent; After is empty for deletes.
type FieldChange struct {
	Key    string
	Before string
	After  string
}

// FieldChangeHandler processes one change. Errors are reported to the
// watcher's caller via the handler itself; the stream keeps going.
type FieldChangeHandler func(ctx context.Context, change FieldChange) error

// FieldWatcher subscribes to writes on one collection and extracts the
// before/after values of a single field, using a change stream with
// full-document lookups. The collection must live on a replica set for
// change streams to be available, and pre-images must be enabled on it
// for Before to be populated on updates.
type FieldWatcher struct {
	collection *mongo.Collection
	field      string
	onError    func(error)
}

func NewFieldWatcher(collection *mongo.Collection, field string, onError func(error)) *FieldWatcher {
	if onError == nil {
		onError = func(error) {}
	}
	return &FieldWatcher{
		collection: collection,
		field:      field,
		onError:    onError,
	}
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument             bson.M `bson:"fullDocument"`
	FullDocumentBeforeChange bson.M `bson:"fullDocumentBeforeChange"`
}

// Watch blocks consuming the change stream until ctx is cancelled or the
// stream fails. Handler errors do not stop the stream; they are passed
// to onError and the next event is processed.
func (w *FieldWatcher) Watch(ctx context.Context, handle FieldChangeHandler) error {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := w.collection.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("failed to open change stream on %s: %w", w.collection.Name(), err)
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event changeEvent
		if err := stream.Decode(&event); err != nil {
			w.onError(fmt.Errorf("failed to decode change event: %w", err))
			continue
		}

		change := FieldChange{
			Key:    keyString(event.DocumentKey.ID),
			Before: stringField(event.FullDocumentBeforeChange, w.field),
			After:  stringField(event.FullDocument, w.field),
		}

		if err := handle(ctx, change); err != nil {
			w.onError(err)
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("change stream on %s failed: %w", w.collection.Name(), err)
	}

	return ctx.Err()
}

func keyString(id interface{}) string {
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", id)
}

func stringField(doc bson.M, field string) string {
	if doc == nil {
		return ""
	}
	if s, ok := doc[field].(string); ok {
		return s
	}
	return ""
}
