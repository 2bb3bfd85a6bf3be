package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const MongoCollectionName = "Documents"

// document is one whole collection, keyed by the collection name.
type document struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps every collection as a single document. Replacing one
// document is atomic on the server, which gives Put its all-or-nothing
// semantics. Collections are bounded by the 16MB document limit.
type MongoStore struct {
	client       *mongo.Client
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoStore(client *mongo.Client, databaseName string, readTimeout, writeTimeout time.Duration) *MongoStore {
	return &MongoStore{
		client:       client,
		collection:   client.Database(databaseName).Collection(MongoCollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout bounds a call by timeout or by the caller's deadline, whichever
// comes first.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStore) Get(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc document
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("read %s: %w", name, ErrMissing)
		}
		return nil, unavailable("read", name, err)
	}
	return doc.Data, nil
}

func (s *MongoStore) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := document{
		Name:      name,
		Data:      data,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, opts); err != nil {
		return unavailable("write", name, err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", "mongo", err)
	}
	return nil
}
