package session

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	mongoconn "github.com/dmitrymomot/sportkit/pkg/mongo"
)

// MongoStore implements Store on MongoDB. Sessions are whole documents keyed
// by _id; Update replaces the document filtered on both _id and the expected
// revision, so the compare-and-swap is a single server-side operation.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed session store using the "sessions"
// collection of the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("sessions")}
}

// NewMongoStoreFromConfig connects to MongoDB, verifies connectivity, and
// returns a ready store backed by the named database.
func NewMongoStoreFromConfig(ctx context.Context, cfg mongoconn.Config, database string) (*MongoStore, error) {
	db, err := mongoconn.NewWithDatabase(ctx, cfg, database)
	if err != nil {
		return nil, err
	}
	if err := mongoconn.Healthcheck(db.Client())(ctx); err != nil {
		_ = db.Client().Disconnect(ctx)
		return nil, err
	}
	return NewMongoStore(db), nil
}

// Create stores a new session document.
func (m *MongoStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	if _, err := m.collection.InsertOne(ctx, sess); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Get retrieves a session document by id.
func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update replaces the document if the revision chain is intact.
func (m *MongoStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	res, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": sess.ID, "revision": sess.Revision - 1}, sess)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := m.collection.CountDocuments(ctx, bson.M{"_id": sess.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrRevisionMismatch
	}
	return nil
}

// All returns every stored session.
func (m *MongoStore) All(ctx context.Context) ([]*Session, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var out []*Session
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
