package server

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/errors"
)

const boardCollection = "boards"

// MongoStore persists boards in a MongoDB collection. Boards are stored as
// BSON documents keyed by their ID (_id).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(boardCollection),
	}, nil
}

// Get returns the board with the given ID.
func (s *MongoStore) Get(ctx context.Context, id string) (board.Board, error) {
	var b board.Board
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return board.Board{}, errors.New(errors.ErrCodeBoardNotFound, "no board %q", id)
	}
	if err != nil {
		return board.Board{}, errors.Wrap(errors.ErrCodeInternal, err, "load board %q", id)
	}
	return b, nil
}

// Put creates or replaces a board.
func (s *MongoStore) Put(ctx context.Context, b board.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store board %q", b.ID)
	}
	return nil
}

// Delete removes a board.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete board %q", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeBoardNotFound, "no board %q", id)
	}
	return nil
}

// List returns all boards sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]board.Board, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list boards")
	}
	defer cur.Close(ctx)

	var out []board.Board
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode boards")
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ BoardStore = (*MongoStore)(nil)
