// Package publish upserts a catalog into a MongoDB collection, one
// document per language keyed by its code.
package publish

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/language"
)

// DefaultBatchSize is the number of upserts sent per bulk write.
const DefaultBatchSize = 1000

// Collection is the part of *mongo.Collection the publisher uses.
type Collection interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

// Result counts the outcome of a publish.
type Result struct {
	Matched  int64
	Modified int64
	Upserted int64
	Batches  int
}

// Publisher writes catalogs to a collection.
type Publisher struct {
	coll      Collection
	batchSize int
	logger    *log.Logger
}

// New creates a publisher over coll.
func New(coll Collection, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{coll: coll, batchSize: DefaultBatchSize, logger: logger}
}

// Connect opens a client for uri and returns a publisher for the given
// collection plus a function that disconnects the client.
func Connect(ctx context.Context, uri, database, collection string, logger *log.Logger) (*Publisher, func(context.Context) error, error) {
	if uri == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	coll := client.Database(database).Collection(collection)
	return New(coll, logger), client.Disconnect, nil
}

// Models returns one upsert per record, in code order.
func Models(c language.Catalog) []mongo.WriteModel {
	codes := c.Codes()
	models := make([]mongo.WriteModel, 0, len(codes))
	for _, code := range codes {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: code}}).
			SetReplacement(c[code]).
			SetUpsert(true))
	}
	return models
}

// Publish upserts every record of c. Batches are unordered, so one failing
// document does not stop the others in its batch.
func (p *Publisher) Publish(ctx context.Context, c language.Catalog) (Result, error) {
	var res Result
	models := Models(c)
	opts := options.BulkWrite().SetOrdered(false)

	for start := 0; start < len(models); start += p.batchSize {
		end := min(start+p.batchSize, len(models))
		r, err := p.coll.BulkWrite(ctx, models[start:end], opts)
		if r != nil {
			res.Matched += r.MatchedCount
			res.Modified += r.ModifiedCount
			res.Upserted += r.UpsertedCount
		}
		res.Batches++
		if err != nil {
			return res, fmt.Errorf("bulk write records %d-%d: %w", start, end, err)
		}
		p.logger.Debug("published batch", "from", start, "to", end)
	}
	p.logger.Info("published catalog",
		"records", len(models),
		"upserted", res.Upserted,
		"modified", res.Modified)
	return res, nil
}
