package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lahtis/glfm/pkg/language"
)

type fakeCollection struct {
	batches [][]mongo.WriteModel
	ordered []bool
	fail    bool
}

func (f *fakeCollection) BulkWrite(_ context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	f.batches = append(f.batches, models)
	for _, o := range opts {
		if o.Ordered != nil {
			f.ordered = append(f.ordered, *o.Ordered)
		}
	}
	if f.fail {
		return nil, errors.New("write failed")
	}
	return &mongo.BulkWriteResult{UpsertedCount: int64(len(models))}, nil
}

func catalog(n int) language.Catalog {
	c := language.Catalog{}
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("c%03d", i)
		c[code] = &language.Record{ID: code}
	}
	return c
}

func quiet() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func TestModels(t *testing.T) {
	models := Models(catalog(3))
	require.Len(t, models, 3)

	m, ok := models[0].(*mongo.ReplaceOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "_id", Value: "c000"}}, m.Filter)
	require.NotNil(t, m.Upsert)
	assert.True(t, *m.Upsert)
}

func TestPublishBatches(t *testing.T) {
	coll := &fakeCollection{}
	p := New(coll, quiet())
	p.batchSize = 2

	res, err := p.Publish(context.Background(), catalog(5))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Batches)
	assert.Equal(t, int64(5), res.Upserted)
	assert.Len(t, coll.batches[2], 1)
	assert.Equal(t, []bool{false, false, false}, coll.ordered)
}

func TestPublishError(t *testing.T) {
	p := New(&fakeCollection{fail: true}, quiet())
	_, err := p.Publish(context.Background(), catalog(1))
	assert.Error(t, err)
}

func TestConnectRequiresURI(t *testing.T) {
	_, _, err := Connect(context.Background(), "", "glfm", "languages", quiet())
	assert.Error(t, err)
}
