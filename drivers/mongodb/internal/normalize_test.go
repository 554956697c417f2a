package driver

import (
	"math"
	"testing"
	"time"

	"github.com/datazip-inc/tap-mongodb/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// compile-time check that the driver fits the protocol surface
var _ protocol.Driver = &Mongo{}

func TestNormalizeDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	decimal, err := primitive.ParseDecimal128("12.345")
	require.NoError(t, err)

	record := normalizeDocument(bson.M{
		"_id":     oid,
		"at":      primitive.NewDateTimeFromTime(now),
		"ts":      primitive.Timestamp{T: uint32(now.Unix()), I: 1},
		"price":   decimal,
		"blob":    primitive.Binary{Data: []byte("hi")},
		"tags":    primitive.A{"a", primitive.NewDateTimeFromTime(now)},
		"nested":  bson.M{"inner": oid},
		"ordered": bson.D{{Key: "k", Value: int32(1)}},
		"nan":     math.NaN(),
		"plain":   int64(7),
	})

	assert.Equal(t, oid.Hex(), record["_id"])
	assert.Equal(t, now, record["at"])
	assert.Equal(t, now, record["ts"])
	assert.Equal(t, "12.345", record["price"])
	assert.Equal(t, "aGk=", record["blob"])
	assert.Equal(t, []any{"a", now}, record["tags"])
	assert.Equal(t, map[string]any{"inner": oid.Hex()}, record["nested"])
	assert.Equal(t, map[string]any{"k": int32(1)}, record["ordered"])
	assert.Nil(t, record["nan"], "NaN is not representable in JSON")
	assert.Equal(t, int64(7), record["plain"])
}

func TestMergeStreamSchema_TracksCursorCandidates(t *testing.T) {
	stream := newTestStream().Stream

	mergeStreamSchema(stream, normalizeDocument(bson.M{"_id": primitive.NewObjectID(), "updated_at": int64(1)}))
	mergeStreamSchema(stream, normalizeDocument(bson.M{"_id": primitive.NewObjectID(), "name": "x"}))

	assert.True(t, stream.AvailableCursorFields.Exists("updated_at"))
	assert.True(t, stream.AvailableCursorFields.Exists("name"))
	assert.True(t, stream.Schema.HasProperty("_id"))
	assert.Equal(t, 3, stream.Schema.Len())
}
