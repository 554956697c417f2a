package driver

import (
	"fmt"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils/typeutils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildFindFilter translates the stored bookmark into the range filter for
// the next pass: cursor field >= bookmarked value. A fresh stream gets the
// unconstrained filter. A bookmark that cannot be decoded is fatal here,
// since silently ignoring it would produce an incorrect range.
func buildFindFilter(state *types.State, streamID, cursorField string) (bson.M, error) {
	value, typeName, found := state.Cursor(streamID)
	if !found {
		return bson.M{}, nil
	}

	decoded, err := typeutils.DecodeCursor(value, typeName)
	if err != nil {
		return nil, fmt.Errorf("corrupted bookmark for stream[%s]: %s", streamID, err)
	}

	return bson.M{cursorField: bson.M{"$gte": decoded}}, nil
}

// findOptions pairs every incremental query with an ascending sort on the
// cursor field, so partial-progress bookmarking stays valid
func findOptions(stream *types.ConfiguredStream, batchSize int) *options.FindOptions {
	opts := options.Find().
		SetSort(bson.D{{Key: stream.Cursor(), Value: 1}}).
		SetBatchSize(int32(batchSize))

	if len(stream.Projection) > 0 {
		opts.SetProjection(stream.Projection)
	}

	return opts
}
