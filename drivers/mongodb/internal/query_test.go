package driver

import (
	"testing"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFindFilter_FreshStream(t *testing.T) {
	filter, err := buildFindFilter(types.NewState(), "app.users", "updated_at")
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, filter, "no bookmark should produce the unconstrained filter")
}

func TestBuildFindFilter_FromBookmark(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name     string
		value    string
		typeName string
		expected any
	}{
		{name: "int bookmark", value: "42", typeName: "int", expected: int64(42)},
		{name: "objectid bookmark", value: oid.Hex(), typeName: "ObjectId", expected: oid},
		{name: "string bookmark", value: "abc", typeName: "str", expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := types.NewState()
			state.SetCursor("app.users", tt.value, tt.typeName)

			filter, err := buildFindFilter(state, "app.users", "updated_at")
			require.NoError(t, err)
			assert.Equal(t, bson.M{"updated_at": bson.M{"$gte": tt.expected}}, filter)
		})
	}
}

func TestBuildFindFilter_CorruptedBookmark(t *testing.T) {
	state := types.NewState()
	state.SetCursor("app.users", "zzzz", "ObjectId")

	_, err := buildFindFilter(state, "app.users", "updated_at")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted bookmark")
}

func TestFindOptions(t *testing.T) {
	stream := &types.ConfiguredStream{
		Stream:      types.NewStream("users", "app"),
		CursorField: "updated_at",
	}

	opts := findOptions(stream, 500)
	assert.Equal(t, bson.D{{Key: "updated_at", Value: 1}}, opts.Sort, "incremental queries must sort ascending on the cursor")
	require.NotNil(t, opts.BatchSize)
	assert.Equal(t, int32(500), *opts.BatchSize)
	assert.Nil(t, opts.Projection, "no projection unless configured")

	stream.Projection = map[string]int{"name": 1, "updated_at": 1}
	opts = findOptions(stream, 500)
	assert.Equal(t, stream.Projection, opts.Projection)
}
