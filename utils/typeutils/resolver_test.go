package typeutils

import (
	"testing"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTypeFromValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected types.DataType
	}{
		{name: "nil", value: nil, expected: types.Null},
		{name: "bool", value: true, expected: types.Bool},
		{name: "int32", value: int32(1), expected: types.Int64},
		{name: "int64", value: int64(1), expected: types.Int64},
		{name: "float", value: 1.5, expected: types.Float64},
		{name: "string", value: "x", expected: types.String},
		{name: "time", value: time.Now(), expected: types.Timestamp},
		{name: "bson datetime", value: primitive.NewDateTimeFromTime(time.Now()), expected: types.Timestamp},
		{name: "objectid", value: primitive.NewObjectID(), expected: types.String},
		{name: "array", value: primitive.A{1, 2}, expected: types.Array},
		{name: "document", value: primitive.M{"a": 1}, expected: types.Object},
		{name: "plain map", value: map[string]any{"a": 1}, expected: types.Object},
		{name: "nil typed pointer", value: (*int64)(nil), expected: types.Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeFromValue(tt.value))
		})
	}
}

func TestMergeRecordSchema(t *testing.T) {
	schema := types.NewSchema()

	changed := MergeRecordSchema(schema, types.Record{"_id": "abc", "count": int64(1)})
	require.True(t, changed, "first record should introduce new fields")
	assert.Equal(t, 2, schema.Len())
	assert.Equal(t, []types.DataType{types.Null, types.Int64}, schema.Properties["count"].Type)

	// same shape again: no change
	changed = MergeRecordSchema(schema, types.Record{"_id": "def", "count": int64(2)})
	assert.False(t, changed)

	// known field with a different value type is NOT a schema change
	changed = MergeRecordSchema(schema, types.Record{"_id": "ghi", "count": "three"})
	assert.False(t, changed)
	assert.Equal(t, []types.DataType{types.Null, types.Int64}, schema.Properties["count"].Type)

	// a new field name is
	changed = MergeRecordSchema(schema, types.Record{"_id": "jkl", "deleted": nil})
	require.True(t, changed)
	assert.Equal(t, []types.DataType{types.Null}, schema.Properties["deleted"].Type)
	assert.Equal(t, 3, schema.Len())
}
