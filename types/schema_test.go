package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_AddPropertyByNameOnly(t *testing.T) {
	schema := NewSchema()
	assert.Equal(t, 0, schema.Len())

	schema.AddProperty("id", Null, Int64)
	require.True(t, schema.HasProperty("id"))
	assert.Equal(t, []DataType{Null, Int64}, schema.Properties["id"].Type)

	// a known name re-added with a different type leaves the property untouched
	schema.AddProperty("id", Null, String)
	assert.Equal(t, []DataType{Null, Int64}, schema.Properties["id"].Type)
	assert.Equal(t, 1, schema.Len())
}

func TestSchema_MarshalShape(t *testing.T) {
	schema := NewSchema()
	schema.AddProperty("name", Null, String)

	raw, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{"name":{"type":["null","string"]}}}`, string(raw))
}
