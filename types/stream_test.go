package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_NewStream(t *testing.T) {
	stream := NewStream("users", "app")

	assert.Equal(t, "users", stream.Name)
	assert.Equal(t, "app", stream.Namespace)
	assert.Equal(t, "app.users", stream.ID())

	assert.NotNil(t, stream.Schema, "Schema should be initialized")
	assert.NotNil(t, stream.AvailableCursorFields, "AvailableCursorFields should be initialized")
	assert.Equal(t, []string{"_id"}, stream.SourceDefinedPrimaryKey)
}

func TestConfiguredStream_DestinationName(t *testing.T) {
	configured := &ConfiguredStream{
		Stream:      NewStream("users", "app"),
		CursorField: "updated_at",
	}
	assert.Equal(t, "app.users", configured.DestinationName())

	configured.DestinationTable = "users_v2"
	assert.Equal(t, "users_v2", configured.DestinationName())
}

func TestConfiguredStream_Validate(t *testing.T) {
	source := NewStream("users", "app").WithCursorFields("_id", "updated_at")

	tests := []struct {
		name        string
		cursorField string
		wantErr     bool
	}{
		{name: "valid cursor", cursorField: "updated_at", wantErr: false},
		{name: "missing cursor designation", cursorField: "", wantErr: true},
		{name: "unknown cursor field", cursorField: "created_at", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configured := &ConfiguredStream{
				Stream:      NewStream("users", "app"),
				CursorField: tt.cursorField,
			}

			err := configured.Validate(source)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
