package protocol

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageWriter_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewMessageWriter(&buf)

	extracted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, sink.Write(types.NewRecordMessage("app.users", types.Record{"x": float64(1)}, 1714560000000, extracted)))
	require.NoError(t, sink.Write(types.NewActivateVersionMessage("app.users", 1714560000000)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "RECORD", record["type"])
	assert.Equal(t, "app.users", record["stream"])
	assert.Equal(t, map[string]any{"x": float64(1)}, record["record"])
	assert.Equal(t, float64(1714560000000), record["version"])
	assert.NotEmpty(t, record["time_extracted"])

	var activate map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &activate))
	assert.Equal(t, "ACTIVATE_VERSION", activate["type"])
}

func TestMessageWriter_StateSnapshotIsDetached(t *testing.T) {
	var buf bytes.Buffer
	sink := NewMessageWriter(&buf)

	state := types.NewState()
	state.SetCursor("app.users", "1", "int")
	message := types.NewStateMessage(state)

	// mutating the live state after building the message must not leak
	// into the emitted snapshot
	state.SetCursor("app.users", "2", "int")
	require.NoError(t, sink.Write(message))

	assert.Contains(t, buf.String(), `"replication_key_value":"1"`)
}

func TestMetrics_PerStreamCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.AddRecords("app.users", 3)
	metrics.AddRecords("app.users", 2)
	metrics.AddSchemaChange("app.users")
	metrics.AddElapsed("app.users", time.Second)
	metrics.AddRecords("app.orders", 1)

	users := metrics.Stream("app.users")
	assert.Equal(t, int64(5), users.Records)
	assert.Equal(t, int64(1), users.SchemaChanges)
	assert.Equal(t, time.Second, users.Elapsed)

	assert.Equal(t, int64(1), metrics.Stream("app.orders").Records)
	assert.Equal(t, int64(0), metrics.Stream("app.orders").SchemaChanges)
}
