package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b").(string))
	assert.Equal(t, "b", Ternary(false, "a", "b").(string))
}

func TestArrayContains(t *testing.T) {
	idx, found := ArrayContains([]int{1, 2, 3}, func(elem int) bool { return elem == 2 })
	assert.True(t, found)
	assert.Equal(t, 1, idx)

	_, found = ArrayContains([]int{1, 2, 3}, func(elem int) bool { return elem == 9 })
	assert.False(t, found)
}

func TestStreamIdentifier(t *testing.T) {
	assert.Equal(t, "app.users", StreamIdentifier("app", "users"))
	assert.Equal(t, "users", StreamIdentifier("", "users"))
}

type sampleConfig struct {
	Hosts    []string `json:"hosts"`
	Database string   `json:"database"`
}

func TestUnmarshalFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"hosts":["localhost:27017"],"database":"app"}`), 0644))

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("hosts:\n  - localhost:27017\ndatabase: app\n"), 0644))

	for _, path := range []string{jsonPath, yamlPath} {
		var config sampleConfig
		require.NoError(t, UnmarshalFile(path, &config))
		assert.Equal(t, []string{"localhost:27017"}, config.Hosts)
		assert.Equal(t, "app", config.Database)
	}

	var config sampleConfig
	require.Error(t, UnmarshalFile(filepath.Join(dir, "missing.json"), &config))
}
