package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_WholeDocument(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
name: test-app
version: "1.0"
debug: true
ratio: 0.5
port: 8080
`)

	tree, err := parser.Parse(data)

	require.NoError(t, err)
	assert.Equal(t, "test-app", tree["name"])
	assert.Equal(t, "1.0", tree["version"])
	assert.Equal(t, true, tree["debug"])
	assert.InDelta(t, 0.5, tree["ratio"], 0.0001)
	assert.EqualValues(t, 8080, tree["port"])
}

func TestParser_Parse_NestedMapping(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
Db:
  connection:
    host: db.example.com
  tags:
    - primary
    - eu
`)

	tree, err := parser.Parse(data)
	require.NoError(t, err)

	db, ok := tree["Db"].(map[string]any)
	require.True(t, ok, "Db should be a mapping")

	connection, ok := db["connection"].(map[string]any)
	require.True(t, ok, "connection should be a mapping")
	assert.Equal(t, "db.example.com", connection["host"])
	assert.Equal(t, []any{"primary", "eu"}, db["tags"])
}

func TestParser_Parse_WithRoot(t *testing.T) {
	t.Parallel()

	parser := NewParser(WithRoot("api.permissions"))

	data := []byte(`
api:
  permissions:
    admin:
      read: true
      write: true
    user:
      read: true
      write: false
other: ignored
`)

	tree, err := parser.Parse(data)
	require.NoError(t, err)

	assert.NotContains(t, tree, "other")
	assert.Equal(t, map[string]any{"read": true, "write": false}, tree["user"])
}

func TestParser_Parse_WithRootNotFound(t *testing.T) {
	t.Parallel()

	parser := NewParser(WithRoot("nonexistent"))

	_, err := parser.Parse([]byte("api:\n  host: localhost\n"))

	require.ErrorIs(t, err, ErrPathNotFound)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	for _, data := range [][]byte{nil, {}, []byte("  \n\t")} {
		tree, err := parser.Parse(data)

		require.NoError(t, err)
		assert.Empty(t, tree)
		assert.NotNil(t, tree)
	}
}

func TestParser_Parse_CommentOnly(t *testing.T) {
	t.Parallel()

	tree, err := NewParser().Parse([]byte("# nothing configured yet\n"))

	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content
  - broken
`)

	_, err := parser.Parse(data)

	require.Error(t, err)
}

func TestParser_Parse_RootSequence(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Parse([]byte("- a\n- b\n"))

	require.Error(t, err)
}

func TestParser_Decode(t *testing.T) {
	t.Parallel()

	var result struct {
		Host    string   `yaml:"host"`
		Port    int      `yaml:"port"`
		Enabled bool     `yaml:"enabled"`
		Tags    []string `yaml:"tags"`
	}

	value := map[string]any{
		"host":    "localhost",
		"port":    8080,
		"enabled": true,
		"tags":    []any{"a", "b"},
	}

	err := NewParser().Decode(value, &result)

	require.NoError(t, err)
	assert.Equal(t, "localhost", result.Host)
	assert.Equal(t, 8080, result.Port)
	assert.True(t, result.Enabled)
	assert.Equal(t, []string{"a", "b"}, result.Tags)
}

func TestParser_Decode_Scalar(t *testing.T) {
	t.Parallel()

	var port int

	err := NewParser().Decode(5432, &port)

	require.NoError(t, err)
	assert.Equal(t, 5432, port)
}

func TestParser_Decode_TypeMismatch(t *testing.T) {
	t.Parallel()

	var result struct {
		Port int `yaml:"port"`
	}

	err := NewParser().Decode(map[string]any{"port": "not a number"}, &result)

	require.Error(t, err)
}

func TestParser_Encode(t *testing.T) {
	t.Parallel()

	data, err := NewParser().Encode(map[string]any{"Db": map[string]any{"host": "h1"}})

	require.NoError(t, err)
	assert.Contains(t, string(data), "Db:")
	assert.Contains(t, string(data), "host: h1")
}

func TestToYAMLPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single key",
			input:    "key",
			expected: "$.key",
		},
		{
			name:     "two levels",
			input:    "api.permissions",
			expected: "$.api.permissions",
		},
		{
			name:     "three levels",
			input:    "database.connection.timeout",
			expected: "$.database.connection.timeout",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, toYAMLPath(testCase.input))
		})
	}
}
