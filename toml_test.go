package params

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOMLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOML(t *testing.T) {
	t.Run("CanonicalizesNestedKeys", func(t *testing.T) {
		cfg := New()
		path := writeTOMLFile(t, `
end-time = 1000
verbose = true
grid-file = "mesh.dgf"

[linear-solver]
tolerance = 1e-8
max-iterations = 250
`)
		require.NoError(t, cfg.LoadTOML(path, true))

		assert.Equal(t, "1000", cfg.Value("EndTime", ""))
		assert.Equal(t, "1", cfg.Value("Verbose", ""))
		assert.Equal(t, "mesh.dgf", cfg.Value("GridFile", ""))
		assert.Equal(t, "1e-08", cfg.Value("LinearSolver.Tolerance", ""))
		assert.Equal(t, "250", cfg.Value("LinearSolver.MaxIterations", ""))
	})

	t.Run("OverwriteFlag", func(t *testing.T) {
		cfg := New()
		cfg.Set("EndTime", "1")
		path := writeTOMLFile(t, "end-time = 2\n")

		require.NoError(t, cfg.LoadTOML(path, false))
		assert.Equal(t, "1", cfg.Value("EndTime", ""))

		require.NoError(t, cfg.LoadTOML(path, true))
		assert.Equal(t, "2", cfg.Value("EndTime", ""))
	})

	t.Run("MalformedKey", func(t *testing.T) {
		cfg := New()
		path := writeTOMLFile(t, "\"end--time\" = 1\n")
		err := cfg.LoadTOML(path, true)
		assert.ErrorIs(t, err, ErrInvalidKeyFormat)
	})

	t.Run("MissingFile", func(t *testing.T) {
		cfg := New()
		err := cfg.LoadTOML(filepath.Join(t.TempDir(), "nope.toml"), true)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("InvalidSyntax", func(t *testing.T) {
		cfg := New()
		path := writeTOMLFile(t, "this is not toml\n")
		assert.Error(t, cfg.LoadTOML(path, true))
	})
}

func TestDump(t *testing.T) {
	cfg := New()
	require.NoError(t, Register(cfg, Param[float64]{Name: "EndTime", Default: 1000}, "t"))
	require.NoError(t, Register(cfg, Param[bool]{Name: "Verbose", Default: false}, "v"))
	cfg.Set("Verbose", "1")
	cfg.Set("Bogus", "raw")
	cfg.Set("LinearSolver.Tolerance", "1e-08")

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, float64(1000), doc["EndTime"])
	assert.Equal(t, true, doc["Verbose"])
	assert.Equal(t, "raw", doc["Bogus"])

	// Unregistered dotted keys survive as raw strings in a nested table.
	solver, ok := doc["LinearSolver"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1e-08", solver["Tolerance"])
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := New()
	require.NoError(t, Register(cfg, Param[float64]{Name: "EndTime", Default: 1000}, "t"))
	require.NoError(t, Register(cfg, Param[string]{Name: "GridFile", Default: "mesh.dgf"}, "g"))
	cfg.Set("EndTime", "250")
	require.NoError(t, cfg.EndRegistration())

	path := filepath.Join(t.TempDir(), "out", "config.toml")
	require.NoError(t, cfg.Save(path))

	loaded := New()
	require.NoError(t, loaded.LoadTOML(path, true))
	assert.Equal(t, "250", loaded.Value("EndTime", ""))
	assert.Equal(t, "mesh.dgf", loaded.Value("GridFile", ""))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestDumpMalformedOverride(t *testing.T) {
	cfg := New()
	require.NoError(t, Register(cfg, Param[int]{Name: "Steps", Default: 10}, "s"))
	cfg.Set("Steps", "not-a-number")

	var buf bytes.Buffer
	err := cfg.Dump(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Steps")
}
