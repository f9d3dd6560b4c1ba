package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	type solverSettings struct {
		Tolerance       float64 `toml:"Tolerance"`
		MaxIterations   int     `toml:"MaxIterations"`
		Timeout         time.Duration
		Preconditioners []string `toml:"Preconditioners"`
	}

	t.Run("Section", func(t *testing.T) {
		cfg := New()
		cfg.Set("LinearSolver.Tolerance", "1e-8")
		cfg.Set("LinearSolver.MaxIterations", "250")
		cfg.Set("LinearSolver.Timeout", "30s")
		cfg.Set("LinearSolver.Preconditioners", "ilu,amg")

		var settings solverSettings
		require.NoError(t, cfg.Scan("LinearSolver", &settings))

		assert.Equal(t, 1e-8, settings.Tolerance)
		assert.Equal(t, 250, settings.MaxIterations)
		assert.Equal(t, 30*time.Second, settings.Timeout)
		assert.Equal(t, []string{"ilu", "amg"}, settings.Preconditioners)
	})

	t.Run("RegisteredValuesAreTyped", func(t *testing.T) {
		cfg := New()
		require.NoError(t, Register(cfg, Param[float64]{Name: "EndTime", Default: 1000}, "t"))
		require.NoError(t, Register(cfg, Param[bool]{Name: "Verbose", Default: false}, "v"))
		cfg.Set("Verbose", "1")

		var root struct {
			EndTime float64 `toml:"EndTime"`
			Verbose bool    `toml:"Verbose"`
		}
		require.NoError(t, cfg.Scan("", &root))
		assert.Equal(t, float64(1000), root.EndTime)
		assert.True(t, root.Verbose)
	})

	t.Run("MissingSection", func(t *testing.T) {
		cfg := New()
		var settings solverSettings
		settings.Tolerance = 0.25
		require.NoError(t, cfg.Scan("NoSuchSection", &settings))
		// Nothing to decode; existing values are untouched.
		assert.Equal(t, 0.25, settings.Tolerance)
	})

	t.Run("NonTablePath", func(t *testing.T) {
		cfg := New()
		cfg.Set("Scalar", "1")
		var settings solverSettings
		err := cfg.Scan("Scalar", &settings)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-table")
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		cfg := New()
		var settings solverSettings
		assert.Error(t, cfg.Scan("LinearSolver", settings))
	})

	t.Run("NilPointerTarget", func(t *testing.T) {
		cfg := New()
		var settings *solverSettings
		assert.Error(t, cfg.Scan("LinearSolver", settings))
	})
}
