package params

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	t.Run("SetsCanonicalKeys", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--upwind-weight=0.5", "--grid-file=mesh.dgf"}, CLIOptions{})
		require.Empty(t, msg)
		assert.Equal(t, "0.5", cfg.Value("UpwindWeight", ""))
		assert.Equal(t, "mesh.dgf", cfg.Value("GridFile", ""))
	})

	t.Run("EmptyValue", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--grid-file="}, CLIOptions{})
		require.Empty(t, msg)
		assert.True(t, cfg.Has("GridFile"))
		assert.Equal(t, "", cfg.Value("GridFile", "fallback"))
	})

	t.Run("Duplicate", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--foo-bar=1", "--foo-bar=2"}, CLIOptions{})
		assert.Contains(t, msg, "FooBar")
		assert.Contains(t, msg, "multiple times")
	})

	t.Run("MissingValue", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--verbose"}, CLIOptions{})
		assert.Contains(t, msg, "missing a value")
		assert.Contains(t, msg, "--verbose=value")
	})

	t.Run("NameNotStartingWithLetter", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--9foo=1"}, CLIOptions{})
		assert.Contains(t, msg, "does not start with a letter")
	})

	t.Run("MalformedName", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--foo--bar=1"}, CLIOptions{})
		assert.NotEmpty(t, msg)
		assert.NotEqual(t, HelpCalled, msg)
	})

	t.Run("ShortTokenIsPositional", func(t *testing.T) {
		// "--x" is too short to be an option and is handed to the
		// positional handler, which rejects it by default.
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--x"}, CLIOptions{})
		assert.Contains(t, msg, "illegal parameter")
	})

	t.Run("PositionalRejectedByDefault", func(t *testing.T) {
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"mesh.dgf"}, CLIOptions{})
		assert.Contains(t, msg, "illegal parameter")
		assert.Contains(t, msg, "mesh.dgf")
	})

	t.Run("PositionalHandler", func(t *testing.T) {
		cfg := New()
		handler := func(set func(key, value string), tokens []string, index, numSeen int) (int, error) {
			if numSeen > 0 {
				return 0, fmt.Errorf("exactly one input file expected, got %q", tokens[index])
			}
			set("GridFile", tokens[index])
			return 1, nil
		}

		msg := cfg.ParseCommandLine([]string{"mesh.dgf", "--verbose=1"}, CLIOptions{Positional: handler})
		require.Empty(t, msg)
		assert.Equal(t, "mesh.dgf", cfg.Value("GridFile", ""))
		assert.Equal(t, "1", cfg.Value("Verbose", ""))

		msg = cfg.ParseCommandLine([]string{"a.dgf", "b.dgf"}, CLIOptions{Positional: handler})
		assert.Contains(t, msg, "exactly one input file")
	})

	t.Run("MultiTokenPositional", func(t *testing.T) {
		cfg := New()
		handler := func(set func(key, value string), tokens []string, index, numSeen int) (int, error) {
			set("Pair", tokens[index]+","+tokens[index+1])
			return 2, nil
		}
		msg := cfg.ParseCommandLine([]string{"left", "right", "--verbose=0"}, CLIOptions{Positional: handler})
		require.Empty(t, msg)
		assert.Equal(t, "left,right", cfg.Value("Pair", ""))
		assert.Equal(t, "0", cfg.Value("Verbose", ""))
	})
}

func TestParseCommandLineHelp(t *testing.T) {
	newConfig := func(t *testing.T) *Config {
		cfg := New()
		require.NoError(t, Register(cfg, Param[float64]{Name: "UpwindWeight", Default: 1.0}, "Relative weight of the upwind node"))
		require.NoError(t, Register(cfg, Param[bool]{Name: "Verbose", Default: false}, "Print progress information"))
		require.NoError(t, Register(cfg, Param[string]{Name: "Secret", Default: ""}, "Internal knob"))
		require.NoError(t, Hide(cfg, Param[string]{Name: "Secret"}))
		return cfg
	}

	t.Run("Help", func(t *testing.T) {
		cfg := newConfig(t)
		var stdout bytes.Buffer
		msg := cfg.ParseCommandLine([]string{"--help"}, CLIOptions{
			HelpPreamble: "usage: sim [options] GRIDFILE",
			Stdout:       &stdout,
		})
		assert.Equal(t, HelpCalled, msg)

		out := stdout.String()
		assert.Contains(t, out, "usage: sim [options] GRIDFILE")
		assert.Contains(t, out, "--upwind-weight=SCALAR")
		assert.Contains(t, out, "--verbose=BOOLEAN")
		assert.Contains(t, out, "-h,--help")
		assert.NotContains(t, out, "--secret")
	})

	t.Run("ShortHelp", func(t *testing.T) {
		cfg := newConfig(t)
		var stdout bytes.Buffer
		msg := cfg.ParseCommandLine([]string{"-h"}, CLIOptions{
			HelpPreamble: "usage: sim",
			Stdout:       &stdout,
		})
		assert.Equal(t, HelpCalled, msg)
		assert.Contains(t, stdout.String(), "--upwind-weight=SCALAR")
	})

	t.Run("HelpAll", func(t *testing.T) {
		cfg := newConfig(t)
		var stdout bytes.Buffer
		msg := cfg.ParseCommandLine([]string{"--help-all"}, CLIOptions{
			HelpPreamble: "usage: sim",
			Stdout:       &stdout,
		})
		assert.Equal(t, HelpCalled, msg)
		assert.Contains(t, stdout.String(), "--secret=STRING")
	})

	t.Run("NoPreambleNoInterception", func(t *testing.T) {
		// Without a preamble, --help is just a malformed option.
		cfg := New()
		msg := cfg.ParseCommandLine([]string{"--help"}, CLIOptions{})
		assert.NotEqual(t, HelpCalled, msg)
		assert.NotEmpty(t, msg)
	})

	t.Run("ErrorDumpsUsage", func(t *testing.T) {
		cfg := newConfig(t)
		var stderr bytes.Buffer
		msg := cfg.ParseCommandLine([]string{"--verbose"}, CLIOptions{
			HelpPreamble: "usage: sim",
			Stderr:       &stderr,
		})
		assert.Contains(t, msg, "missing a value")
		assert.Contains(t, stderr.String(), "usage: sim")
		assert.Contains(t, stderr.String(), msg)
	})
}
