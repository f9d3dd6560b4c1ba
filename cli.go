package params

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// HelpCalled is the result of ParseCommandLine when help output was printed
// instead of configuration; callers treat it as a request to exit zero.
const HelpCalled = "Help called"

// PositionalHandler consumes tokens that do not look like --key=value
// options. It receives a setter for stashing values into the override tree,
// the full token list, the index of the token to consume, and how many
// positional arguments were already consumed. It returns the number of tokens
// consumed; zero or a negative count means the token is unrecognized and
// aborts parsing with the returned error's message.
type PositionalHandler func(set func(key, value string), tokens []string, index, numSeen int) (int, error)

// NoPositionalArguments rejects every positional argument. It is the handler
// used when CLIOptions.Positional is nil.
func NoPositionalArguments(_ func(key, value string), tokens []string, index, _ int) (int, error) {
	return 0, fmt.Errorf("illegal parameter %q", tokens[index])
}

// CLIOptions configures command-line parsing.
type CLIOptions struct {
	// HelpPreamble is printed before the option list. When non-empty, the
	// arguments -h, --help and --help-all are intercepted and trigger help
	// output instead of configuration.
	HelpPreamble string

	// Positional handles non-option tokens. Nil rejects them all.
	Positional PositionalHandler

	// Stdout receives help output (default os.Stdout).
	Stdout io.Writer

	// Stderr receives usage dumps accompanying parse errors (default os.Stderr).
	Stderr io.Writer
}

// DefaultCLIOptions returns the options ParseCommandLine assumes when fields
// are left zero: no help interception, no positional arguments, and output on
// the process's standard streams.
func DefaultCLIOptions() CLIOptions {
	return CLIOptions{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ParseCommandLine consumes the program's arguments (without the program
// name) and writes every --key=value option into the override tree under its
// canonical name. It returns the empty string on success, HelpCalled after
// printing help, and a human-readable error message otherwise; callers treat
// any non-empty result other than HelpCalled as failure.
//
// There is no boolean-flag shorthand: an option without '=' is rejected as
// missing its value. A key seen twice in one invocation is a duplicate error.
func (c *Config) ParseCommandLine(args []string, opts CLIOptions) string {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	positional := opts.Positional
	if positional == nil {
		positional = NoPositionalArguments
	}

	fail := func(msg string) string {
		if opts.HelpPreamble != "" {
			c.PrintUsage(stderr, opts.HelpPreamble, msg, false)
		}
		return msg
	}

	if opts.HelpPreamble != "" {
		for _, arg := range args {
			switch arg {
			case "-h", "--help":
				c.PrintUsage(stdout, opts.HelpPreamble, "", false)
				return HelpCalled
			case "--help-all":
				c.PrintUsage(stdout, opts.HelpPreamble, "", true)
				return HelpCalled
			}
		}
	}

	set := func(key, value string) {
		c.Set(key, value)
	}

	seen := make(map[string]bool)
	numPositional := 0
	for i := 0; i < len(args); i++ {
		arg := args[i]

		// Everything that cannot be a --key=value option is positional.
		if len(arg) < 4 || !strings.HasPrefix(arg, "--") {
			consumed, err := positional(set, args, i, numPositional)
			if consumed < 1 {
				msg := fmt.Sprintf("unrecognized positional argument %q", arg)
				if err != nil {
					msg = err.Error()
				}
				return fail(msg)
			}
			numPositional++
			i += consumed - 1
			continue
		}

		if !isLetter(arg[2]) {
			return fail(fmt.Sprintf("Parameter name of argument %d (%q) is invalid because it does not start with a letter.", i, arg))
		}

		key, rest := parseKeyToken(arg[2:])
		name, err := Canonicalize(key, true)
		if err != nil {
			return fail(err.Error())
		}

		if seen[name] {
			return fail(fmt.Sprintf("Parameter %q specified multiple times as a command line parameter", name))
		}
		seen[name] = true

		if rest == "" || rest[0] != '=' {
			return fail(fmt.Sprintf("Parameter %q is missing a value. Please use %s=value.", name, arg))
		}

		c.Set(name, rest[1:])
	}

	return ""
}
