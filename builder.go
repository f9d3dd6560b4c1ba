package params

import (
	"errors"
	"fmt"
	"os"
)

// RegistrationFunc declares parameters on a fresh Config. Builder runs it
// while registration is still open.
type RegistrationFunc func(c *Config) error

// Builder provides a fluent interface that drives the whole lifecycle:
// register parameters, overlay the configured sources (file, TOML,
// environment, command line — lowest precedence first), then close
// registration so every value is validated eagerly.
type Builder struct {
	cfg       *Config
	register  []RegistrationFunc
	file      string
	tomlFile  string
	envPrefix string
	loadEnv   bool
	args      []string
	cliOpts   CLIOptions
}

// NewBuilder creates a builder that parses os.Args[1:] by default.
func NewBuilder() *Builder {
	return &Builder{
		cfg:  New(),
		args: os.Args[1:],
	}
}

// WithRegistration adds a registration function; multiple ones run in order.
func (b *Builder) WithRegistration(fn RegistrationFunc) *Builder {
	if fn != nil {
		b.register = append(b.register, fn)
	}
	return b
}

// WithFile sets an INI-style parameter file to load. A missing file is not
// fatal.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithTOML sets a structured TOML file to load. A missing file is not fatal.
func (b *Builder) WithTOML(path string) *Builder {
	b.tomlFile = path
	return b
}

// WithEnvPrefix enables environment-variable overrides with the given prefix.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	b.loadEnv = true
	return b
}

// WithArgs sets the command-line arguments (default os.Args[1:]).
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithHelpPreamble enables -h/--help/--help-all handling during Build.
func (b *Builder) WithHelpPreamble(preamble string) *Builder {
	b.cliOpts.HelpPreamble = preamble
	return b
}

// WithPositional sets the handler for positional command-line arguments.
func (b *Builder) WithPositional(fn PositionalHandler) *Builder {
	b.cliOpts.Positional = fn
	return b
}

// Build runs the full sequence and returns the closed Config. Help requests
// surface as ErrHelpRequested after printing help; command-line failures wrap
// ErrCLIParse; validation failures from EndRegistration are returned as-is.
func (b *Builder) Build() (*Config, error) {
	for _, register := range b.register {
		if err := register(b.cfg); err != nil {
			return nil, fmt.Errorf("failed to register parameters: %w", err)
		}
	}

	// Lowest precedence first; later sources overwrite earlier ones.
	if b.file != "" {
		if err := b.cfg.ParseFile(b.file, true); err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
	}
	if b.tomlFile != "" {
		if err := b.cfg.LoadTOML(b.tomlFile, true); err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
	}
	if b.loadEnv {
		b.cfg.LoadEnv(b.envPrefix)
	}
	if len(b.args) > 0 {
		switch msg := b.cfg.ParseCommandLine(b.args, b.cliOpts); msg {
		case "":
		case HelpCalled:
			return nil, ErrHelpRequested
		default:
			return nil, fmt.Errorf("%w: %s", ErrCLIParse, msg)
		}
	}

	if err := b.cfg.EndRegistration(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// MustBuild is like Build but panics on any error other than a help request,
// which terminates the process with status zero.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		if errors.Is(err, ErrHelpRequested) {
			os.Exit(0)
		}
		panic(fmt.Sprintf("parameter setup failed: %v", err))
	}
	return cfg
}
