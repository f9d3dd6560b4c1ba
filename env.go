package params

import (
	"os"
	"strings"
)

// EnvTransformFunc converts a canonical parameter name to an environment
// variable name.
type EnvTransformFunc func(name string) string

// DefaultEnvTransform maps "UpwindWeight" to prefix+"UPWIND_WEIGHT" and dots
// to underscores.
func DefaultEnvTransform(prefix string) EnvTransformFunc {
	return func(name string) string {
		var b strings.Builder
		b.WriteString(prefix)
		boundary := true
		for i := 0; i < len(name); i++ {
			ch := name[i]
			if ch == '.' {
				b.WriteByte('_')
				boundary = true
				continue
			}
			if isUpper(ch) && i > 0 && !boundary {
				b.WriteByte('_')
			}
			boundary = isUpper(ch)
			b.WriteByte(toUpper(ch))
		}
		return b.String()
	}
}

// LoadEnv overlays environment variables onto the override tree for every
// registered parameter, using the default name transform. Values take the
// same tree/coercion path as command-line and file values, so malformed ones
// are caught by EndRegistration or Get.
func (c *Config) LoadEnv(prefix string) {
	c.LoadEnvTransform(DefaultEnvTransform(prefix))
}

// LoadEnvTransform is LoadEnv with a custom name transform.
func (c *Config) LoadEnvTransform(transform EnvTransformFunc) {
	for _, name := range c.Names() {
		if value, ok := os.LookupEnv(transform(name)); ok {
			c.Set(name, value)
		}
	}
}

// DiscoverEnv reports which registered parameters have a matching environment
// variable set, as a map of canonical name to variable name.
func (c *Config) DiscoverEnv(prefix string) map[string]string {
	transform := DefaultEnvTransform(prefix)
	discovered := make(map[string]string)
	for _, name := range c.Names() {
		envVar := transform(name)
		if _, ok := os.LookupEnv(envVar); ok {
			discovered[name] = envVar
		}
	}
	return discovered
}
