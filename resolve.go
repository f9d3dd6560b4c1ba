package params

import (
	"fmt"
	"reflect"
	"strconv"
)

// Get retrieves the effective value of a registered parameter: the override
// from the tree if one was set, the registry's current textual default
// otherwise, coerced to T. Registration must be closed and the parameter
// registered; a malformed override is propagated, not swallowed.
func Get[T Value](c *Config, p Param[T]) (T, error) {
	var zero T

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.open {
		return zero, fmt.Errorf("%w: parameter %q can only be retrieved after all parameters have been registered", ErrRegistrationNotClosed, p.Name)
	}
	info, ok := c.registry[p.Name]
	if !ok {
		return zero, fmt.Errorf("%w: accessing parameter %q without prior registration", ErrUnknownParameter, p.Name)
	}

	return resolveValue[T](c, p.Name, info.Default)
}

// GetLenient is Get without the lifecycle and registration guards. When the
// parameter was never registered its compile-time default stands in for the
// registry default.
func GetLenient[T Value](c *Config, p Param[T]) (T, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	defaultText := formatValue(p.Default)
	if info, ok := c.registry[p.Name]; ok {
		defaultText = info.Default
	}
	return resolveValue[T](c, p.Name, defaultText)
}

// IsSet reports whether the parameter was overridden at run time, independent
// of the override's value. The same guards as Get apply.
func IsSet[T Value](c *Config, p Param[T]) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.open {
		return false, fmt.Errorf("%w: parameter %q can only be checked after all parameters have been registered", ErrRegistrationNotClosed, p.Name)
	}
	if _, ok := c.registry[p.Name]; !ok {
		return false, fmt.Errorf("%w: accessing parameter %q without prior registration", ErrUnknownParameter, p.Name)
	}

	return c.tree.Has(p.Name), nil
}

// IsSetLenient is IsSet without the lifecycle and registration guards.
func IsSetLenient[T Value](c *Config, p Param[T]) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.tree.Has(p.Name)
}

// resolveValue must be called with at least a read lock held.
func resolveValue[T Value](c *Config, name, defaultText string) (T, error) {
	var zero T

	value, err := parseValue[T](defaultText)
	if err != nil {
		return zero, fmt.Errorf("parameter %q: default %q: %w", name, defaultText, err)
	}

	if c.tree.Has(name) {
		raw := c.tree.Get(name, defaultText)
		value, err = parseValue[T](raw)
		if err != nil {
			return zero, fmt.Errorf("parameter %q: value %q: %w", name, raw, err)
		}
	}

	return value, nil
}

// formatValue serializes a typed value to its textual registry form. Booleans
// serialize as "1"/"0" to match the coercion rule in parseValue.
func formatValue[T Value](v T) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return "1"
		}
		return "0"
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseValue coerces textual registry storage back to T. Numeric parsing is
// locale-independent; the boolean rule is that the literal "1" is true and
// anything else is false.
func parseValue[T Value](s string) (T, error) {
	var zero T
	rv := reflect.New(reflect.TypeOf(zero)).Elem()

	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(s == "1")
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("cannot parse %q as %s", s, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("cannot parse %q as %s", s, rv.Type())
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("cannot parse %q as %s", s, rv.Type())
		}
		rv.SetFloat(f)
	}

	return rv.Interface().(T), nil
}
