package params

import (
	"errors"
	"fmt"
	"reflect"
)

// Value is the set of parameter value types the registry can carry.
type Value interface {
	~bool | ~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Param declares one parameter: its canonical PascalCase name and its
// compile-time default. Declarations are normally package-level variables so
// the same Param value is shared between registration and retrieval sites.
type Param[T Value] struct {
	Name    string
	Default T
}

// Kind is the value-category tag decided once at registration time and
// carried in ParamInfo, replacing repeated type-name string comparisons.
type Kind int

const (
	// KindFlag marks synthetic help entries that take no value.
	KindFlag Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
)

// ParamInfo is the registration metadata record for one parameter. Identity
// is structural over (Name, TypeName, Usage); Default and Hidden are mutable
// metadata.
type ParamInfo struct {
	Name     string
	TypeName string
	Kind     Kind
	Usage    string
	Default  string
	Hidden   bool
}

func (p ParamInfo) sameRegistration(other ParamInfo) bool {
	return p.Name == other.Name &&
		p.TypeName == other.TypeName &&
		p.Usage == other.Usage
}

// Register declares a run-time parameter. Registration must still be open,
// and the declared name must already be in canonical PascalCase form.
//
// Registering the same (name, type, usage) twice is a no-op, so a parameter
// may be declared from repeated call sites. Re-registering a name with a
// different type or usage fails with ErrConflictingRegistration.
func Register[T Value](c *Config, p Param[T], usage string) error {
	name, err := Canonicalize(p.Name, true)
	if err != nil {
		return err
	}
	if name != p.Name {
		return fmt.Errorf("%w: %q: canonical parameter names start with an upper-case letter", ErrInvalidKeyFormat, p.Name)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.open {
		return fmt.Errorf("%w: registration was closed before parameter %q was registered", ErrAlreadyClosed, name)
	}

	info := ParamInfo{
		Name:     name,
		TypeName: typeName[T](),
		Kind:     kindOf[T](),
		Usage:    usage,
		Default:  formatValue(p.Default),
	}

	if existing, ok := c.registry[name]; ok {
		if existing.sameRegistration(info) {
			return nil
		}
		return fmt.Errorf("%w: parameter %q registered twice with non-matching characteristics", ErrConflictingRegistration, name)
	}

	c.registry[name] = info
	// Deferred validation task: resolving once at close time surfaces a
	// malformed override exactly once instead of at the first Get.
	c.finalizers = append(c.finalizers, func() error {
		_, err := Get(c, p)
		return err
	})

	return nil
}

// Hide marks an already-registered parameter as hidden from default help
// output. It may only be called while registration is open.
func Hide[T Value](c *Config, p Param[T]) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.open {
		return fmt.Errorf("%w: parameter %q declared hidden after registration was closed", ErrAlreadyClosed, p.Name)
	}

	info, ok := c.registry[p.Name]
	if !ok {
		return fmt.Errorf("%w: cannot hide unregistered parameter %q", ErrUnknownParameter, p.Name)
	}

	info.Hidden = true
	c.registry[p.Name] = info
	return nil
}

// SetDefault overwrites the stored textual default of an already-registered
// parameter. Subsequent Get calls that find no override see the new default.
func SetDefault[T Value](c *Config, p Param[T], value T) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	info, ok := c.registry[p.Name]
	if !ok {
		return fmt.Errorf("%w: cannot set default of unregistered parameter %q", ErrUnknownParameter, p.Name)
	}

	info.Default = formatValue(value)
	c.registry[p.Name] = info
	return nil
}

// EndRegistration closes the registration phase and runs every deferred
// validation task, resolving each registered parameter once so that malformed
// overrides fail here, deterministically, instead of at a later Get call.
// All failures are reported; the lifecycle transitions to closed either way.
// Calling EndRegistration twice fails with ErrAlreadyClosed.
func (c *Config) EndRegistration() error {
	c.mutex.Lock()
	if !c.open {
		c.mutex.Unlock()
		return fmt.Errorf("%w: registration can only be closed once", ErrAlreadyClosed)
	}
	c.open = false
	finalizers := c.finalizers
	c.finalizers = nil
	c.mutex.Unlock()

	var errs []error
	for _, validate := range finalizers {
		if err := validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// typeName reports the declared Go type of a parameter. It is only metadata;
// dispatch happens on Kind.
func typeName[T Value]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}

func kindOf[T Value]() Kind {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	default:
		return KindFlag
	}
}
