package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
)

// LoadTOML reads a structured TOML file and merges its leaf values into the
// override tree. Every dot-joined key segment is canonicalized, so a document
// like
//
//	[linear-solver]
//	tolerance = 1e-8
//
// sets "LinearSolver.Tolerance". The overwrite flag has the same meaning as
// in ParseFile.
func (c *Config) LoadTOML(path string, overwrite bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read TOML file %q: %w", path, err)
	}

	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse TOML file %q: %w", path, err)
	}

	flat := flattenDoc(doc, "")
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		canonical, err := canonicalizePath(key, true)
		if err != nil {
			return fmt.Errorf("%s: key %q: %w", path, key, err)
		}
		c.setIfAbsent(canonical, tomlScalarText(flat[key]), overwrite)
	}
	return nil
}

// tomlScalarText serializes a decoded TOML scalar to the registry's textual
// form; booleans follow the "1"/"0" rule.
func tomlScalarText(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case string:
		return value
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Dump writes the effective configuration (every registered parameter with
// its override applied, plus unregistered tree keys as raw strings) as a TOML
// document.
func (c *Config) Dump(w io.Writer) error {
	nested, err := c.effectiveDoc()
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(nested); err != nil {
		return fmt.Errorf("failed to encode configuration as TOML: %w", err)
	}
	return nil
}

// Save atomically writes the effective configuration as a TOML file, using a
// temp-file-and-rename in the target directory.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// effectiveDoc builds the nested effective-value document used by Dump, Save
// and Scan. Registered parameters are typed per their Kind; unregistered
// tree keys stay raw strings.
func (c *Config) effectiveDoc() (map[string]any, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	nested := make(map[string]any)

	for _, name := range c.sortedNames() {
		info := c.registry[name]
		raw := c.tree.Get(name, info.Default)
		value, err := typedText(info, raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		setNested(nested, name, value)
	}

	for _, key := range c.tree.Flatten("") {
		if _, ok := c.registry[key]; !ok {
			setNested(nested, key, c.tree.Get(key, ""))
		}
	}

	return nested, nil
}

// typedText coerces a textual value per the registered kind.
func typedText(info ParamInfo, raw string) (any, error) {
	switch info.Kind {
	case KindBool:
		return raw == "1", nil
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s", raw, info.TypeName)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s", raw, info.TypeName)
		}
		return f, nil
	default:
		return raw, nil
	}
}

// atomicWriteFile writes data to path via a synced temp file and rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file to %q: %w", path, err)
	}
	return nil
}
