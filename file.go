package params

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseFile reads an INI-style parameter file: one "key = value" per line,
// with '#' and ';' starting whole-line or trailing comments. Keys are
// kebab-case or PascalCase and are canonicalized; values may be double-quoted
// with \n \r \t \" \\ escapes or unquoted (terminated by whitespace).
//
// The same canonical key twice within one file is a duplicate error. Across
// separate calls the overwrite flag decides: true replaces an existing tree
// value, false keeps it.
func (c *Config) ParseFile(path string, overwrite bool) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to open parameter file %q: %w", path, err)
	}
	defer f.Close()

	return c.parseParameterLines(path, f, overwrite)
}

func (c *Config) parseParameterLines(name string, r io.Reader, overwrite bool) error {
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := skipLeadingSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		rawKey, rest := parseKeyToken(line)
		key, err := Canonicalize(rawKey, true)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNum, err)
		}

		if seen[key] {
			return fmt.Errorf("%s:%d: %w: parameter %q seen multiple times in the same file", name, lineNum, ErrDuplicateKey, key)
		}
		seen[key] = true

		rest = skipLeadingSpace(rest)
		if rest == "" || rest[0] != '=' {
			return fmt.Errorf("%s:%d: syntax error, expected 'key=value'", name, lineNum)
		}
		rest = skipLeadingSpace(rest[1:])
		if rest == "" || rest[0] == '#' || rest[0] == ';' {
			return fmt.Errorf("%s:%d: syntax error, expected 'key=value'", name, lineNum)
		}

		var value string
		if rest[0] == '"' {
			value, rest, err = parseQuotedValue(rest)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", name, lineNum, err)
			}
		} else {
			value, rest = parseUnquotedValue(rest)
		}

		// Anything after the value must be a comment.
		rest = skipLeadingSpace(rest)
		if rest != "" && rest[0] != '#' && rest[0] != ';' {
			return fmt.Errorf("%s:%d: syntax error, unexpected %q after value", name, lineNum, rest)
		}

		c.setIfAbsent(key, value, overwrite)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read parameter file %q: %w", name, err)
	}
	return nil
}
