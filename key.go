package params

import (
	"fmt"
	"strings"
)

// ToCliFlag converts a canonical PascalCase parameter name to its
// command-line spelling: a separator is inserted before every upper-case
// letter and the result is lower-cased, so "UpwindWeight" becomes
// "--upwind-weight" and a single-letter name "h" becomes "-h".
func ToCliFlag(name string) string {
	var b strings.Builder
	b.WriteByte('-')
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if isUpper(ch) {
			b.WriteByte('-')
			ch += 'a' - 'A'
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// Canonicalize converts a raw key (typically kebab-case from the command line
// or a parameter file) to the canonical PascalCase spelling used as the
// registry key. Every '-' is dropped and the following letter upper-cased;
// when capitalizeFirst is set the first letter is upper-cased as well.
//
// The empty key, a non-letter first character, a '-' not followed by a
// letter, and any other non-alphanumeric character all fail with
// ErrInvalidKeyFormat.
func Canonicalize(raw string, capitalizeFirst bool) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty parameter names are invalid", ErrInvalidKeyFormat)
	}
	if !isLetter(raw[0]) {
		return "", fmt.Errorf("%w: %q: first character must be a letter", ErrInvalidKeyFormat, raw)
	}

	var b strings.Builder
	if capitalizeFirst {
		b.WriteByte(toUpper(raw[0]))
	} else {
		b.WriteByte(raw[0])
	}

	for i := 1; i < len(raw); i++ {
		switch ch := raw[i]; {
		case ch == '-':
			i++
			if i >= len(raw) || !isLetter(raw[i]) {
				return "", fmt.Errorf("%w: %q: '-' must be followed by a letter", ErrInvalidKeyFormat, raw)
			}
			b.WriteByte(toUpper(raw[i]))
		case !isAlnum(ch):
			return "", fmt.Errorf("%w: %q: illegal character %q", ErrInvalidKeyFormat, raw, string(ch))
		default:
			b.WriteByte(ch)
		}
	}

	return b.String(), nil
}

// canonicalizePath canonicalizes every dot-separated segment of a
// hierarchical key independently.
func canonicalizePath(path string, capitalizeFirst bool) (string, error) {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		canonical, err := Canonicalize(segment, capitalizeFirst)
		if err != nil {
			return "", err
		}
		segments[i] = canonical
	}
	return strings.Join(segments, "."), nil
}

// parseKeyToken splits s at the first whitespace or '=' and returns the
// leading key text and the remainder (separator included).
func parseKeyToken(s string) (key, remainder string) {
	i := 0
	for ; i < len(s); i++ {
		if isSpace(s[i]) || s[i] == '=' {
			break
		}
	}
	return s[:i], s[i:]
}

// parseUnquotedValue reads a value terminated by whitespace.
func parseUnquotedValue(s string) (value, remainder string) {
	i := 0
	for ; i < len(s); i++ {
		if isSpace(s[i]) {
			break
		}
	}
	return s[:i], s[i:]
}

// parseQuotedValue decodes a double-quoted value starting at s[0]. The escape
// sequences \n, \r, \t, \" and \\ are recognized; anything else, or a missing
// closing quote, fails with ErrMalformedQuotedString. The remainder begins
// after the closing quote.
func parseQuotedValue(s string) (value, remainder string, err error) {
	if s == "" || s[0] != '"' {
		return "", "", fmt.Errorf("%w: expected quoted string", ErrMalformedQuotedString)
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			if i >= len(s) {
				return "", "", fmt.Errorf("%w: unexpected end of quoted string", ErrMalformedQuotedString)
			}
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return "", "", fmt.Errorf("%w: unknown escape character '\\%s'", ErrMalformedQuotedString, string(s[i]))
			}
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(s[i])
		}
	}

	return "", "", fmt.Errorf("%w: missing closing quote", ErrMalformedQuotedString)
}

// skipLeadingSpace returns s without its leading whitespace.
func skipLeadingSpace(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if !isSpace(s[i]) {
			break
		}
	}
	return s[i:]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func toUpper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}
