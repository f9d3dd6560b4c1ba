package params

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// usageColumn is where the usage text of an option line starts; names shorter
// than the column are padded, longer ones push the text right.
const usageColumn = 50

// usageIndent is the continuation indent of wrapped option lines.
const usageIndent = 52

// TerminalWidth returns the column count help output should wrap at: the
// terminal width (at least 80) when stdout is a terminal, and an effectively
// unbounded width otherwise.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, _, err := term.GetSize(fd)
		if err != nil {
			return 100
		}
		if width < 80 {
			return 80
		}
		return width
	}
	return 10 * 1000
}

// BreakLines greedily word-wraps msg to maxWidth columns. Existing newlines
// are hard breaks that reset the column counter. When a line reaches maxWidth
// the break happens at the most recent whitespace after the line's start, or
// exactly at maxWidth mid-word when a single token is longer than the width.
// Every wrapped continuation line is prefixed with indentWidth spaces.
func BreakLines(msg string, indentWidth, maxWidth int) string {
	var result strings.Builder

	startInPos := 0
	lastBreakPos := 0
	ttyPos := 0
	for inPos := 0; inPos < len(msg); inPos, ttyPos = inPos+1, ttyPos+1 {
		if msg[inPos] == '\n' {
			result.WriteString(msg[startInPos : inPos+1])
			startInPos = inPos + 1
			lastBreakPos = startInPos + 1

			// -1 because the loop post-statement increments ttyPos.
			ttyPos = -1
			continue
		}

		if isSpace(msg[inPos]) {
			lastBreakPos = inPos
		}

		if ttyPos >= maxWidth {
			if lastBreakPos > startInPos {
				result.WriteString(msg[startInPos:lastBreakPos])
				startInPos = lastBreakPos + 1
				lastBreakPos = startInPos
				inPos = startInPos
			} else {
				result.WriteString(msg[startInPos:inPos])
				startInPos = inPos
				lastBreakPos = startInPos
				inPos = startInPos
			}

			result.WriteByte('\n')
			for i := 0; i < indentWidth; i++ {
				result.WriteByte(' ')
			}
			ttyPos = indentWidth
		}
	}

	result.WriteString(msg[startInPos:])

	return result.String()
}

// FormatParamUsage renders one option line of the help output, wrapped to
// maxWidth: the kebab-case flag, a value-type tag derived from the parameter
// kind, the usage text starting at a fixed column, and the default value.
func FormatParamUsage(info ParamInfo, maxWidth int) string {
	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(ToCliFlag(info.Name))

	switch info.Kind {
	case KindString:
		b.WriteString("=STRING")
	case KindFloat:
		b.WriteString("=SCALAR")
	case KindInt:
		b.WriteString("=INTEGER")
	case KindBool:
		b.WriteString("=BOOLEAN")
	case KindFlag:
		// the parameter takes no value
	default:
		b.WriteString("=VALUE")
	}

	b.WriteString("  ")
	for b.Len() < usageColumn {
		b.WriteByte(' ')
	}

	b.WriteString(info.Usage)

	msg := b.String()
	if info.Kind != KindFlag {
		if !strings.HasSuffix(msg, ".") {
			msg += "."
		}
		msg += " Default: "
		switch info.Kind {
		case KindBool:
			if info.Default == "0" {
				msg += "false"
			} else {
				msg += "true"
			}
		case KindString:
			msg += `"` + info.Default + `"`
		default:
			msg += info.Default
		}
	}

	return BreakLines(msg, usageIndent, maxWidth) + "\n"
}

// PrintUsage writes a usage message for all registered parameters: the error
// message (if any), the word-wrapped preamble, and one line per parameter
// that is not hidden (or every parameter when showAll is set). When the
// preamble is non-empty, synthetic entries for -h/--help and --help-all are
// listed first.
func (c *Config) PrintUsage(w io.Writer, helpPreamble, errorMsg string, showAll bool) {
	width := TerminalWidth()

	if errorMsg != "" {
		fmt.Fprintf(w, "%s\n\n", errorMsg)
	}

	fmt.Fprint(w, BreakLines(helpPreamble, 2, width))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, "Recognized options:\n")

	if helpPreamble != "" {
		fmt.Fprint(w, FormatParamUsage(ParamInfo{
			Name:  "h,--help",
			Kind:  KindFlag,
			Usage: "Print this help message and exit",
		}, width))
		fmt.Fprint(w, FormatParamUsage(ParamInfo{
			Name:  "-help-all",
			Kind:  KindFlag,
			Usage: "Print all parameters, including obsolete, hidden and deprecated ones.",
		}, width))
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, name := range c.sortedNames() {
		info := c.registry[name]
		if showAll || !info.Hidden {
			fmt.Fprint(w, FormatParamUsage(info, width))
		}
	}
}

// PrintValues writes the full configuration state in three commented
// sections: registered parameters overridden at run time (annotated with
// their defaults), registered parameters left at their compile-time default,
// and tree keys that were never registered.
func (c *Config) PrintValues(w io.Writer) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	runTimeKeys, unknownKeys := c.partitionTreeKeys()

	var compileTimeKeys []string
	for _, name := range c.sortedNames() {
		if !c.tree.Has(name) {
			compileTimeKeys = append(compileTimeKeys, name)
		}
	}

	if len(runTimeKeys) > 0 {
		fmt.Fprint(w, "# [known parameters which were specified at run-time]\n")
		c.printParamList(w, runTimeKeys, true)
	}
	if len(compileTimeKeys) > 0 {
		fmt.Fprint(w, "# [parameters which were specified at compile-time]\n")
		c.printParamList(w, compileTimeKeys, false)
	}
	if len(unknownKeys) > 0 {
		fmt.Fprint(w, "# [unused run-time specified parameters]\n")
		for _, key := range unknownKeys {
			fmt.Fprintf(w, "%s=\"%s\"\n", key, c.tree.Get(key, ""))
		}
	}
}

// PrintUnused writes the tree keys that were never registered and reports
// whether anything was printed.
func (c *Config) PrintUnused(w io.Writer) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, unknownKeys := c.partitionTreeKeys()
	if len(unknownKeys) == 0 {
		return false
	}

	fmt.Fprint(w, "# [unused run-time specified parameters]\n")
	for _, key := range unknownKeys {
		fmt.Fprintf(w, "%s=\"%s\"\n", key, c.tree.Get(key, ""))
	}
	return true
}

// KeyValue is one flattened key with its raw tree value.
type KeyValue struct {
	Key   string
	Value string
}

// Lists partitions every key ever set in the tree into registered (used) and
// unregistered (unused) parameters. Registration must be closed.
func (c *Config) Lists() (used, unused []KeyValue, err error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.open {
		return nil, nil, fmt.Errorf("%w: parameter lists can only be retrieved after all parameters have been registered", ErrRegistrationNotClosed)
	}

	for _, key := range c.tree.Flatten("") {
		kv := KeyValue{Key: key, Value: c.tree.Get(key, "")}
		if _, ok := c.registry[key]; ok {
			used = append(used, kv)
		} else {
			unused = append(unused, kv)
		}
	}
	return used, unused, nil
}

// partitionTreeKeys must be called with at least a read lock held.
func (c *Config) partitionTreeKeys() (registered, unknown []string) {
	for _, key := range c.tree.Flatten("") {
		if _, ok := c.registry[key]; ok {
			registered = append(registered, key)
		} else {
			unknown = append(unknown, key)
		}
	}
	return registered, unknown
}

// printParamList must be called with at least a read lock held; every key
// must be registered.
func (c *Config) printParamList(w io.Writer, keys []string, printDefaults bool) {
	for _, key := range keys {
		info := c.registry[key]
		value := c.tree.Get(key, info.Default)
		fmt.Fprintf(w, "%s=\"%s\"", key, value)
		if printDefaults {
			fmt.Fprintf(w, " # default: \"%s\"", info.Default)
		}
		fmt.Fprint(w, "\n")
	}
}
