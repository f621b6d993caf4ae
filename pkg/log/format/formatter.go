// Package format implements the log formats selectable through `--log-format`.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/pkg/log"
	"github.com/mattn/go-isatty"
)

const (
	PrettyFormatName   = "pretty"
	KeyValueFormatName = "key-value"
	JSONFormatName     = "json"
	BareFormatName     = "bare"
)

// Names returns all supported format names.
func Names() []string {
	return []string{PrettyFormatName, KeyValueFormatName, JSONFormatName, BareFormatName}
}

// ParseFormat returns the formatter registered under name. Colors are disabled when
// noColor is set or when out is not a terminal.
func ParseFormat(name string, out io.Writer, noColor bool) (log.Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if !noColor && !IsTerminal(out) {
		noColor = true
	}

	switch name {
	case "", PrettyFormatName:
		formatter := NewPrettyFormatter()
		formatter.DisableColors = noColor

		return formatter, nil
	case KeyValueFormatName:
		return NewKeyValueFormatter(), nil
	case JSONFormatName:
		return NewJSONFormatter(), nil
	case BareFormatName:
		return NewBareFormatter(), nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s", name, strings.Join(Names(), ", "))
}

// IsTerminal reports whether out is attached to a terminal.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func entryBuffer(entry *log.Entry) *bytes.Buffer {
	if entry.Buffer != nil {
		return entry.Buffer
	}

	return new(bytes.Buffer)
}

// appendKeyValue writes ` key=value` to buf, quoting values that contain spaces or quotes.
func appendKeyValue(buf *bytes.Buffer, key string, value any, withSpace bool) error {
	str := fmt.Sprint(value)
	if err, ok := value.(error); ok {
		str = err.Error()
	}

	if needsQuoting(str) {
		str = fmt.Sprintf("%q", str)
	}

	keyVal := key + "=" + str
	if withSpace {
		keyVal = " " + keyVal
	}

	if _, err := buf.WriteString(keyVal); err != nil {
		return errors.New(err)
	}

	return nil
}

func needsQuoting(str string) bool {
	if str == "" {
		return true
	}

	return slices.ContainsFunc([]rune(str), func(ch rune) bool {
		return ch == ' ' || ch == '"' || ch == '=' || ch == '\t' || ch == '\n'
	})
}
