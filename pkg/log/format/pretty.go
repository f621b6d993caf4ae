package format

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/pkg/log"
)

const defaultPrettyTimestampFormat = "15:04:05.000"

var _ log.Formatter = new(PrettyFormatter)

// PrettyFormatter writes human readable, optionally colored lines:
//
//	15:04:05.000 INFO   [api] message key=value
type PrettyFormatter struct {
	// DisableTimestamp disables the leading timestamp.
	DisableTimestamp bool

	// DisableColors forces plain output.
	DisableColors bool

	TimestampFormat string

	colorScheme log.CompiledColorScheme
}

// NewPrettyFormatter returns a new PrettyFormatter instance with default values.
func NewPrettyFormatter() *PrettyFormatter {
	return &PrettyFormatter{
		TimestampFormat: defaultPrettyTimestampFormat,
		colorScheme:     log.DefaultColorScheme.Compile(),
	}
}

// Name implements log.Formatter.
func (formatter *PrettyFormatter) Name() string {
	return PrettyFormatName
}

// Format implements log.Formatter.
func (formatter *PrettyFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entryBuffer(entry)

	var (
		level     = strings.ToUpper(fmt.Sprintf("%-6s ", entry.Level))
		prefix    string
		timestamp string
		msg       = entry.Message
	)

	if val, ok := entry.Fields[log.FieldKeyPrefix].(string); ok && val != "" {
		prefix = fmt.Sprintf("[%s] ", val)
	}

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		timestamp = entry.Time.Format(formatter.TimestampFormat) + " "
	}

	if formatter.DisableColors {
		msg = log.RemoveAllANSISeq(msg)
	} else {
		level = formatter.colorScheme.LevelColorFunc(entry.Level)(level)
		timestamp = formatter.colorScheme.ColorFunc(log.TimestampStyle)(timestamp)

		if prefix != "" {
			prefix = log.PrefixColorFunc(prefix)(prefix)
		}
	}

	if _, err := fmt.Fprintf(buf, "%s%s%s%s", timestamp, level, prefix, msg); err != nil {
		return nil, errors.New(err)
	}

	for _, key := range entry.Fields.Keys(log.FieldKeyPrefix) {
		if err := appendKeyValue(buf, key, entry.Fields[key], true); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, errors.New(err)
	}

	return buf.Bytes(), nil
}
