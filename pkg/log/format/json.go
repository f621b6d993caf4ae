package format

import (
	"encoding/json"
	"time"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/pkg/log"
)

var _ log.Formatter = new(JSONFormatter)

// JSONFormatter writes one JSON object per line.
type JSONFormatter struct {
	DisableTimestamp bool
	TimestampFormat  string
}

// NewJSONFormatter returns a new JSONFormatter instance with default values.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Name implements log.Formatter.
func (formatter *JSONFormatter) Name() string {
	return JSONFormatName
}

// Format implements log.Formatter.
func (formatter *JSONFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entryBuffer(entry)

	fields := make(log.Fields, len(entry.Fields)+3) //nolint:mnd

	for key, val := range entry.Fields {
		switch val := val.(type) {
		case error:
			// Otherwise errors are ignored by `encoding/json`
			fields[key] = val.Error()
		default:
			fields[key] = val
		}
	}

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		fields[log.FieldKeyTime] = entry.Time.Format(formatter.TimestampFormat)
	}

	fields[log.FieldKeyMsg] = log.RemoveAllANSISeq(entry.Message)
	fields[log.FieldKeyLevel] = entry.Level.String()

	if err := json.NewEncoder(buf).Encode(fields); err != nil {
		return nil, errors.Errorf("failed to marshal fields to JSON, %w", err)
	}

	return buf.Bytes(), nil
}
