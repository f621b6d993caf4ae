package format

import (
	"time"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/pkg/log"
)

var _ log.Formatter = new(KeyValueFormatter)

// KeyValueFormatter writes logfmt style lines.
type KeyValueFormatter struct {
	DisableTimestamp bool
	TimestampFormat  string
}

// NewKeyValueFormatter returns a new KeyValueFormatter instance with default values.
func NewKeyValueFormatter() *KeyValueFormatter {
	return &KeyValueFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Name implements log.Formatter.
func (formatter *KeyValueFormatter) Name() string {
	return KeyValueFormatName
}

// Format implements log.Formatter.
func (formatter *KeyValueFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entryBuffer(entry)

	if !formatter.DisableTimestamp {
		if err := appendKeyValue(buf, log.FieldKeyTime, entry.Time.Format(formatter.TimestampFormat), false); err != nil {
			return nil, err
		}

		if err := buf.WriteByte(' '); err != nil {
			return nil, errors.New(err)
		}
	}

	if err := appendKeyValue(buf, log.FieldKeyLevel, entry.Level.String(), false); err != nil {
		return nil, err
	}

	if val, ok := entry.Fields[log.FieldKeyPrefix]; ok {
		if err := appendKeyValue(buf, log.FieldKeyPrefix, val, true); err != nil {
			return nil, err
		}
	}

	if err := appendKeyValue(buf, log.FieldKeyMsg, log.RemoveAllANSISeq(entry.Message), true); err != nil {
		return nil, err
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
