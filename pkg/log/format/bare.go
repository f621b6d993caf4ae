package format

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/pkg/log"
)

var _ log.Formatter = new(BareFormatter)

// BareFormatter writes `LEVEL message` without timestamps or colors.
type BareFormatter struct{}

func NewBareFormatter() *BareFormatter {
	return &BareFormatter{}
}

// Name implements log.Formatter.
func (formatter *BareFormatter) Name() string {
	return BareFormatName
}

// Format implements log.Formatter.
func (formatter *BareFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entryBuffer(entry)

	level := strings.ToUpper(fmt.Sprintf("%-4s", entry.Level.ShortName()))

	if _, err := fmt.Fprintf(buf, "%s %s", level, log.RemoveAllANSISeq(entry.Message)); err != nil {
		return nil, errors.New(err)
	}

	if val, ok := entry.Fields[log.FieldKeyPrefix].(string); ok && val != "" {
		if _, err := fmt.Fprintf(buf, "\t prefix=[%s]", val); err != nil {
			return nil, errors.New(err)
		}
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, errors.New(err)
	}

	return buf.Bytes(), nil
}
