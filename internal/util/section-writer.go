package util

import (
	"bytes"
	"io"
)

// SectionWriter writes a header followed by indented output. The header is written once,
// before the first output or on Close when there was none. Empty lines are not indented.
type SectionWriter struct {
	writer io.Writer
	header string
	indent string

	headerDone bool
	midLine    bool
}

// NewSectionWriter returns a SectionWriter for header, which should end with a newline.
func NewSectionWriter(writer io.Writer, header, indent string) *SectionWriter {
	return &SectionWriter{writer: writer, header: header, indent: indent}
}

func (section *SectionWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	if !section.headerDone {
		buf.WriteString(section.header)
		section.headerDone = true
	}

	for _, b := range p {
		if !section.midLine && b != '\n' {
			buf.WriteString(section.indent)
		}

		buf.WriteByte(b)

		section.midLine = b != '\n'
	}

	if _, err := section.writer.Write(buf.Bytes()); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close writes the header if nothing was written yet and ends an unterminated last line.
// The underlying writer is not closed.
func (section *SectionWriter) Close() error {
	var tail string

	if !section.headerDone {
		tail = section.header
		section.headerDone = true
	}

	if section.midLine {
		tail += "\n"
		section.midLine = false
	}

	if tail == "" {
		return nil
	}

	_, err := io.WriteString(section.writer, tail)

	return err
}
