package logging

import (
	"bytes"
	"io"
)

// PrefixWriter writes a prefix before every complete line it forwards.
// Partial lines are held until their newline arrives.
type PrefixWriter struct {
	prefix []byte
	writer io.Writer
	buffer bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.buffer.Write(p)

	for {
		i := bytes.IndexByte(pw.buffer.Bytes(), '\n')
		if i < 0 {
			break
		}
		if err := pw.emit(pw.buffer.Next(i + 1)); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

func (pw *PrefixWriter) emit(line []byte) error {
	if _, err := pw.writer.Write(pw.prefix); err != nil {
		return err
	}
	_, err := pw.writer.Write(line)
	return err
}
