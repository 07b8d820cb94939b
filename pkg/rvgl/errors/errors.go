package errors

import (
	"errors"
	"fmt"
)

var (
	// Format errors 📦
	ErrRecordTooShort = errors.New("❌ record shorter than its fixed size")
	ErrInvalidMagic   = errors.New("❌ invalid RVGL save magic")

	// Edit errors ✏️
	ErrIndexOutOfRange = errors.New("❌ index out of range")
	ErrFieldTruncated  = errors.New("⚠️ text field exceeds its byte budget")
	ErrUnknownEntry    = errors.New("❌ no such entry")
	ErrEmptyName       = errors.New("❌ entry name is empty")

	// Archive errors 🗜️
	ErrEmptyArchive = errors.New("❌ nothing to export")
)

// FormatError reports a record that could not be decoded. Import skips the
// offending member and carries on with the rest of the archive.
type FormatError struct {
	Kind   string // "level" or "stunt"
	Reason error  // ErrRecordTooShort or ErrInvalidMagic, possibly wrapped
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s record: %v", e.Kind, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Reason
}

// IndexError reports a flag or star index outside its declared range.
type IndexError struct {
	Field string
	Index int
	Limit int // valid indices are [0, Limit)
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d outside [0, %d)", e.Field, e.Index, e.Limit)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// TruncationWarning is non-fatal: the value is kept, but only the first
// Limit bytes of it survive encoding.
type TruncationWarning struct {
	Field string
	Value string
	Size  int // UTF-8 length of Value
	Limit int
}

func (w *TruncationWarning) Error() string {
	return fmt.Sprintf("%s %q is %d bytes, only %d fit", w.Field, w.Value, w.Size, w.Limit)
}

func (w *TruncationWarning) Unwrap() error {
	return ErrFieldTruncated
}
