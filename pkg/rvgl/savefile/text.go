package savefile

import (
	"fmt"

	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
)

// readText returns the bytes of a fixed-size field up to the first NUL.
func readText(buf []byte, off, size int) string {
	field := buf[off : off+size]
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}

// writeText copies the UTF-8 bytes of s into a fixed-size field, truncating
// at size and NUL-padding the remainder.
func writeText(buf []byte, off int, s string, size int) {
	field := buf[off : off+size]
	n := copy(field, s)
	clear(field[n:])
}

// CheckText reports a TruncationWarning when value needs more than
// MaxTextLen bytes. The encoder keeps up to TextFieldSize bytes regardless.
func CheckText(field, value string) *rverrors.TruncationWarning {
	if len(value) <= MaxTextLen {
		return nil
	}
	return &rverrors.TruncationWarning{
		Field: field,
		Value: value,
		Size:  len(value),
		Limit: MaxTextLen,
	}
}

func checkHeader(data []byte, kind Kind, size int) error {
	if len(data) < size {
		return &rverrors.FormatError{
			Kind:   kind.String(),
			Reason: fmt.Errorf("%w: got %d bytes, want %d", rverrors.ErrRecordTooShort, len(data), size),
		}
	}
	if readText(data, OffsetMagic, len(Magic)) != Magic {
		return &rverrors.FormatError{Kind: kind.String(), Reason: rverrors.ErrInvalidMagic}
	}
	return nil
}
