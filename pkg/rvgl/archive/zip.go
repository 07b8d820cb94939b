// Package archive moves save records in and out of zip containers. It
// works on whole in-memory buffers only.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
)

// Member is one named blob of an archive.
type Member struct {
	Name string
	Data []byte
}

// Compression selects how members are stored.
type Compression int

const (
	// Store writes members uncompressed, which keeps output reproducible
	Store Compression = iota
	Deflate
)

func (c Compression) String() string {
	switch c {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// ParseCompression accepts "store" or "deflate"; empty means Store.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "store":
		return Store, nil
	case "deflate":
		return Deflate, nil
	default:
		return Store, fmt.Errorf("unknown compression: %s", s)
	}
}

func (c Compression) method() uint16 {
	if c == Deflate {
		return zip.Deflate
	}
	return zip.Store
}

// Options controls Write.
type Options struct {
	Compression Compression
	// Modified is stamped on every member; the zero value means the
	// earliest MS-DOS date, so identical input gives identical bytes.
	Modified time.Time
}

var dosEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Read lists every file member of a zip buffer in directory order.
// Directory entries are skipped.
func Read(data []byte) ([]Member, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid zip archive: %w", err)
	}

	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		body, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		members = append(members, Member{Name: f.Name, Data: body})
	}

	return members, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Write assembles a zip buffer from members, in the given order.
func Write(members []Member, opts Options) ([]byte, error) {
	if len(members) == 0 {
		return nil, rverrors.ErrEmptyArchive
	}

	modified := opts.Modified
	if modified.IsZero() {
		modified = dosEpoch
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     m.Name,
			Method:   opts.Compression.method(),
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", m.Name, err)
		}
		if _, err := w.Write(m.Data); err != nil {
			return nil, fmt.Errorf("write %s: %w", m.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
