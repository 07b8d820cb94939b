package archive

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
)

func sampleMembers() []Member {
	return []Member{
		{Name: "garden1.level", Data: bytes.Repeat([]byte{0x11}, 72)},
		{Name: "stunts.stunt", Data: bytes.Repeat([]byte{0x22}, 140)},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, c := range []Compression{Store, Deflate} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Write(sampleMembers(), Options{Compression: c})
			require.NoError(t, err)

			members, err := Read(data)
			require.NoError(t, err)
			assert.Equal(t, sampleMembers(), members)
		})
	}
}

func TestWriteIsReproducible(t *testing.T) {
	first, err := Write(sampleMembers(), Options{})
	require.NoError(t, err)
	second, err := Write(sampleMembers(), Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteUsesRequestedMethodAndTime(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := Write(sampleMembers(), Options{Compression: Deflate, Modified: stamp})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	for _, f := range zr.File {
		assert.Equal(t, zip.Deflate, f.Method)
		assert.True(t, f.Modified.Equal(stamp), "modified %v", f.Modified)
	}
}

func TestWriteEmpty(t *testing.T) {
	_, err := Write(nil, Options{})
	assert.ErrorIs(t, err, rverrors.ErrEmptyArchive)
}

func TestReadSkipsDirectories(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("profiles/")
	require.NoError(t, err)
	w, err := zw.Create("profiles/roof.level")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	members, err := Read(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []Member{{Name: "profiles/roof.level", Data: []byte("data")}}, members)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, Store, c)

	c, err = ParseCompression("Deflate")
	require.NoError(t, err)
	assert.Equal(t, Deflate, c)

	_, err = ParseCompression("xz")
	assert.Error(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	data, err := Write(sampleMembers(), Options{})
	require.NoError(t, err)

	for _, level := range []int{0, MinBackupLevel, 5, MaxBackupLevel} {
		packed, err := Backup(data, level)
		require.NoError(t, err, "level %d", level)
		assert.NotEqual(t, data, packed)

		restored, err := RestoreBackup(packed)
		require.NoError(t, err)
		assert.Equal(t, data, restored)
	}
}

func TestBackupRejectsBadLevel(t *testing.T) {
	for _, level := range []int{-1, 10} {
		_, err := Backup([]byte("PK"), level)
		assert.Error(t, err, "level %d", level)
	}
}

func TestRestoreBackupRejectsGarbage(t *testing.T) {
	_, err := RestoreBackup([]byte("BZh9 but not really"))
	assert.Error(t, err)
}
