package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// BackupSuffix is appended to an archive path to name its backup.
const BackupSuffix = ".bak.bz2"

// Backup block-size levels accepted by bzip2 (100k to 900k blocks).
const (
	MinBackupLevel     = 1
	MaxBackupLevel     = 9
	DefaultBackupLevel = MaxBackupLevel
)

// Backup compresses an archive buffer with bzip2 at the given level so a
// previous save can be kept beside the one replacing it. Level 0 means
// DefaultBackupLevel.
func Backup(archive []byte, level int) ([]byte, error) {
	if level == 0 {
		level = DefaultBackupLevel
	}
	if level < MinBackupLevel || level > MaxBackupLevel {
		return nil, fmt.Errorf("backup level %d outside [%d, %d]", level, MinBackupLevel, MaxBackupLevel)
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(archive)/2))
	bw, err := bzip2.NewWriter(buf, &bzip2.WriterConfig{Level: level})
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	_, werr := bw.Write(archive)
	if cerr := bw.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("backup: %w", werr)
	}
	return buf.Bytes(), nil
}

// RestoreBackup reverses Backup.
func RestoreBackup(backup []byte) ([]byte, error) {
	br, err := bzip2.NewReader(bytes.NewReader(backup), &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	defer br.Close()

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("reading bzip2 data: %w", err)
	}

	return data, nil
}
