package pkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
	"github.com/provide-io/rvglsave/pkg/rvgl/progress"
)

// FilePerms is the mode for archives and backups when SaveOptions.Perm is zero
const FilePerms os.FileMode = 0o644

// SaveOptions controls SaveArchive.
type SaveOptions struct {
	Archive archive.Options
	// Backup keeps the file being replaced as path + archive.BackupSuffix
	Backup bool
	// BackupLevel is the bzip2 level; zero means archive.DefaultBackupLevel
	BackupLevel int
	Perm        os.FileMode
}

// DefaultArchiveName names an export after its profile.
func DefaultArchiveName(profile string) string {
	if profile == "" {
		return "saves.zip"
	}
	return profile + ".zip"
}

// OpenArchive reads a whole archive file into a new session. Malformed
// members are listed in the report, not returned as an error.
func OpenArchive(path string, logger hclog.Logger) (*progress.Session, *progress.ImportReport, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read archive: %w", err)
	}

	members, err := archive.Read(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	logger.Debug("Read archive", "path", path, "size", len(data), "members", len(members))

	session := progress.NewWithLogger(logger.Named("session"))
	report := session.Import(members)
	return session, report, nil
}

// SaveArchive exports the session to path in one write. With Backup set
// and path already present, the old file is first kept as a bzip2 backup.
func SaveArchive(session *progress.Session, path string, opts SaveOptions, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	for _, w := range session.Warnings() {
		logger.Warn("⚠️ Field will be truncated", "field", w.Field, "bytes", w.Size, "limit", w.Limit)
	}

	data, err := archive.Write(session.Export(), opts.Archive)
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	perm := opts.Perm
	if perm == 0 {
		perm = FilePerms
	}

	if opts.Backup {
		if err := backupExisting(path, opts.BackupLevel, perm, logger); err != nil {
			return err
		}
	}

	if err := writeFileAtomic(path, data, perm, logger); err != nil {
		return err
	}

	logger.Info("💾 Saved archive", "path", path, "size", len(data), "entries", session.Len())
	return nil
}

func backupExisting(path string, level int, perm os.FileMode, logger hclog.Logger) error {
	previous, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read previous archive: %w", err)
	}

	packed, err := archive.Backup(previous, level)
	if err != nil {
		return fmt.Errorf("failed to compress backup: %w", err)
	}

	backupPath := path + archive.BackupSuffix
	if err := writeFileAtomic(backupPath, packed, perm, logger); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Kept previous archive", "backup", backupPath, "size", len(packed))
	return nil
}

// writeFileAtomic writes to a temp file beside path and renames it over
// path, so a failed write never leaves a half-written archive.
func writeFileAtomic(path string, data []byte, perm os.FileMode, logger hclog.Logger) error {
	tempPath := fmt.Sprintf("%s.tmp.%d.%d", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		logger.Debug("Cleaned up temp file after error", "temp_path", tempPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
