package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/rvglsave/pkg/logging"
	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
)

func writeIni(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rvglsave.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "")
	t.Setenv(EnvProfile, "")
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeIni(t, "log_level = debug\nprofile = Player\ncompression = deflate\nbackup = false\nbackup_level = 3\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Player", cfg.Profile)
	assert.Equal(t, "deflate", cfg.Compression)
	assert.False(t, cfg.Backup)
	assert.Equal(t, 3, cfg.BackupLevel)
	assert.Equal(t, archive.Deflate, cfg.ArchiveOptions().Compression)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeIni(t, "log_level = debug\nprofile = Player\n")
	t.Setenv(logging.EnvLogLevel, "ERROR")
	t.Setenv(EnvProfile, "Racer")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "Racer", cfg.Profile)
	assert.True(t, cfg.Backup)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeIni(t, "compression = lzma\n"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "backup = perhaps\n"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "backup_level = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "backup_level = fast\n"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "file_mode = 0400\n"))
	assert.Error(t, err)
}

func TestFileMode(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeIni(t, "file_mode = 0o600\n"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), cfg.Perm())
	assert.Equal(t, DefaultFileMode, Default().Perm())
}

func TestParseFileMode(t *testing.T) {
	tests := []struct {
		in      string
		want    os.FileMode
		wantErr bool
	}{
		{"", DefaultFileMode, false},
		{"644", 0o644, false},
		{"0644", 0o644, false},
		{"0o640", 0o640, false},
		{" 600 ", 0o600, false},
		{"0", 0, true},
		{"0400", 0, true},
		{"1777", 0, true},
		{"rw-r--r--", 0, true},
		{"089", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, FormatFileMode(got)))
		})
	}
}

func mustParse(t *testing.T, s string) os.FileMode {
	t.Helper()
	m, err := ParseFileMode(s)
	require.NoError(t, err)
	return m
}
