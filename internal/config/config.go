// Package config loads rvglsave defaults from an optional ini file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/provide-io/rvglsave/pkg/logging"
	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
)

const (
	// DefaultFile is read from the working directory when no path is given
	DefaultFile = "rvglsave.ini"

	EnvProfile = "RVGLSAVE_PROFILE"
)

// Config holds settings shared by every command.
type Config struct {
	LogLevel    string
	Profile     string
	Compression string
	Backup      bool
	BackupLevel int
	FileMode    string
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		LogLevel:    logging.DefaultLevel,
		Compression: archive.Store.String(),
		Backup:      true,
		BackupLevel: archive.DefaultBackupLevel,
		FileMode:    FormatFileMode(DefaultFileMode),
	}
}

// Load reads path (or DefaultFile when path is empty) on top of the
// defaults, then applies environment overrides. A missing DefaultFile is
// not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = DefaultFile
	}
	if err := cfg.loadFile(file); err != nil {
		if path != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// Settings live in the default section
	sec := f.Section("")
	c.LogLevel = sec.Key("log_level").MustString(c.LogLevel)
	c.Profile = sec.Key("profile").MustString(c.Profile)
	c.Compression = sec.Key("compression").MustString(c.Compression)
	c.FileMode = sec.Key("file_mode").MustString(c.FileMode)
	if sec.HasKey("backup_level") {
		n, err := sec.Key("backup_level").Int()
		if err != nil {
			return fmt.Errorf("parse %s: backup_level: %w", path, err)
		}
		c.BackupLevel = n
	}
	if sec.HasKey("backup") {
		b, err := sec.Key("backup").Bool()
		if err != nil {
			return fmt.Errorf("parse %s: backup: %w", path, err)
		}
		c.Backup = b
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(logging.EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		c.Profile = v
	}
}

// Validate rejects settings no command could honour.
func (c *Config) Validate() error {
	if _, err := archive.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.BackupLevel < archive.MinBackupLevel || c.BackupLevel > archive.MaxBackupLevel {
		return fmt.Errorf("invalid config: backup_level %d outside [%d, %d]",
			c.BackupLevel, archive.MinBackupLevel, archive.MaxBackupLevel)
	}
	if _, err := ParseFileMode(c.FileMode); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return nil
}

// Perm is the validated file mode for written archives.
func (c *Config) Perm() os.FileMode {
	m, err := ParseFileMode(c.FileMode)
	if err != nil {
		return DefaultFileMode
	}
	return m
}

// ArchiveOptions converts the settings for archive.Write.
func (c *Config) ArchiveOptions() archive.Options {
	comp, _ := archive.ParseCompression(c.Compression)
	return archive.Options{Compression: comp}
}
