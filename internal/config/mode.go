package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFileMode is used for archives and backups unless file_mode is set
const DefaultFileMode os.FileMode = 0o644

// ParseFileMode parses an octal permission string such as "644", "0644"
// or "0o644". Empty means DefaultFileMode.
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFileMode, nil
	}
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if digits == "" {
		digits = "0"
	}

	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if val > 0o777 {
		return 0, fmt.Errorf("invalid file mode %q: only permission bits are allowed", s)
	}
	// Archives must stay readable by the owner
	if val&0o600 != 0o600 {
		return 0, fmt.Errorf("invalid file mode %q: owner needs read and write", s)
	}
	return os.FileMode(val), nil
}

// FormatFileMode renders a mode the way ParseFileMode accepts it.
func FormatFileMode(m os.FileMode) string {
	return fmt.Sprintf("0%o", m.Perm())
}
