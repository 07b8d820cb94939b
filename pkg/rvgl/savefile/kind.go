package savefile

import "strings"

// Kind identifies which record layout a member holds.
type Kind int

const (
	KindNone Kind = iota
	KindLevel
	KindStunt
)

func (k Kind) String() string {
	switch k {
	case KindLevel:
		return "level"
	case KindStunt:
		return "stunt"
	default:
		return "unknown"
	}
}

// Suffix returns the member file extension for the kind, dot included.
func (k Kind) Suffix() string {
	switch k {
	case KindLevel:
		return ".level"
	case KindStunt:
		return ".stunt"
	default:
		return ""
	}
}

// Size returns the fixed record size for the kind.
func (k Kind) Size() int {
	switch k {
	case KindLevel:
		return LevelSize
	case KindStunt:
		return StuntSize
	default:
		return 0
	}
}

// ChecksumOffset returns where the kind stores its CRC.
func (k Kind) ChecksumOffset() int {
	switch k {
	case KindLevel:
		return LevelChecksumOffset
	case KindStunt:
		return StuntChecksumOffset
	default:
		return 0
	}
}

// FileName builds the archive member name for an entry.
func (k Kind) FileName(name string) string {
	return name + k.Suffix()
}

// ParseKind accepts "level" or "stunt".
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "level":
		return KindLevel, true
	case "stunt":
		return KindStunt, true
	default:
		return KindNone, false
	}
}

// ParseMemberName maps an archive member path to a record kind and entry
// name. Any directory prefix (either slash) is dropped. Members with other
// extensions return ok == false.
func ParseMemberName(path string) (kind Kind, name string, ok bool) {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	for _, k := range []Kind{KindLevel, KindStunt} {
		if name := strings.TrimSuffix(base, k.Suffix()); name != base && name != "" {
			return k, name, true
		}
	}
	return KindNone, "", false
}
