package progress

import (
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// LevelEntry is the editable state of one .level record.
type LevelEntry struct {
	Name      string
	InnerName string
	Flags     [savefile.FlagCount]bool
}

// Completion summarizes how many flags of a level are set.
type Completion string

const (
	CompletionNone     Completion = "none"
	CompletionPartial  Completion = "partial"
	CompletionComplete Completion = "complete"
)

// FlagsSet counts the set flags.
func (e *LevelEntry) FlagsSet() int {
	n := 0
	for _, on := range e.Flags {
		if on {
			n++
		}
	}
	return n
}

// Completion reports whether none, some or all flags are set.
func (e *LevelEntry) Completion() Completion {
	switch e.FlagsSet() {
	case 0:
		return CompletionNone
	case savefile.FlagCount:
		return CompletionComplete
	default:
		return CompletionPartial
	}
}

func (e *LevelEntry) record(profile string) *savefile.LevelRecord {
	return &savefile.LevelRecord{
		Profile:   profile,
		InnerName: e.InnerName,
		Flags:     e.Flags,
	}
}

// StuntEntry is the editable state of one .stunt record. Stars at or past
// TotalStars are kept false by every Session mutation that moves the total.
type StuntEntry struct {
	Name       string
	InnerName  string
	TotalStars int
	Stars      [savefile.MaxStars]bool
}

// StarsFound counts the set stars below TotalStars.
func (e *StuntEntry) StarsFound() int {
	n := 0
	for i := 0; i < e.TotalStars && i < savefile.MaxStars; i++ {
		if e.Stars[i] {
			n++
		}
	}
	return n
}

func (e *StuntEntry) record(profile string) *savefile.StuntRecord {
	return &savefile.StuntRecord{
		Profile:   profile,
		InnerName: e.InnerName,
		Total:     uint32(e.TotalStars),
		Stars:     e.Stars,
	}
}
