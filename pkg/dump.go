package pkg

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/provide-io/rvglsave/pkg/rvgl/progress"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// Summary is a serializable view of a session.
type Summary struct {
	Profile  string         `yaml:"profile" json:"profile"`
	Selected string         `yaml:"selected,omitempty" json:"selected,omitempty"`
	Levels   []LevelSummary `yaml:"levels" json:"levels"`
	Stunts   []StuntSummary `yaml:"stunts" json:"stunts"`
	Warnings []string       `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

type LevelSummary struct {
	Name       string          `yaml:"name" json:"name"`
	InnerName  string          `yaml:"inner_name" json:"inner_name"`
	Completion string          `yaml:"completion" json:"completion"`
	Flags      map[string]bool `yaml:"flags" json:"flags"`
}

type StuntSummary struct {
	Name       string `yaml:"name" json:"name"`
	InnerName  string `yaml:"inner_name" json:"inner_name"`
	TotalStars int    `yaml:"total_stars" json:"total_stars"`
	Found      []int  `yaml:"found" json:"found"`
}

// FlagKey names a flag the way summaries and the CLI show it.
func FlagKey(i int) string {
	f := savefile.Flags[i]
	return fmt.Sprintf("%s (%s)", f.Label, f.Sub)
}

// Summarize captures the session contents.
func Summarize(s *progress.Session) *Summary {
	sum := &Summary{
		Profile: s.ProfileName(),
		Levels:  []LevelSummary{},
		Stunts:  []StuntSummary{},
	}
	if sel := s.Selection(); !sel.IsEmpty() {
		sum.Selected = sel.String()
	}

	for _, e := range s.Levels() {
		ls := LevelSummary{
			Name:       e.Name,
			InnerName:  e.InnerName,
			Completion: string(e.Completion()),
			Flags:      make(map[string]bool, savefile.FlagCount),
		}
		for i, on := range e.Flags {
			ls.Flags[FlagKey(i)] = on
		}
		sum.Levels = append(sum.Levels, ls)
	}

	for _, e := range s.Stunts() {
		ss := StuntSummary{
			Name:       e.Name,
			InnerName:  e.InnerName,
			TotalStars: e.TotalStars,
			Found:      []int{},
		}
		for i, on := range e.Stars {
			if on {
				ss.Found = append(ss.Found, i)
			}
		}
		sum.Stunts = append(sum.Stunts, ss)
	}

	for _, w := range s.Warnings() {
		sum.Warnings = append(sum.Warnings, w.Error())
	}
	return sum
}

// DumpYAML renders the session summary as YAML.
func DumpYAML(s *progress.Session) ([]byte, error) {
	return yaml.Marshal(Summarize(s))
}

// DumpJSON renders the session summary as indented JSON.
func DumpJSON(s *progress.Session) ([]byte, error) {
	return json.MarshalIndent(Summarize(s), "", "  ")
}
