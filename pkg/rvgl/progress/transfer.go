package progress

import (
	"fmt"

	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// MemberError is a member Import had to skip.
type MemberError struct {
	Path string
	Err  error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}

// ImportReport describes what Import did with each archive member.
type ImportReport struct {
	Levels   int
	Stunts   int
	Ignored    []string       // members that are not save records
	Failures   []*MemberError // records that failed to decode
	Duplicates []string       // records replaced by a later member of the same name
}

// Imported counts the entries created.
func (r *ImportReport) Imported() int {
	return r.Levels + r.Stunts
}

// Import replaces the session contents with the records found in members.
// Members that fail to decode are reported and skipped. The profile name
// comes from the first record decoded; without one the current name is
// kept. The selection moves to the first level, else the first stunt.
func (s *Session) Import(members []archive.Member) *ImportReport {
	s.clearEntries()
	report := &ImportReport{}
	profile := ""

	for _, m := range members {
		kind, name, ok := savefile.ParseMemberName(m.Name)
		if !ok {
			report.Ignored = append(report.Ignored, m.Name)
			continue
		}

		var recordProfile string
		switch kind {
		case savefile.KindLevel:
			r, err := savefile.UnpackLevel(m.Data)
			if err != nil {
				s.skip(report, m.Name, err)
				continue
			}
			if _, dup := s.levels.get(name); dup {
				s.duplicate(report, kind, name)
			} else {
				report.Levels++
			}
			s.levels.put(name, &LevelEntry{Name: name, InnerName: r.InnerName, Flags: r.Flags})
			recordProfile = r.Profile

		case savefile.KindStunt:
			r, err := savefile.UnpackStunt(m.Data)
			if err != nil {
				s.skip(report, m.Name, err)
				continue
			}
			if _, dup := s.stunts.get(name); dup {
				s.duplicate(report, kind, name)
			} else {
				report.Stunts++
			}
			s.stunts.put(name, &StuntEntry{
				Name:       name,
				InnerName:  r.InnerName,
				TotalStars: int(r.Total),
				Stars:      r.Stars,
			})
			recordProfile = r.Profile
		}

		if profile == "" {
			profile = recordProfile
		}
	}

	if profile != "" {
		s.profile = profile
	}
	s.selectFirst()

	s.logger.Info("📥 Imported archive",
		"levels", report.Levels,
		"stunts", report.Stunts,
		"ignored", len(report.Ignored),
		"failed", len(report.Failures),
		"duplicates", len(report.Duplicates),
		"profile", s.profile,
	)
	return report
}

func (s *Session) skip(report *ImportReport, path string, err error) {
	s.logger.Warn("⚠️ Skipping malformed member", "member", path, "error", err)
	report.Failures = append(report.Failures, &MemberError{Path: path, Err: err})
}

func (s *Session) duplicate(report *ImportReport, kind savefile.Kind, name string) {
	file := kind.FileName(name)
	s.logger.Warn("⚠️ Duplicate record, keeping the later one", "entry", file)
	report.Duplicates = append(report.Duplicates, file)
}

// EncodeEntry packs a single entry into its record bytes.
func (s *Session) EncodeEntry(kind savefile.Kind, name string) ([]byte, error) {
	switch kind {
	case savefile.KindLevel:
		e, err := s.level(name)
		if err != nil {
			return nil, err
		}
		return e.record(s.profile).Pack(), nil
	case savefile.KindStunt:
		e, err := s.stunt(name)
		if err != nil {
			return nil, err
		}
		return e.record(s.profile).Pack(), nil
	default:
		return nil, fmt.Errorf("cannot encode entry of kind %s", kind)
	}
}

// Export packs every entry, levels first, each group in insertion order.
func (s *Session) Export() []archive.Member {
	members := make([]archive.Member, 0, s.Len())
	for _, e := range s.levels.all() {
		members = append(members, archive.Member{
			Name: savefile.KindLevel.FileName(e.Name),
			Data: e.record(s.profile).Pack(),
		})
	}
	for _, e := range s.stunts.all() {
		members = append(members, archive.Member{
			Name: savefile.KindStunt.FileName(e.Name),
			Data: e.record(s.profile).Pack(),
		})
	}

	s.logger.Debug("📤 Exported records", "count", len(members))
	return members
}
