// Package progress holds the editable contents of one save archive: the
// level and stunt entries, the profile name written into every record and
// the entry currently being edited.
//
// A Session has no internal locking. It belongs to a single editing
// session; callers that share one must serialize every call.
package progress

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// Selection is the entry being edited. The zero value selects nothing.
type Selection struct {
	Kind savefile.Kind
	Name string
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Kind == savefile.KindNone
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return "(none)"
	}
	return s.Kind.FileName(s.Name)
}

// Session is the in-memory progress store.
type Session struct {
	levels    registry[LevelEntry]
	stunts    registry[StuntEntry]
	profile   string
	selection Selection
	logger    hclog.Logger
}

// New creates an empty session
func New() *Session {
	return NewWithLogger(hclog.NewNullLogger())
}

// NewWithLogger creates an empty session with a custom logger
func NewWithLogger(logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{
		levels: newRegistry[LevelEntry](),
		stunts: newRegistry[StuntEntry](),
		logger: logger,
	}
}

// Reset drops every entry, the profile name and the selection.
func (s *Session) Reset() {
	s.clearEntries()
	s.profile = ""
	s.logger.Debug("🧹 Session reset")
}

func (s *Session) clearEntries() {
	s.levels.clear()
	s.stunts.clear()
	s.selection = Selection{}
}

// ProfileName is written into every exported record.
func (s *Session) ProfileName() string {
	return s.profile
}

// SetProfileName stores name and warns when it will not fit the field.
func (s *Session) SetProfileName(name string) *rverrors.TruncationWarning {
	s.profile = name
	return savefile.CheckText("profile name", name)
}

// Level returns the named level entry.
func (s *Session) Level(name string) (*LevelEntry, bool) {
	return s.levels.get(name)
}

// Stunt returns the named stunt entry.
func (s *Session) Stunt(name string) (*StuntEntry, bool) {
	return s.stunts.get(name)
}

// Levels returns level entries in insertion order.
func (s *Session) Levels() []*LevelEntry {
	return s.levels.all()
}

// Stunts returns stunt entries in insertion order.
func (s *Session) Stunts() []*StuntEntry {
	return s.stunts.all()
}

// Len counts entries of both kinds.
func (s *Session) Len() int {
	return s.levels.len() + s.stunts.len()
}

// Has reports whether an entry of kind exists under name.
func (s *Session) Has(kind savefile.Kind, name string) bool {
	switch kind {
	case savefile.KindLevel:
		_, ok := s.levels.get(name)
		return ok
	case savefile.KindStunt:
		_, ok := s.stunts.get(name)
		return ok
	default:
		return false
	}
}

// Selection returns the entry being edited.
func (s *Session) Selection() Selection {
	return s.selection
}

// Select makes an existing entry the active one.
func (s *Session) Select(kind savefile.Kind, name string) error {
	if !s.Has(kind, name) {
		return fmt.Errorf("%w: %s", rverrors.ErrUnknownEntry, kind.FileName(name))
	}
	s.selection = Selection{Kind: kind, Name: name}
	return nil
}

// selectFirst moves the selection to the first level, else the first
// stunt, else nothing.
func (s *Session) selectFirst() {
	if name, ok := s.levels.first(); ok {
		s.selection = Selection{Kind: savefile.KindLevel, Name: name}
		return
	}
	if name, ok := s.stunts.first(); ok {
		s.selection = Selection{Kind: savefile.KindStunt, Name: name}
		return
	}
	s.selection = Selection{}
}

// Warnings lists every text field that will be cut on export.
func (s *Session) Warnings() []*rverrors.TruncationWarning {
	var out []*rverrors.TruncationWarning
	if w := savefile.CheckText("profile name", s.profile); w != nil {
		out = append(out, w)
	}
	for _, e := range s.levels.all() {
		if w := savefile.CheckText(innerField(savefile.KindLevel, e.Name), e.InnerName); w != nil {
			out = append(out, w)
		}
	}
	for _, e := range s.stunts.all() {
		if w := savefile.CheckText(innerField(savefile.KindStunt, e.Name), e.InnerName); w != nil {
			out = append(out, w)
		}
	}
	return out
}

func innerField(kind savefile.Kind, name string) string {
	return "inner name of " + kind.FileName(name)
}
