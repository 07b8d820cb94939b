package progress

import (
	"fmt"
	"strings"

	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// AddLevel creates a level entry unless one exists, and selects it. The
// new entry's inner name defaults to its name.
func (s *Session) AddLevel(name string) (*LevelEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, rverrors.ErrEmptyName
	}

	e, ok := s.levels.get(name)
	if !ok {
		e = &LevelEntry{Name: name, InnerName: name}
		s.levels.put(name, e)
		s.logger.Debug("➕ Added level", "name", name)
	}
	s.selection = Selection{Kind: savefile.KindLevel, Name: name}
	return e, nil
}

// AddStunt creates a stunt entry with no stars unless one exists, and
// selects it.
func (s *Session) AddStunt(name string) (*StuntEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, rverrors.ErrEmptyName
	}

	e, ok := s.stunts.get(name)
	if !ok {
		e = &StuntEntry{Name: name, InnerName: name}
		s.stunts.put(name, e)
		s.logger.Debug("➕ Added stunt", "name", name)
	}
	s.selection = Selection{Kind: savefile.KindStunt, Name: name}
	return e, nil
}

// Add dispatches to AddLevel or AddStunt.
func (s *Session) Add(kind savefile.Kind, name string) error {
	var err error
	switch kind {
	case savefile.KindLevel:
		_, err = s.AddLevel(name)
	case savefile.KindStunt:
		_, err = s.AddStunt(name)
	default:
		err = fmt.Errorf("cannot add entry of kind %s", kind)
	}
	return err
}

// Remove deletes an entry. If it was selected, the selection falls back
// to the first remaining entry.
func (s *Session) Remove(kind savefile.Kind, name string) bool {
	var removed bool
	switch kind {
	case savefile.KindLevel:
		removed = s.levels.remove(name)
	case savefile.KindStunt:
		removed = s.stunts.remove(name)
	}
	if !removed {
		return false
	}

	s.logger.Debug("➖ Removed entry", "kind", kind, "name", name)
	if s.selection == (Selection{Kind: kind, Name: name}) {
		s.selectFirst()
	}
	return true
}

func (s *Session) level(name string) (*LevelEntry, error) {
	e, ok := s.levels.get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rverrors.ErrUnknownEntry, savefile.KindLevel.FileName(name))
	}
	return e, nil
}

func (s *Session) stunt(name string) (*StuntEntry, error) {
	e, ok := s.stunts.get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rverrors.ErrUnknownEntry, savefile.KindStunt.FileName(name))
	}
	return e, nil
}

// SetFlag sets flag i of a level.
func (s *Session) SetFlag(name string, i int, on bool) (*LevelEntry, error) {
	e, err := s.level(name)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= savefile.FlagCount {
		return nil, &rverrors.IndexError{Field: "flag", Index: i, Limit: savefile.FlagCount}
	}
	e.Flags[i] = on
	return e, nil
}

// SetLevelFlags sets all six flags of one level.
func (s *Session) SetLevelFlags(name string, on bool) (*LevelEntry, error) {
	e, err := s.level(name)
	if err != nil {
		return nil, err
	}
	for i := range e.Flags {
		e.Flags[i] = on
	}
	return e, nil
}

// SetStar sets star i of a stunt. Any index below 64 is accepted; stars
// at or past the total are cleared by the next SetTotalStars.
func (s *Session) SetStar(name string, i int, on bool) (*StuntEntry, error) {
	e, err := s.stunt(name)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= savefile.MaxStars {
		return nil, &rverrors.IndexError{Field: "star", Index: i, Limit: savefile.MaxStars}
	}
	e.Stars[i] = on
	return e, nil
}

// SetTotalStars clamps n to [0, 64] and clears every star at or past it.
func (s *Session) SetTotalStars(name string, n int) (*StuntEntry, error) {
	e, err := s.stunt(name)
	if err != nil {
		return nil, err
	}
	n = max(0, min(n, savefile.MaxStars))
	e.TotalStars = n
	for i := n; i < savefile.MaxStars; i++ {
		e.Stars[i] = false
	}
	return e, nil
}

// SetStuntStars sets every star below the total and clears the rest.
func (s *Session) SetStuntStars(name string, on bool) (*StuntEntry, error) {
	e, err := s.stunt(name)
	if err != nil {
		return nil, err
	}
	fillStars(e, on)
	return e, nil
}

func fillStars(e *StuntEntry, on bool) {
	for i := range e.Stars {
		e.Stars[i] = on && i < e.TotalStars
	}
}

// SetAll sets every flag of every level and every star of every stunt.
func (s *Session) SetAll(on bool) {
	for _, e := range s.levels.all() {
		for i := range e.Flags {
			e.Flags[i] = on
		}
	}
	for _, e := range s.stunts.all() {
		fillStars(e, on)
	}
	s.logger.Debug("🔓 Set everything", "on", on, "levels", s.levels.len(), "stunts", s.stunts.len())
}

// SetInnerName stores the label embedded in an entry's record. A non-nil
// warning means the value will be cut on export; it is stored anyway.
func (s *Session) SetInnerName(kind savefile.Kind, name, value string) (*rverrors.TruncationWarning, error) {
	switch kind {
	case savefile.KindLevel:
		e, err := s.level(name)
		if err != nil {
			return nil, err
		}
		e.InnerName = value
	case savefile.KindStunt:
		e, err := s.stunt(name)
		if err != nil {
			return nil, err
		}
		e.InnerName = value
	default:
		return nil, fmt.Errorf("%w: %s", rverrors.ErrUnknownEntry, name)
	}
	return savefile.CheckText(innerField(kind, name), value), nil
}
