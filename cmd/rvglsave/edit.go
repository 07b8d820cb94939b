package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provide-io/rvglsave/pkg"
	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
	"github.com/provide-io/rvglsave/pkg/rvgl/progress"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// entryRef is a "kind:name" argument.
type entryRef struct {
	Kind savefile.Kind
	Name string
}

// toggle is a "name:index=on|off" argument.
type toggle struct {
	Name  string
	Index int
	On    bool
}

type totalEdit struct {
	Name  string
	Total int
}

type innerEdit struct {
	Ref   entryRef
	Value string
}

// editPlan holds every change requested on one edit invocation.
type editPlan struct {
	Adds    []entryRef
	Removes []entryRef
	Flags   []toggle
	Stars   []toggle
	Totals  []totalEdit
	Inners  []innerEdit

	Profile    string
	SetProfile bool
	UnlockAll  bool
	LockAll    bool
}

func parseEntryRef(s string) (entryRef, error) {
	kindStr, name, ok := strings.Cut(s, ":")
	if !ok {
		return entryRef{}, fmt.Errorf("%q: want kind:name", s)
	}
	kind, ok := savefile.ParseKind(kindStr)
	if !ok {
		return entryRef{}, fmt.Errorf("%q: kind must be level or stunt", s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entryRef{}, fmt.Errorf("%q: %w", s, rverrors.ErrEmptyName)
	}
	return entryRef{Kind: kind, Name: name}, nil
}

func parseState(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "1", "true", "yes":
		return true, nil
	case "off", "0", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("state %q: want on or off", s)
}

func parseToggle(s string) (toggle, error) {
	lhs, state, ok := strings.Cut(s, "=")
	if !ok {
		return toggle{}, fmt.Errorf("%q: want name:index=on|off", s)
	}
	name, idx, ok := strings.Cut(lhs, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return toggle{}, fmt.Errorf("%q: want name:index=on|off", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return toggle{}, fmt.Errorf("%q: bad index: %w", s, err)
	}
	on, err := parseState(state)
	if err != nil {
		return toggle{}, fmt.Errorf("%q: %w", s, err)
	}
	return toggle{Name: strings.TrimSpace(name), Index: i, On: on}, nil
}

func parseTotal(s string) (totalEdit, error) {
	name, n, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return totalEdit{}, fmt.Errorf("%q: want stunt=n", s)
	}
	total, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		return totalEdit{}, fmt.Errorf("%q: bad total: %w", s, err)
	}
	return totalEdit{Name: strings.TrimSpace(name), Total: total}, nil
}

// parseInner splits "kind:name=value". The value is kept verbatim and may
// be empty or contain further '=' signs.
func parseInner(s string) (innerEdit, error) {
	lhs, value, ok := strings.Cut(s, "=")
	if !ok {
		return innerEdit{}, fmt.Errorf("%q: want kind:name=value", s)
	}
	ref, err := parseEntryRef(lhs)
	if err != nil {
		return innerEdit{}, err
	}
	return innerEdit{Ref: ref, Value: value}, nil
}

// editFlags collects the raw flag values before parsing.
type editFlags struct {
	adds, removes, flags, stars, totals, inners []string

	profile   string
	unlockAll bool
	lockAll   bool
}

func (f *editFlags) plan(cmd *cobra.Command) (*editPlan, error) {
	if f.unlockAll && f.lockAll {
		return nil, fmt.Errorf("--unlock-all and --lock-all are mutually exclusive")
	}

	p := &editPlan{
		Profile:    f.profile,
		SetProfile: cmd.Flags().Changed("profile"),
		UnlockAll:  f.unlockAll,
		LockAll:    f.lockAll,
	}

	for _, s := range f.adds {
		ref, err := parseEntryRef(s)
		if err != nil {
			return nil, fmt.Errorf("--add %w", err)
		}
		p.Adds = append(p.Adds, ref)
	}
	for _, s := range f.removes {
		ref, err := parseEntryRef(s)
		if err != nil {
			return nil, fmt.Errorf("--remove %w", err)
		}
		p.Removes = append(p.Removes, ref)
	}
	for _, s := range f.flags {
		t, err := parseToggle(s)
		if err != nil {
			return nil, fmt.Errorf("--flag %w", err)
		}
		p.Flags = append(p.Flags, t)
	}
	for _, s := range f.stars {
		t, err := parseToggle(s)
		if err != nil {
			return nil, fmt.Errorf("--star %w", err)
		}
		p.Stars = append(p.Stars, t)
	}
	for _, s := range f.totals {
		t, err := parseTotal(s)
		if err != nil {
			return nil, fmt.Errorf("--total %w", err)
		}
		p.Totals = append(p.Totals, t)
	}
	for _, s := range f.inners {
		in, err := parseInner(s)
		if err != nil {
			return nil, fmt.Errorf("--inner %w", err)
		}
		p.Inners = append(p.Inners, in)
	}
	return p, nil
}

// apply runs the plan against a session: adds, removes, profile, totals,
// bulk unlock or lock, then single flags and stars so they win over the
// bulk setters. A star must lie below its stunt's total once totals are
// applied. Truncation warnings are collected, not fatal.
func (p *editPlan) apply(s *progress.Session) ([]*rverrors.TruncationWarning, error) {
	var warnings []*rverrors.TruncationWarning

	for _, ref := range p.Adds {
		if err := s.Add(ref.Kind, ref.Name); err != nil {
			return nil, err
		}
	}
	for _, ref := range p.Removes {
		if !s.Remove(ref.Kind, ref.Name) {
			return nil, fmt.Errorf("%w: %s", rverrors.ErrUnknownEntry, ref.Kind.FileName(ref.Name))
		}
	}

	if p.SetProfile {
		if w := s.SetProfileName(p.Profile); w != nil {
			warnings = append(warnings, w)
		}
	}

	for _, t := range p.Totals {
		if _, err := s.SetTotalStars(t.Name, t.Total); err != nil {
			return nil, err
		}
	}

	switch {
	case p.UnlockAll:
		s.SetAll(true)
	case p.LockAll:
		s.SetAll(false)
	}

	for _, t := range p.Flags {
		if _, err := s.SetFlag(t.Name, t.Index, t.On); err != nil {
			return nil, err
		}
	}
	for _, t := range p.Stars {
		if e, ok := s.Stunt(t.Name); ok && t.On && t.Index >= e.TotalStars && t.Index < savefile.MaxStars {
			return nil, &rverrors.IndexError{Field: "star", Index: t.Index, Limit: e.TotalStars}
		}
		if _, err := s.SetStar(t.Name, t.Index, t.On); err != nil {
			return nil, err
		}
	}
	for _, in := range p.Inners {
		w, err := s.SetInnerName(in.Ref.Kind, in.Ref.Name, in.Value)
		if err != nil {
			return nil, err
		}
		if w != nil {
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

func newEditCmd() *cobra.Command {
	var (
		f        editFlags
		output   string
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "edit ARCHIVE",
		Short: "Apply edits to an archive and write the result",
		Long: `Apply edits to an archive and write the result. Without -o the input is
replaced; the file being replaced is kept as FILE.bak.bz2 unless --no-backup.

  --add level:garden1          --remove stunt:stunts
  --flag garden1:3=on          --star stunts:12=off
  --total stunts=20            --inner level:garden1=Garden1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := f.plan(cmd)
			if err != nil {
				return err
			}

			session, report, err := pkg.OpenArchive(args[0], logger)
			if err != nil {
				return err
			}
			for _, failure := range report.Failures {
				logger.Warn("Skipped unreadable record", "member", failure.Path, "error", failure.Err)
			}

			warnings, err := plan.apply(session)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v\n", w)
			}

			if output == "" {
				output = args[0]
			}
			opts := pkg.SaveOptions{Archive: cfg.ArchiveOptions(), Backup: cfg.Backup && !noBackup, BackupLevel: cfg.BackupLevel, Perm: cfg.Perm()}
			if err := pkg.SaveArchive(session, output, opts, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries)\n", output, session.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output archive (default: replace ARCHIVE)")
	cmd.Flags().StringArrayVar(&f.adds, "add", nil, "Add an entry (kind:name)")
	cmd.Flags().StringArrayVar(&f.removes, "remove", nil, "Remove an entry (kind:name)")
	cmd.Flags().StringArrayVar(&f.flags, "flag", nil, "Set a level flag (level:index=on|off)")
	cmd.Flags().StringArrayVar(&f.stars, "star", nil, "Set a stunt star (stunt:index=on|off)")
	cmd.Flags().StringArrayVar(&f.totals, "total", nil, "Set the stars a stunt arena has (stunt=n)")
	cmd.Flags().StringArrayVar(&f.inners, "inner", nil, "Set an inner name (kind:name=value)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Set the profile name")
	cmd.Flags().BoolVar(&f.unlockAll, "unlock-all", false, "Set every flag and star")
	cmd.Flags().BoolVar(&f.lockAll, "lock-all", false, "Clear every flag and star")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not keep the replaced file")
	return cmd
}
