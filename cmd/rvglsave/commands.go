package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/provide-io/rvglsave/pkg"
	"github.com/provide-io/rvglsave/pkg/rvgl/progress"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List the entries of a save archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, report, err := pkg.OpenArchive(args[0], logger)
			if err != nil {
				return err
			}
			if err := printSession(cmd.OutOrStdout(), session); err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printSession(w io.Writer, s *progress.Session) error {
	profile := s.ProfileName()
	if profile == "" {
		profile = "(unnamed)"
	}
	fmt.Fprintf(w, "Profile:   %s\n", profile)
	fmt.Fprintf(w, "Selected:  %s\n", s.Selection())

	levels := pterm.TableData{{"Level", "Inner name", "Flags", "Completion"}}
	for _, e := range s.Levels() {
		var marks strings.Builder
		for _, on := range e.Flags {
			if on {
				marks.WriteByte('x')
			} else {
				marks.WriteByte('-')
			}
		}
		levels = append(levels, []string{e.Name, e.InnerName, marks.String(), string(e.Completion())})
	}

	stunts := pterm.TableData{{"Stunt", "Inner name", "Stars", "Found"}}
	for _, e := range s.Stunts() {
		var found []string
		for i, on := range e.Stars {
			if on {
				found = append(found, fmt.Sprint(i))
			}
		}
		stunts = append(stunts, []string{
			e.Name, e.InnerName,
			pterm.Sprintf("%d/%d", e.StarsFound(), e.TotalStars),
			strings.Join(found, " "),
		})
	}

	for _, section := range []struct {
		title string
		data  pterm.TableData
	}{
		{"Levels", levels},
		{"Stunts", stunts},
	} {
		fmt.Fprintf(w, "\n%s (%d)\n", section.title, len(section.data)-1)
		if len(section.data) == 1 {
			continue
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(section.data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, table)
	}

	for _, warn := range s.Warnings() {
		fmt.Fprintf(w, "⚠️  %v\n", warn)
	}
	return nil
}

func printReport(w io.Writer, report *progress.ImportReport) {
	if len(report.Ignored) > 0 {
		fmt.Fprintf(w, "\nIgnored members: %s\n", strings.Join(report.Ignored, ", "))
	}
	if len(report.Duplicates) > 0 {
		fmt.Fprintf(w, "Replaced by a later member: %s\n", strings.Join(report.Duplicates, ", "))
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "❌ %v\n", f)
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify ARCHIVE",
		Short: "Compare stored and recomputed record checksums",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read archive: %w", err)
			}
			report, err := pkg.VerifyArchiveWithLogger(data, logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, m := range report.Members {
				switch {
				case m.Err != nil:
					fmt.Fprintf(w, "✗ %-24s %v\n", m.Name, m.Err)
				case m.OK():
					fmt.Fprintf(w, "✓ %-24s 0x%08x\n", m.Name, m.Checksum.Stored)
				default:
					fmt.Fprintf(w, "✗ %-24s stored 0x%08x, computed 0x%08x\n",
						m.Name, m.Checksum.Stored, m.Checksum.Computed)
				}
			}
			fmt.Fprintf(w, "%d records, %d failed, %d other members\n",
				len(report.Members), report.Failed(), report.Ignored)

			return report.Err()
		},
	}
}

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump ARCHIVE",
		Short: "Print the archive contents as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := pkg.OpenArchive(args[0], logger)
			if err != nil {
				return err
			}

			var out []byte
			switch strings.ToLower(format) {
			case "yaml", "yml":
				out, err = pkg.DumpYAML(session)
			case "json":
				out, err = pkg.DumpJSON(session)
				out = append(out, '\n')
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func newHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex ARCHIVE MEMBER",
		Short: "Hex dump the record an entry encodes to",
		Long:  `Hex dump the record an entry encodes to. MEMBER is a record file name such as garden1.level.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, name, ok := savefile.ParseMemberName(args[1])
			if !ok {
				return fmt.Errorf("%q is not a .level or .stunt name", args[1])
			}
			session, _, err := pkg.OpenArchive(args[0], logger)
			if err != nil {
				return err
			}
			data, err := session.EncodeEntry(kind, name)
			if err != nil {
				return err
			}

			h := savefile.NewHash()
			if _, err := h.Write(data[:kind.ChecksumOffset()]); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%d bytes, crc 0x%08x stored as % x)\n",
				kind.FileName(name), len(data), h.Sum32(), h.Sum(nil))
			fmt.Fprint(w, pkg.HexDump(kind, data))
			return nil
		},
	}
}

func newPresetCmd() *cobra.Command {
	var output, profile string
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Write a fresh archive with every stock track locked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := progress.NewWithLogger(logger.Named("session"))
			if profile == "" {
				profile = cfg.Profile
			}
			if warn := session.SetProfileName(profile); warn != nil {
				logger.Warn("⚠️ Profile name will be truncated", "bytes", warn.Size, "limit", warn.Limit)
			}
			session.LoadStockPreset()

			if output == "" {
				output = pkg.DefaultArchiveName(session.ProfileName())
			}
			opts := pkg.SaveOptions{Archive: cfg.ArchiveOptions(), Backup: cfg.Backup, BackupLevel: cfg.BackupLevel, Perm: cfg.Perm()}
			if err := pkg.SaveArchive(session, output, opts, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries)\n", output, session.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output archive (default PROFILE.zip)")
	cmd.Flags().StringVar(&profile, "profile", "", "Profile name stored in every record")
	return cmd
}
