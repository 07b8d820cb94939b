package pkg

import (
	"fmt"
	"strings"

	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// HexDump renders a record sixteen bytes per row with the ASCII column and
// the layout fields each row touches.
func HexDump(kind savefile.Kind, data []byte) string {
	var sb strings.Builder

	for row := 0; row < len(data); row += 16 {
		end := min(row+16, len(data))

		fmt.Fprintf(&sb, "%04x  ", row)
		for col := row; col < row+16; col++ {
			if col < end {
				fmt.Fprintf(&sb, "%02x ", data[col])
			} else {
				sb.WriteString("   ")
			}
			if col == row+7 {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(" |")
		for _, b := range data[row:end] {
			if b >= 0x20 && b < 0x7f {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString(strings.Repeat(" ", 16-(end-row)))
		sb.WriteString("|  ")
		sb.WriteString(strings.Join(rowRegions(kind, row, end), ","))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func rowRegions(kind savefile.Kind, start, end int) []string {
	var names []string
	last := savefile.RegionNone
	for off := start; off < end; off++ {
		r := savefile.RegionAt(kind, off)
		if r != last && r != savefile.RegionNone {
			names = append(names, string(r))
		}
		last = r
	}
	return names
}
