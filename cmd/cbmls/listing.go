package main

import (
	"bufio"
	"fmt"

	"github.com/dfandrich/cbmarc/types"
)

// listing implements cbmarc.Callbacks, rendering each event straight
// to a buffered writer rather than collecting entries first — the
// original tool is a straight-through filter, not a report builder.
type listing struct {
	out    *bufio.Writer
	narrow bool
}

func newListing(out *bufio.Writer, narrow bool) *listing {
	return &listing{out: out, narrow: narrow}
}

func (l *listing) OnContainerStart(kind types.ContainerKind, label string, hasLabel bool) {
	if hasLabel {
		fmt.Fprintf(l.out, "%s label: %q\n", kind.FormatLabel(), label)
	}
	if l.narrow {
		return
	}
	fmt.Fprintln(l.out, "Name               Type  Length Blocks Method   Saved Now Chk")
	fmt.Fprintln(l.out, "----               ----  ------ ------ ------   ----- --- ---")
}

func (l *listing) OnEntry(e types.DirEntry) {
	if l.narrow {
		fmt.Fprintf(l.out, "%5d \"%s\"\n", e.Blocks, e.Name)
		return
	}
	chk := "  - "
	if e.Checksum >= 0 {
		chk = fmt.Sprintf("%4x", e.Checksum)
	}
	fmt.Fprintf(l.out, "%-18s %-3s %7d %6d %-8s %4d%% %3d %s\n",
		e.Name, e.Type, e.Length, e.Blocks, e.Method, e.SavingsPercent, e.BlocksNow, chk)
}

func (l *listing) printTotals(t types.Totals, kind types.ContainerKind) {
	if l.narrow {
		fmt.Fprintf(l.out, "%5d blocks in %d files\n", t.TotalBlocks, t.Entries)
		return
	}
	fmt.Fprintln(l.out, "----               ----  ------ ------ ------   ----- --- ---")
	fmt.Fprintf(l.out, "%-18s %-3s %7d %6d\n", fmt.Sprintf("%d files", t.Entries), "", t.TotalLength, t.TotalBlocks)
	if t.Version != 0 {
		fmt.Fprintf(l.out, "%s version %d\n", kind, t.Version)
	}
	if t.DearcerBlocks > 0 {
		fmt.Fprintf(l.out, "dearcer: %d blocks\n", t.DearcerBlocks)
	}
}
