// Package report renders scan results and the enzyme catalog as text.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hacja/Camel/internal/enzyme"
	"github.com/hacja/Camel/internal/scan"
)

const (
	highlightOn  = "\033[1;31m" // bold red
	highlightOff = "\033[0m"
)

// Write prints the sites of e, one line per match:
//
//	EcoRI (GAATTC) found at positions:
//	  [7] TTTTTGAATTCAAA
//
// With color set, the site itself is wrapped in ANSI bold red.
func Write(w io.Writer, e enzyme.Enzyme, matches []scan.Match, color bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s (%s) found at positions:\n", e.Name, e.Recognition)
	if len(matches) == 0 {
		fmt.Fprintln(bw, "  None found.")
	}
	for _, m := range matches {
		left, site, right := m.Parts()
		fmt.Fprintf(bw, "  [%d] %s", m.Position(), left)
		if color {
			fmt.Fprintf(bw, "%s%s%s", highlightOn, site, highlightOff)
		} else {
			bw.Write(site)
		}
		fmt.Fprintf(bw, "%s\n", right)
	}
	return bw.Flush()
}

// List prints the catalog in definition order.
func List(w io.Writer, ens []enzyme.Enzyme) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Available enzymes:")
	for _, e := range ens {
		fmt.Fprintf(bw, "  %-10s %s\n", e.Name, e.Recognition)
	}
	return bw.Flush()
}
