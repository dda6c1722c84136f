// Package gff writes restriction sites as GFF3.
package gff

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hacja/Camel/internal/scan"
)

// Source is column 2 of every feature line.
const Source = "camel"

// Writer streams features under a single header. Feature IDs are
// numbered per enzyme, so several scans can share one document.
type Writer struct {
	bw     *bufio.Writer
	seqID  string
	seen   map[string]int
	header bool
}

// NewWriter prepares a document for seqID; an empty seqID is written
// as "sequence".
func NewWriter(w io.Writer, seqID string) *Writer {
	if seqID == "" {
		seqID = "sequence"
	}
	return &Writer{bw: bufio.NewWriter(w), seqID: seqID, seen: make(map[string]int)}
}

// Write adds one restriction_site feature per match, in 1-based closed
// coordinates. The version header goes out before the first feature.
func (gw *Writer) Write(matches []scan.Match) error {
	if !gw.header {
		if _, err := gw.bw.WriteString("##gff-version 3\n"); err != nil {
			return err
		}
		gw.header = true
	}
	for _, m := range matches {
		name := m.Enzyme.Name
		gw.seen[name]++
		start := m.Offset + 1
		end := m.Offset + m.Enzyme.Len()
		if _, err := fmt.Fprintf(
			gw.bw,
			"%s\t%s\trestriction_site\t%d\t%d\t.\t+\t.\tID=%s_%d;Name=%s;Note=%s\n",
			gw.seqID, Source, start, end, name, gw.seen[name], name, m.Enzyme.Recognition,
		); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the header if nothing has been written yet, then
// flushes buffered features.
func (gw *Writer) Flush() error {
	if err := gw.Write(nil); err != nil {
		return err
	}
	return gw.bw.Flush()
}

// Write is a one-shot document: header plus matches.
func Write(w io.Writer, seqID string, matches []scan.Match) error {
	gw := NewWriter(w, seqID)
	if err := gw.Write(matches); err != nil {
		return err
	}
	return gw.Flush()
}

// WriteFile writes the matches to path, creating or truncating it.
func WriteFile(path, seqID string, matches []scan.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, seqID, matches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
