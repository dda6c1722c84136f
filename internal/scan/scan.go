package scan

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hacja/Camel/internal/enzyme"
)

// Flank is the number of context symbols shown on each side of a site.
const Flank = 5

// Mode selects how pattern symbols are compared with the sequence.
type Mode int

const (
	// IUPAC expands ambiguity codes in the pattern (N, R, Y, ...).
	IUPAC Mode = iota
	// Literal compares bytes exactly, so an ambiguity code only matches
	// the same letter in the sequence.
	Literal
)

func (m Mode) String() string {
	switch m {
	case IUPAC:
		return "iupac"
	case Literal:
		return "literal"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "iupac" or "literal", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iupac", "":
		return IUPAC, nil
	case "literal":
		return Literal, nil
	}
	return IUPAC, fmt.Errorf("unknown match mode %q (want iupac or literal)", s)
}

// Viewer is a read-only source of the loaded sequence.
type Viewer interface {
	View() ([]byte, error)
}

// Match is one occurrence of a recognition site.
type Match struct {
	Enzyme enzyme.Enzyme
	// Offset of the site, 0-based.
	Offset int
	// Start and End bound the context window, half-open, in sequence coordinates.
	Start, End int
	// Context is a copy of seq[Start:End].
	Context []byte
}

// Position is the 1-based site start, as printed by the shell.
func (m Match) Position() int { return m.Offset + 1 }

// Site returns the site's range inside Context.
func (m Match) Site() (lo, hi int) {
	lo = m.Offset - m.Start
	return lo, lo + m.Enzyme.Len()
}

// Parts splits Context into left flank, site and right flank.
func (m Match) Parts() (left, site, right []byte) {
	lo, hi := m.Site()
	return m.Context[:lo], m.Context[lo:hi], m.Context[hi:]
}

// Window returns the half-open display range for a site of patLen
// symbols at offset, padded by Flank and clipped to [0, seqLen).
func Window(seqLen, offset, patLen int) (lo, hi int) {
	lo, hi = offset-Flank, offset+patLen+Flank
	if lo < 0 {
		lo = 0
	}
	if hi > seqLen {
		hi = seqLen
	}
	return lo, hi
}

// Offsets lists every start position where p matches seq, leftmost
// first, overlaps included.
func Offsets(seq []byte, p enzyme.Pattern, mode Mode) []int {
	n := p.Len()
	if n == 0 || len(seq) < n {
		return nil
	}
	match := p.MatchMask
	if mode == Literal {
		match = p.MatchLiteral
	}
	var out []int
	for pos := 0; pos <= len(seq)-n; pos++ {
		if match(seq[pos : pos+n]) {
			out = append(out, pos)
		}
	}
	return out
}

// Scanner resolves enzyme names and reports their sites. Compiled
// patterns are cached per enzyme.
type Scanner struct {
	mode  Mode
	plans map[string]enzyme.Pattern
}

func New(mode Mode) *Scanner {
	return &Scanner{mode: mode, plans: make(map[string]enzyme.Pattern)}
}

func (s *Scanner) Mode() Mode { return s.mode }

func (s *Scanner) SetMode(m Mode) { s.mode = m }

// Scan looks up name and reports every site in the viewed sequence.
// It fails with fasta.ErrNotLoaded before a load and with
// enzyme.ErrEnzymeNotFound for unknown names. No sites is not an error.
func (s *Scanner) Scan(v Viewer, name string) ([]Match, error) {
	seq, err := v.View()
	if err != nil {
		return nil, err
	}
	e, err := enzyme.Find(name)
	if err != nil {
		return nil, err
	}
	matches := s.ScanEnzyme(seq, e)
	logrus.WithFields(logrus.Fields{
		"enzyme":  e.Name,
		"mode":    s.mode,
		"bases":   len(seq),
		"matches": len(matches),
	}).Debug("scan complete")
	return matches, nil
}

// ScanEnzyme scans seq for e without a catalog lookup.
func (s *Scanner) ScanEnzyme(seq []byte, e enzyme.Enzyme) []Match {
	p := s.plan(e)
	offs := Offsets(seq, p, s.mode)
	out := make([]Match, 0, len(offs))
	for _, off := range offs {
		lo, hi := Window(len(seq), off, p.Len())
		out = append(out, Match{
			Enzyme:  e,
			Offset:  off,
			Start:   lo,
			End:     hi,
			Context: bytes.Clone(seq[lo:hi]),
		})
	}
	return out
}

func (s *Scanner) plan(e enzyme.Enzyme) enzyme.Pattern {
	if p, ok := s.plans[e.Name]; ok && p.String() == strings.ToUpper(e.Recognition) {
		return p
	}
	p := enzyme.MustCompile(e.Recognition)
	s.plans[e.Name] = p
	return p
}
