package enzyme

import "bytes"

// Pattern is a compiled recognition site.
type Pattern struct {
	site []byte
	mask []uint8
}

// Compile validates site and precomputes its masks.
func Compile(site string) (Pattern, error) {
	m, err := CompilePattern(site)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{site: bytes.ToUpper([]byte(site)), mask: m}, nil
}

// MustCompile is Compile for catalog entries; it panics on a bad site.
func MustCompile(site string) Pattern {
	p, err := Compile(site)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) Len() int { return len(p.site) }

func (p Pattern) String() string { return string(p.site) }

// Ambiguous reports whether any position is a degenerate symbol.
func (p Pattern) Ambiguous() bool {
	for _, c := range p.site {
		if Degenerate(c) {
			return true
		}
	}
	return false
}

// MatchMask returns true iff window satisfies every position's IUPAC set.
func (p Pattern) MatchMask(window []byte) bool {
	n := len(p.mask)
	if len(window) != n || n == 0 {
		return false
	}
	// fast reject on last position
	if baseMask(window[n-1])&p.mask[n-1] == 0 {
		return false
	}
	for i := 0; i < n-1; i++ {
		if baseMask(window[i])&p.mask[i] == 0 {
			return false
		}
	}
	return true
}

// MatchLiteral is plain byte equality: an 'N' in the site only matches a
// literal 'N' in the sequence.
func (p Pattern) MatchLiteral(window []byte) bool {
	return len(p.site) > 0 && bytes.Equal(p.site, window)
}
