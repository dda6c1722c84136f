// internal/enzyme/iupac.go
package enzyme

import "fmt"

// 4-bit mask per symbol: A=1, C=2, G=4, T=8. Zero means "not a base".
var codeMap = [256]uint8{
	'A': 1 << 0,
	'C': 1 << 1,
	'G': 1 << 2,
	'T': 1 << 3,
	'R': (1 << 0) | (1 << 2),
	'Y': (1 << 1) | (1 << 3),
	'S': (1 << 1) | (1 << 2),
	'W': (1 << 0) | (1 << 3),
	'K': (1 << 2) | (1 << 3),
	'M': (1 << 0) | (1 << 1),
	'B': (1 << 1) | (1 << 2) | (1 << 3),
	'D': (1 << 0) | (1 << 2) | (1 << 3),
	'H': (1 << 0) | (1 << 1) | (1 << 3),
	'V': (1 << 0) | (1 << 1) | (1 << 2),
	'N': (1 << 0) | (1 << 1) | (1 << 2) | (1 << 3),
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}

// CompilePattern converts an IUPAC recognition string to a slice of 4-bit masks.
func CompilePattern(site string) ([]uint8, error) {
	out := make([]uint8, len(site))
	for i := 0; i < len(site); i++ {
		m := codeMap[upper(site[i])]
		if m == 0 {
			return nil, fmt.Errorf("invalid IUPAC base %q at %d", site[i], i)
		}
		out[i] = m
	}
	return out, nil
}

// baseMask maps a sequence byte to the base it denotes. Only A/C/G/T
// qualify: an 'N' or any ambiguity letter in the sequence never matches.
func baseMask(b byte) uint8 {
	switch b = upper(b); b {
	case 'A', 'C', 'G', 'T':
		return codeMap[b]
	}
	return 0
}

// Match tests whether window matches pattern (same length required).
func Match(pattern []uint8, window []byte) bool {
	if len(pattern) != len(window) {
		return false
	}
	for i, m := range pattern {
		if baseMask(window[i])&m == 0 {
			return false
		}
	}
	return true
}

// Degenerate reports whether sym stands for more than one base.
func Degenerate(sym byte) bool {
	m := codeMap[upper(sym)]
	return m != 0 && m&(m-1) != 0
}
