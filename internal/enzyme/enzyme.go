// internal/enzyme/enzyme.go
package enzyme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEnzymeNotFound is returned when a name is not in the catalog.
var ErrEnzymeNotFound = errors.New("enzyme not found")

type Enzyme struct {
	Name        string
	Recognition string // IUPAC site, no cut marker
}

func (e Enzyme) Len() int { return len(e.Recognition) }

// index maps the upper-cased name to the position in catalog.
var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, e := range catalog {
		key := strings.ToUpper(e.Name)
		if _, dup := m[key]; dup {
			panic("duplicate catalog entry " + e.Name)
		}
		m[key] = i
	}
	return m
}()

// Find looks name up ignoring case.
func Find(name string) (Enzyme, error) {
	i, ok := index[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Enzyme{}, fmt.Errorf("%w: %q", ErrEnzymeNotFound, name)
	}
	return catalog[i], nil
}

func Get(name string) (Enzyme, bool) {
	e, err := Find(name)
	return e, err == nil
}

// All returns a copy of the catalog in definition order.
func All() []Enzyme {
	out := make([]Enzyme, len(catalog))
	copy(out, catalog)
	return out
}

// Count is the number of catalog entries.
func Count() int { return len(catalog) }
