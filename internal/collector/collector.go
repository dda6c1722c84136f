package collector

import (
	"io"
	"sort"

	"github.com/hacja/Camel/internal/enzyme"
	"github.com/hacja/Camel/internal/gff"
	"github.com/hacja/Camel/internal/report"
	"github.com/hacja/Camel/internal/scan"
)

// Msg delivers the sites of one enzyme. Idx is the enzyme's position
// on the command line; output follows Idx regardless of arrival order.
type Msg struct {
	Idx     int
	Enzyme  enzyme.Enzyme
	Matches []scan.Match
}

// Stats is emitted after the input channel closes.
type Stats struct {
	TotalSites int            `json:"total_sites"`
	PerEnzyme  map[string]int `json:"per_enzyme"`
}

// Result carries the final Stats and the first write error, if any.
type Result struct {
	Stats Stats
	Err   error
}

// Options selects the sinks. A nil writer is skipped.
type Options struct {
	Report io.Writer
	Color  bool
	GFF    *gff.Writer
}

// New starts the collector goroutine.
//   - send Msg values on the returned chan
//   - close the chan when workers are done
//   - read the final Result from the second chan
//
// Messages whose Idx is never reached in sequence (gaps, negative
// values) are emitted last, in Idx order.
func New(opts Options) (chan<- Msg, <-chan Result) {
	in := make(chan Msg)
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		res := Result{Stats: Stats{PerEnzyme: make(map[string]int)}}
		pending := make(map[int]Msg)
		next := 0

		emit := func(msg Msg) {
			res.Stats.TotalSites += len(msg.Matches)
			res.Stats.PerEnzyme[msg.Enzyme.Name] += len(msg.Matches)
			if res.Err != nil {
				return
			}
			if opts.Report != nil {
				res.Err = report.Write(opts.Report, msg.Enzyme, msg.Matches, opts.Color)
			}
			if res.Err == nil && opts.GFF != nil {
				res.Err = opts.GFF.Write(msg.Matches)
			}
		}

		for msg := range in {
			pending[msg.Idx] = msg
			for {
				m, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				emit(m)
				next++
			}
		}
		// gaps in Idx leave stragglers; keep them in order
		rest := make([]int, 0, len(pending))
		for idx := range pending {
			rest = append(rest, idx)
		}
		sort.Ints(rest)
		for _, idx := range rest {
			emit(pending[idx])
		}
		if res.Err == nil && opts.GFF != nil {
			res.Err = opts.GFF.Flush()
		}
		out <- res
	}()

	return in, out
}
