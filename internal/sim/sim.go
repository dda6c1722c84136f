package sim

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// DefaultWidth is the FASTA line width used when WriteFASTA gets width <= 0.
const DefaultWidth = 60

// Make returns an upper-case DNA sequence of the given length whose GC
// count is round(length*gc). A zero seed is replaced by the clock.
func Make(length int, gc float64, seed int64) []byte {
	if length <= 0 {
		return []byte{}
	}
	gc = clamp(gc)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	gcCount := int(float64(length)*gc + 0.5)
	if gcCount > length {
		gcCount = length
	}

	seq := make([]byte, length)
	for i := range seq {
		pair := "AT"
		if i < gcCount {
			pair = "GC"
		}
		seq[i] = pair[r.Intn(2)]
	}
	r.Shuffle(length, func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	return seq
}

func clamp(gc float64) float64 {
	switch {
	case gc < 0:
		return 0
	case gc > 1:
		return 1
	}
	return gc
}

// WriteFASTA writes one record, wrapping the sequence at width columns.
func WriteFASTA(w io.Writer, id string, seq []byte, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, ">%s\n", id); err != nil {
		return err
	}
	for start := 0; start < len(seq); start += width {
		end := start + width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := bw.Write(seq[start:end]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
