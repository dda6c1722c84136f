package collector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hacja/Camel/internal/enzyme"
	"github.com/hacja/Camel/internal/gff"
)

func TestCollector_StatsAndGFF(t *testing.T) {
	buf := &bytes.Buffer{}
	in, done := New(Options{GFF: gff.NewWriter(buf, "chr1")})
	in <- msg(t, 0, "EcoRI")
	in <- msg(t, 1, "TaqI")
	close(in)
	res := <-done
	if res.Err != nil { t.Fatal(res.Err) }

	if res.Stats.TotalSites != 3 || res.Stats.PerEnzyme["EcoRI"] != 2 || res.Stats.PerEnzyme["TaqI"] != 1 {
		t.Fatalf("stats wrong: %+v", res.Stats)
	}
	if n := strings.Count(buf.String(), "\trestriction_site\t"); n != 3 {
		t.Fatalf("gff features: got %d\n%s", n, buf.String())
	}
}

func TestCollector_EmptyThenNonEmpty(t *testing.T) {
	e, _ := enzyme.Get("NotI")
	buf := &bytes.Buffer{}
	in, done := New(Options{GFF: gff.NewWriter(buf, "")})
	in <- Msg{Idx: 0, Enzyme: e}
	in <- msg(t, 1, "EcoRI")
	close(in)
	res := <-done

	if res.Stats.TotalSites != 2 || res.Stats.PerEnzyme["NotI"] != 0 {
		t.Fatalf("stats wrong: %+v", res.Stats)
	}
	if !strings.HasPrefix(buf.String(), "##gff-version 3\n") {
		t.Fatalf("gff missing header")
	}
}
