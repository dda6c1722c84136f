package shell

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hacja/Camel/internal/fasta"
	"github.com/hacja/Camel/internal/scan"
)

func run(t *testing.T, cfg Config, lines ...string) (string, *Shell) {
	t.Helper()
	var out bytes.Buffer
	sh := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, cfg)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String(), sh
}

// exec drives single lines without Run, so the store can be inspected
// before shutdown releases it.
func exec(t *testing.T, sh *Shell, out *bytes.Buffer, lines ...string) string {
	t.Helper()
	out.Reset()
	for _, l := range lines {
		if sh.Exec(context.Background(), l) {
			t.Fatalf("%q ended the shell", l)
		}
	}
	return out.String()
}

func fastaFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seq.fa")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShell_BannerAndGoodbye(t *testing.T) {
	out, _ := run(t, Config{}, "exit")
	if !strings.HasPrefix(out, "Welcome to DNA Enzyme Shell\nType 'help' for commands.\nCamel> ") {
		t.Fatalf("missing banner: %q", out)
	}
	if !strings.HasSuffix(out, "Goodbye.\n") {
		t.Fatalf("missing goodbye: %q", out)
	}
}

func TestShell_LoadAndScan(t *testing.T) {
	path := fastaFile(t, ">header\ngaattcGGATCCggatcc\n")
	out, _ := run(t, Config{}, "load "+path, "scan bamhi", "quit")

	for _, want := range []string{
		"[+] Loaded sequence: 18 base pairs\n",
		"BamHI (GGATCC) found at positions:\n",
		"  [7] AATTCGGATCCGGATC\n",
		"  [13] GATCCGGATCC\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
}

func TestShell_ErrorsKeepLooping(t *testing.T) {
	out, _ := run(t, Config{},
		"scan EcoRI",
		"load /definitely/not/here.fa",
		"frobnicate",
		"scan",
		"help",
	)
	for _, want := range []string{
		"[!] No sequence loaded. Use 'load <filename>'\n",
		"[!] Failed to open /definitely/not/here.fa\n",
		"[!] Unknown command. Type 'help' for a list.\n",
		"[!] Usage: scan <enzyme>\n",
		"  load <filename>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "Goodbye.\n") {
		t.Fatal("EOF should end the loop cleanly")
	}
}

func TestShell_UnknownEnzyme(t *testing.T) {
	path := fastaFile(t, "ACGT\n")
	out, _ := run(t, Config{}, "load "+path, "scan NopeI")
	if !strings.Contains(out, "[!] Enzyme 'NopeI' not found.\n") {
		t.Fatalf("transcript:\n%s", out)
	}
}

func TestShell_ModeSwitch(t *testing.T) {
	path := fastaFile(t, ">x\nCCGTAGACCC\n")
	out, _ := run(t, Config{Mode: scan.IUPAC},
		"load "+path, "scan AccI", "mode literal", "scan AccI", "mode", "mode fuzzy")
	if strings.Count(out, "  [3] ") != 1 || !strings.Contains(out, "  None found.\n") {
		t.Fatalf("expected one iupac hit and none in literal mode:\n%s", out)
	}
	if !strings.Contains(out, "Match mode: literal\n") || !strings.Contains(out, "[!] Unknown mode 'fuzzy'") {
		t.Fatalf("mode output:\n%s", out)
	}
}

func TestShell_StatusUnload(t *testing.T) {
	path := fastaFile(t, ">chrM desc\nACGT\n")
	out, _ := run(t, Config{}, "status", "load "+path, "status", "unload", "status")
	if strings.Count(out, "No sequence loaded.\n") != 2 {
		t.Fatalf("status before load and after unload:\n%s", out)
	}
	if !strings.Contains(out, "Sequence chrM: 4 base pairs, 1 record(s), mode iupac\n") {
		t.Fatalf("status line:\n%s", out)
	}

	var buf bytes.Buffer
	sh := New(strings.NewReader(""), &buf, Config{})
	exec(t, sh, &buf, "load "+path)
	if !sh.Store().Loaded() {
		t.Fatal("store should hold the sequence after load")
	}
	exec(t, sh, &buf, "unload")
	if sh.Store().Loaded() {
		t.Fatal("store should be empty after unload")
	}
}

func TestShell_RunReleasesStoreOnExit(t *testing.T) {
	path := fastaFile(t, "ACGT\n")
	out, sh := run(t, Config{}, "load "+path, "status", "exit")
	if !strings.Contains(out, "4 base pairs") {
		t.Fatalf("transcript:\n%s", out)
	}
	if sh.Store().Loaded() || sh.Store().Len() != 0 {
		t.Fatal("Run must release the sequence at shutdown")
	}
}

func TestShell_OutOfMemory(t *testing.T) {
	path := fastaFile(t, ">big\n"+strings.Repeat("ACGT", 1000)+"\n")
	out, _ := run(t, Config{Store: []fasta.Option{fasta.WithMaxBytes(100)}}, "load "+path)
	if !strings.Contains(out, "[!] Memory reallocation failed\n") {
		t.Fatalf("transcript:\n%s", out)
	}
}

func TestShell_ScanWritesGFF(t *testing.T) {
	path := fastaFile(t, ">chr1\nAAGAATTCAA\n")
	gffPath := filepath.Join(t.TempDir(), "sites.gff3")
	out, _ := run(t, Config{}, "load "+path, "scan EcoRI --gff "+gffPath, "scan EcoRI")
	if !strings.Contains(out, "[+] Wrote 1 sites to "+gffPath) {
		t.Fatalf("transcript:\n%s", out)
	}
	if strings.Count(out, "[+] Wrote") != 1 {
		t.Fatal("--gff must not carry over to the next command")
	}
	raw, err := os.ReadFile(gffPath)
	if err != nil { t.Fatal(err) }
	if !strings.Contains(string(raw), "chr1\tcamel\trestriction_site\t3\t8\t") {
		t.Fatalf("gff: %q", raw)
	}
}

func TestShell_SimulateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.fa")
	var buf bytes.Buffer
	sh := New(strings.NewReader(""), &buf, Config{})
	out := exec(t, sh, &buf, "simulate "+path+" 5000 --seed 7 --load")
	if !strings.Contains(out, "[+] Loaded sequence: 5000 base pairs\n") {
		t.Fatalf("transcript:\n%s", out)
	}
	if sh.Store().Len() != 5000 || sh.Store().ID() != "simulated" {
		t.Fatalf("len=%d id=%q", sh.Store().Len(), sh.Store().ID())
	}
}

func TestShell_DownloadAndLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(">remote\nGAATTC\n"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "remote.fa")
	var buf bytes.Buffer
	sh := New(strings.NewReader(""), &buf, Config{Timeout: time.Second})
	out := exec(t, sh, &buf, "download "+srv.URL+" "+dest+" --load", "download")
	if !strings.Contains(out, "[+] Downloaded FASTA file to: "+dest+"\n") {
		t.Fatalf("transcript:\n%s", out)
	}
	if !strings.Contains(out, "[!] Usage: download <url> [output_file]\n") {
		t.Fatalf("usage missing:\n%s", out)
	}
	if sh.Store().Len() != 6 {
		t.Fatalf("downloaded file not loaded: len=%d", sh.Store().Len())
	}
}

func TestShell_LoadKeepsPathAsTyped(t *testing.T) {
	dir := t.TempDir()
	spaced := filepath.Join(dir, "my  seq.fa")
	if err := os.WriteFile(spaced, []byte(">a\nGAATTC\n"), 0o644); err != nil { t.Fatal(err) }
	if err := os.WriteFile(filepath.Join(dir, "-seq.fa"), []byte(">b\nACGTACGT\n"), 0o644); err != nil { t.Fatal(err) }

	wd, err := os.Getwd()
	if err != nil { t.Fatal(err) }
	if err := os.Chdir(dir); err != nil { t.Fatal(err) }
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, _ := run(t, Config{}, "load "+spaced, "load   -seq.fa  ", "load")
	for _, want := range []string{
		"[+] Loaded sequence: 6 base pairs\n",
		"[+] Loaded sequence: 8 base pairs\n",
		"[!] Usage: load <filename>\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[!] Failed") || strings.Contains(out, "flag") {
		t.Fatalf("path mangled:\n%s", out)
	}
}

func TestArgText(t *testing.T) {
	for in, want := range map[string]string{
		"load a  b.fa":   "a  b.fa",
		"  load\t-x.fa ": "-x.fa",
		"load":           "",
	} {
		if got := argText(in); got != want {
			t.Fatalf("argText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShell_ClearScreen(t *testing.T) {
	out, _ := run(t, Config{}, "cls", "clear")
	if strings.Count(out, "\033[H\033[J") != 2 {
		t.Fatalf("clear not emitted twice: %q", out)
	}
}

func TestShell_ColorHighlight(t *testing.T) {
	path := fastaFile(t, "GAATTC\n")
	out, _ := run(t, Config{Color: true}, "load "+path, "scan EcoRI")
	if !strings.Contains(out, "\033[1;31mGAATTC\033[0m") {
		t.Fatalf("highlight missing: %q", out)
	}
}

func TestExec_BlankLineIgnored(t *testing.T) {
	var out bytes.Buffer
	sh := New(strings.NewReader(""), &out, Config{})
	if sh.Exec(context.Background(), "   ") || out.Len() != 0 {
		t.Fatalf("blank line should be a no-op, got %q", out.String())
	}
	if !sh.Exec(context.Background(), "exit") {
		t.Fatal("exit should stop the shell")
	}
}
