// Package shell is the interactive "Camel>" command loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hacja/Camel/internal/fasta"
	"github.com/hacja/Camel/internal/fetch"
	"github.com/hacja/Camel/internal/scan"
)

const (
	Prompt = "Camel> "
	banner = "Welcome to DNA Enzyme Shell\nType 'help' for commands.\n"

	maxLine = 1 << 20
)

// errQuit ends the loop; it is never shown to the user.
var errQuit = errors.New("quit")

// userError carries a message printed verbatim after "[!] ".
type userError string

func (e userError) Error() string { return string(e) }

func failf(format string, args ...any) error {
	return userError(fmt.Sprintf(format, args...))
}

// Config holds the settings the CLI passes in.
type Config struct {
	Color   bool
	Mode    scan.Mode
	Timeout time.Duration
	Store   []fasta.Option
	// DownloadDir receives downloads given without an output path.
	DownloadDir string
}

type Shell struct {
	in      io.Reader
	out     io.Writer
	color   bool
	store   *fasta.Store
	scanner *scan.Scanner
	fetcher *fetch.Fetcher
}

func New(in io.Reader, out io.Writer, cfg Config) *Shell {
	f := fetch.New(cfg.Timeout)
	f.Dir = cfg.DownloadDir
	return &Shell{
		in:      in,
		out:     out,
		color:   cfg.Color,
		store:   fasta.NewStore(cfg.Store...),
		scanner: scan.New(cfg.Mode),
		fetcher: f,
	}
}

// Store exposes the loaded sequence, mainly for tests.
func (s *Shell) Store() *fasta.Store { return s.store }

// Run reads commands until exit, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprint(s.out, banner)

	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	for {
		fmt.Fprint(s.out, Prompt)
		if !sc.Scan() {
			break
		}
		if s.Exec(ctx, sc.Text()) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	s.store.Clear()
	fmt.Fprintln(s.out, "Goodbye.")
	return sc.Err()
}

// Exec runs one command line and reports whether the shell should stop.
// Every failure is printed; none of them ends the loop.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(fields) == 0 {
		return false
	}
	logrus.Debugf("shell: %s", fields[0])

	root := s.commands(line)
	if _, _, err := root.Find(fields); err != nil {
		fmt.Fprintln(s.out, "[!] Unknown command. Type 'help' for a list.")
		return false
	}
	root.SetArgs(fields)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errQuit):
		return true
	default:
		var ue userError
		if !errors.As(err, &ue) {
			logrus.Warnf("shell: %s: %v", fields[0], err)
		}
		fmt.Fprintf(s.out, "[!] %v\n", err)
	}
	return false
}
