package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/hacja/Camel/internal/enzyme"
	"github.com/hacja/Camel/internal/fasta"
	"github.com/hacja/Camel/internal/gff"
	"github.com/hacja/Camel/internal/report"
	"github.com/hacja/Camel/internal/scan"
	"github.com/hacja/Camel/internal/sim"
)

const helpText = `Commands:
  download <url> [output]  - Download FASTA file (--load to load it)
  load <filename>          - Load a FASTA or FSA file
  list                     - List available enzymes
  scan <enzyme>            - Scan sequence for enzyme sites (--gff <file> to export)
  mode [iupac|literal]     - Show or set how ambiguity codes match
  status                   - Show the loaded sequence
  unload                   - Release the loaded sequence
  simulate <file> <length> - Write a random FASTA file (--gc, --seed, --load)
  help                     - Show this help message
  clear / cls              - Clear screen
  quit / exit              - Exit the program
`

// usage rejects argument counts outside [lo, hi]; hi < 0 is unbounded.
func usage(use string, lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			return failf("Usage: %s", use)
		}
		return nil
	}
}

// argText returns line without its first word. Spacing inside the rest
// is kept as typed.
func argText(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return strings.TrimSpace(line[i:])
	}
	return ""
}

// commands builds a fresh tree per line so flag values never leak
// from one command into the next.
func (s *Shell) commands(line string) *cobra.Command {
	root := &cobra.Command{
		Use:           "camel",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.out)
	root.SetErr(s.out)

	root.AddCommand(
		s.loadCmd(argText(line)),
		s.downloadCmd(),
		s.listCmd(),
		s.scanCmd(),
		s.modeCmd(),
		s.statusCmd(),
		s.unloadCmd(),
		s.simulateCmd(),
		&cobra.Command{
			Use:     "clear",
			Aliases: []string{"cls"},
			Args:    usage("clear", 0, 0),
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprint(s.out, "\033[H\033[J")
			},
		},
		&cobra.Command{
			Use:     "exit",
			Aliases: []string{"quit"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return errQuit
			},
		},
	)
	root.SetHelpCommand(&cobra.Command{
		Use: "help",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(s.out, helpText)
		},
	})
	root.InitDefaultHelpCmd()
	return root
}

func (s *Shell) load(path string) error {
	err := s.store.Load(path)
	switch {
	case err == nil:
		fmt.Fprintf(s.out, "[+] Loaded sequence: %d base pairs\n", s.store.Len())
		return nil
	case errors.Is(err, fasta.ErrOutOfMemory):
		return failf("Memory reallocation failed")
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return failf("Failed to open %s", path)
	}
	return failf("Failed to read %s: %v", path, err)
}

// loadCmd takes the raw rest of the line as the path: it may contain
// runs of spaces or start with '-'.
func (s *Shell) loadCmd(path string) *cobra.Command {
	return &cobra.Command{
		Use:                "load <filename>",
		Args:               usage("load <filename>", 1, -1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.load(path)
		},
	}
}

func (s *Shell) downloadCmd() *cobra.Command {
	var andLoad bool
	cmd := &cobra.Command{
		Use:  "download <url> [output]",
		Args: usage("download <url> [output_file]", 1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}
			res, err := s.fetcher.Fetch(cmd.Context(), args[0], dest)
			if err != nil {
				return failf("Download failed: %v", err)
			}
			fmt.Fprintf(s.out, "[+] Downloaded FASTA file to: %s\n", res.Path)
			if andLoad {
				return s.load(res.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&andLoad, "load", false, "load the file after downloading")
	return cmd
}

func (s *Shell) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "list",
		Args: usage("list", 0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.List(s.out, enzyme.All())
		},
	}
}

func (s *Shell) scanCmd() *cobra.Command {
	var gffPath string
	cmd := &cobra.Command{
		Use:  "scan <enzyme>",
		Args: usage("scan <enzyme>", 1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			ms, err := s.scanner.Scan(s.store, name)
			switch {
			case errors.Is(err, fasta.ErrNotLoaded):
				return failf("No sequence loaded. Use 'load <filename>'")
			case errors.Is(err, enzyme.ErrEnzymeNotFound):
				return failf("Enzyme '%s' not found.", name)
			case err != nil:
				return err
			}
			e, _ := enzyme.Get(name)
			if err := report.Write(s.out, e, ms, s.color); err != nil {
				return err
			}
			if gffPath != "" {
				if err := gff.WriteFile(gffPath, s.store.ID(), ms); err != nil {
					return failf("Failed to write %s: %v", gffPath, err)
				}
				fmt.Fprintf(s.out, "[+] Wrote %d sites to %s\n", len(ms), gffPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gffPath, "gff", "", "also write the sites as GFF3 to this file")
	return cmd
}

func (s *Shell) modeCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "mode [iupac|literal]",
		Args: usage("mode [iupac|literal]", 0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(s.out, "Match mode: %s\n", s.scanner.Mode())
				return nil
			}
			m, err := scan.ParseMode(args[0])
			if err != nil {
				return failf("Unknown mode '%s'. Use iupac or literal.", args[0])
			}
			s.scanner.SetMode(m)
			fmt.Fprintf(s.out, "[+] Match mode: %s\n", m)
			return nil
		},
	}
}

func (s *Shell) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "status",
		Args: usage("status", 0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !s.store.Loaded() {
				fmt.Fprintln(s.out, "No sequence loaded.")
				return nil
			}
			id := s.store.ID()
			if id == "" {
				id = "(no header)"
			}
			fmt.Fprintf(s.out, "Sequence %s: %d base pairs, %d record(s), mode %s\n",
				id, s.store.Len(), s.store.Records(), s.scanner.Mode())
			return nil
		},
	}
}

func (s *Shell) unloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "unload",
		Args: usage("unload", 0, 0),
		Run: func(cmd *cobra.Command, args []string) {
			s.store.Clear()
			fmt.Fprintln(s.out, "[+] Sequence released.")
		},
	}
}

func (s *Shell) simulateCmd() *cobra.Command {
	var (
		gc      float64
		seed    int64
		width   int
		andLoad bool
	)
	cmd := &cobra.Command{
		Use:  "simulate <file> <length>",
		Args: usage("simulate <file> <length>", 2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var n int
			if _, err := fmt.Sscan(args[1], &n); err != nil || n < 0 {
				return failf("Invalid length '%s'", args[1])
			}
			f, err := os.Create(path)
			if err != nil {
				return failf("Failed to create %s", path)
			}
			werr := sim.WriteFASTA(f, "simulated", sim.Make(n, gc, seed), width)
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				return failf("Failed to write %s: %v", path, werr)
			}
			fmt.Fprintf(s.out, "[+] Wrote %d bp simulated sequence to %s\n", n, path)
			if andLoad {
				return s.load(path)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&gc, "gc", 0.5, "GC fraction")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	cmd.Flags().IntVar(&width, "width", sim.DefaultWidth, "line width")
	cmd.Flags().BoolVar(&andLoad, "load", false, "load the file after writing")
	return cmd
}
