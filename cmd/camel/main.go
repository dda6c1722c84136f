package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hacja/Camel/internal/collector"
	"github.com/hacja/Camel/internal/enzyme"
	"github.com/hacja/Camel/internal/fasta"
	"github.com/hacja/Camel/internal/fetch"
	"github.com/hacja/Camel/internal/gff"
	"github.com/hacja/Camel/internal/report"
	"github.com/hacja/Camel/internal/scan"
	"github.com/hacja/Camel/internal/shell"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	mode        string
	color       bool
	timeout     time.Duration
	initialCap  int
	maxBytes    int
	downloadDir string
	logLevel    string
	logJSON     bool

	matchMode scan.Mode
}

func (o *options) storeOptions() []fasta.Option {
	return []fasta.Option{fasta.WithInitialCapacity(o.initialCap), fasta.WithMaxBytes(o.maxBytes)}
}

func (o *options) shellConfig() shell.Config {
	return shell.Config{
		Color:       o.color,
		Mode:        o.matchMode,
		Timeout:     o.timeout,
		Store:       o.storeOptions(),
		DownloadDir: o.downloadDir,
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	runShell := func(cmd *cobra.Command, args []string) error {
		sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), opts.shellConfig())
		return sh.Run(cmd.Context())
	}

	root := &cobra.Command{
		Use:   "camel",
		Short: "camel: DNA restriction-site shell",
		Long: `camel loads a FASTA sequence and reports the recognition sites of a fixed
catalog of restriction enzymes, each with five bases of context on either side.

Run without a subcommand for the interactive shell.`,
		Example: `  # interactive shell
  camel
  # one-shot scan, sites also written as GFF3
  camel scan --fasta ref.fa --gff sites.gff3 EcoRI BamHI
  # ambiguity codes compared literally
  camel --mode literal scan --fasta ref.fa AccI`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(opts.logLevel, opts.logJSON); err != nil {
				return err
			}
			m, err := scan.ParseMode(opts.mode)
			if err != nil {
				return err
			}
			opts.matchMode = m
			return nil
		},
		RunE: runShell,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&opts.mode, "mode", scan.IUPAC.String(), "match mode: iupac or literal")
	pf.BoolVar(&opts.color, "color", os.Getenv("NO_COLOR") == "", "highlight sites with ANSI colors")
	pf.DurationVar(&opts.timeout, "timeout", fetch.DefaultTimeout, "download timeout")
	pf.IntVar(&opts.initialCap, "initial-capacity", fasta.InitialCapacity, "initial sequence buffer size (bytes)")
	pf.IntVar(&opts.maxBytes, "max-bytes", 0, "sequence buffer ceiling in bytes (0 = none)")
	pf.StringVar(&opts.downloadDir, "download-dir", "", "directory for downloads without an output path (default: temp dir)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE:  runShell,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List available enzymes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return report.List(cmd.OutOrStdout(), enzyme.All())
			},
		},
		newScanCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "camel %s (commit %s, %s)\n", version, commit, date)
			},
		},
	)
	return root
}

func newScanCmd(opts *options) *cobra.Command {
	var (
		fastaPath string
		gffPath   string
		jsonPath  string
		threads   int
	)
	cmd := &cobra.Command{
		Use:   "scan --fasta <ref.fa|-> <enzyme>...",
		Short: "Load a FASTA file and report sites for each enzyme",
		Example: `  camel scan --fasta ref.fa EcoRI BamHI
  zcat ref.fa.gz | camel scan --fasta - --gff - EcoRI,TaqI > sites.gff3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// resolve every name before touching the file
			var ens []enzyme.Enzyme
			for _, arg := range args {
				for _, name := range strings.Split(arg, ",") {
					n := strings.TrimSpace(name) // forgive spaces
					if n == "" {
						continue
					}
					e, err := enzyme.Find(n)
					if err != nil {
						return err
					}
					ens = append(ens, e)
				}
			}
			if len(ens) == 0 {
				return errors.New("need at least one enzyme")
			}
			if threads < 1 {
				threads = 1
			}

			store := fasta.NewStore(opts.storeOptions()...)
			if err := store.Load(fastaPath); err != nil {
				return err
			}
			seq, err := store.View()
			if err != nil {
				return err
			}
			logrus.Infof("loaded %d bases from %s", store.Len(), fastaPath)

			// with --gff - the report would corrupt the GFF stream
			sinks := collector.Options{Report: cmd.OutOrStdout(), Color: opts.color}
			var gffFile *os.File
			switch gffPath {
			case "":
			case "-":
				sinks.Report = nil
				sinks.GFF = gff.NewWriter(cmd.OutOrStdout(), store.ID())
			default:
				if gffFile, err = os.Create(gffPath); err != nil {
					return err
				}
				defer gffFile.Close()
				sinks.GFF = gff.NewWriter(gffFile, store.ID())
			}
			cIn, done := collector.New(sinks)

			// worker pool; the collector restores argument order via Idx
			jobs := make(chan int, threads)
			var wg sync.WaitGroup
			for i := 0; i < threads; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					sc := scan.New(opts.matchMode)
					for idx := range jobs {
						ms := sc.ScanEnzyme(seq, ens[idx])
						cIn <- collector.Msg{Idx: idx, Enzyme: ens[idx], Matches: ms}
						logrus.Debugf("enzyme=%s sites=%d", ens[idx].Name, len(ms))
					}
				}()
			}
			for idx := range ens {
				jobs <- idx
			}
			close(jobs)
			wg.Wait()
			close(cIn)

			res := <-done
			if res.Err != nil {
				return res.Err
			}
			if gffFile != nil {
				if err := gffFile.Close(); err != nil {
					return err
				}
			}
			logrus.WithFields(logrus.Fields{
				"enzymes": len(ens),
				"sites":   res.Stats.TotalSites,
			}).Info("scan complete")

			if jsonPath != "" {
				names := make([]string, len(ens))
				for i, e := range ens {
					names[i] = e.Name
				}
				return writeSummary(jsonPath, summary{
					Sequence: store.ID(),
					Bases:    store.Len(),
					Records:  store.Records(),
					Mode:     opts.matchMode.String(),
					Enzymes:  names,
					Stats:    res.Stats,
				})
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&fastaPath, "fasta", "", "FASTA file to scan ('-' for stdin, gzip accepted)")
	f.StringVar(&gffPath, "gff", "", "optional: write all sites as GFF3 here ('-' for stdout)")
	f.StringVar(&jsonPath, "json", "", "optional: write run summary JSON here")
	f.IntVar(&threads, "threads", runtime.NumCPU(), "number of worker goroutines")
	_ = cmd.MarkFlagRequired("fasta")
	return cmd
}

type summary struct {
	Sequence string   `json:"sequence"`
	Bases    int      `json:"bases"`
	Records  int      `json:"records"`
	Mode     string   `json:"mode"`
	Enzymes  []string `json:"enzymes"`
	collector.Stats
}

func writeSummary(path string, s summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if err := json.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("encode json: %w", err)
	}
	return f.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
