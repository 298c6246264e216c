package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vishen/sim8086/internal/decoder"
	"github.com/vishen/sim8086/internal/listing"
	"github.com/vishen/sim8086/internal/log"
	"github.com/vishen/sim8086/internal/verify"
)

// defaultMaxSize matches the 1MB buffer the first version read files into.
const defaultMaxSize = 1 << 20

type config struct {
	logLevel string
	maxSize  int64

	debug   bool
	dump    bool
	explain bool
	format  string
	hexdump bool
	verify  bool
}

func main() {
	os.Exit(main1())
}

func main1() int {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(log.CLI, "command failed", "err", err)
		fmt.Fprintf(os.Stderr, "sim8086: %v\n", err)
		if isDecodeError(err) {
			return 2
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "sim8086 [flags] <file>",
		Short: "Disassemble 8086 MOV instructions",
		Long: `sim8086 reads a binary assembled with nasm and prints the MOV instructions
it contains, one per line, after a "bits 16" header.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.InitLogger(cmd.ErrOrStderr(), cfg.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisassemble(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	defaultLevel := os.Getenv("SIM8086_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "warn"
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.logLevel, "log-level", defaultLevel, "log level: trace, debug, info, warn, error (env SIM8086_LOG_LEVEL)")
	pf.Int64Var(&cfg.maxSize, "max-size", defaultMaxSize, "largest input file accepted, in bytes")

	f := rootCmd.Flags()
	f.BoolVar(&cfg.debug, "debug", false, "append the raw bits of each instruction")
	f.BoolVar(&cfg.dump, "dump", false, "pretty print decoded instructions to stderr")
	f.BoolVar(&cfg.explain, "explain", false, "print a tree of decoded fields instead of the listing")
	f.StringVar(&cfg.format, "format", "text", "listing format: text or json")
	f.BoolVar(&cfg.hexdump, "hexdump", false, "print a hex dump of the input instead of the listing")
	f.BoolVar(&cfg.verify, "verify", false, "cross-check every instruction against the x86asm decoder")

	rootCmd.AddCommand(newStatsCmd(cfg), newConsoleCmd())
	return rootCmd
}

func readInput(path string, maxSize int64) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > maxSize {
		return nil, fmt.Errorf("%s is %d bytes, exceeds --max-size %d", path, fi.Size(), maxSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CLI, "read input", "path", path, "bytes", len(data))
	return data, nil
}

// validate rejects unknown formats and output flags that would silently
// override each other.
func (c *config) validate() error {
	if c.format != "text" && c.format != "json" {
		return fmt.Errorf("unknown --format %q", c.format)
	}

	if c.hexdump {
		others := []struct {
			name string
			set  bool
		}{
			{"--debug", c.debug},
			{"--dump", c.dump},
			{"--explain", c.explain},
			{"--format json", c.format == "json"},
			{"--verify", c.verify},
		}
		for _, o := range others {
			if o.set {
				return fmt.Errorf("--hexdump cannot be combined with %s", o.name)
			}
		}
	}
	if c.explain && c.format == "json" {
		return errors.New("--explain cannot be combined with --format json")
	}
	if c.debug && (c.explain || c.format == "json") {
		return errors.New("--debug only applies to the text listing")
	}
	return nil
}

func runDisassemble(stdout, stderr io.Writer, path string, cfg *config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	data, err := readInput(path, cfg.maxSize)
	if err != nil {
		return err
	}

	if cfg.hexdump {
		return listing.HexDump(stdout, data)
	}

	insts, err := decoder.Disassemble(data)
	if err != nil {
		return fmt.Errorf("disassemble %s: %w", path, err)
	}

	if cfg.verify {
		if ms := verify.Check(insts); len(ms) > 0 {
			for _, m := range ms {
				fmt.Fprintln(stderr, m)
			}
			return fmt.Errorf("%d of %d instructions disagree with x86asm", len(ms), len(insts))
		}
	}

	if cfg.dump {
		if err := listing.Dump(stderr, insts, isTerminal(stderr)); err != nil {
			return err
		}
	}

	if cfg.explain {
		_, err := fmt.Fprint(stdout, listing.Explain(insts))
		return err
	}

	switch cfg.format {
	case "json":
		return listing.WriteJSON(stdout, insts)
	default:
		return listing.WriteText(stdout, insts, listing.Options{Debug: cfg.debug})
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isDecodeError reports whether err came from decoding rather than from
// reading the input or from flags. Those exit with status 2.
func isDecodeError(err error) bool {
	var de *decoder.DecodeError
	return errors.As(err, &de)
}
