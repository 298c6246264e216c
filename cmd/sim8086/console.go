package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/vishen/sim8086/internal/decoder"
	"github.com/vishen/sim8086/internal/log"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Decode hex bytes typed one line at a time",
		Long: `console reads lines of hex bytes such as "89 d8" or "0x8b 0x4e 0x02" and prints
the instructions they decode to. Text after ';' is ignored. A bad line is reported
and the session continues. Type "quit" or send EOF to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
				return runReadline(cmd.OutOrStdout())
			}
			return runConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runReadline(stdout io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "sim8086> ",
		HistoryFile: historyFile(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !consoleLine(stdout, line) {
			return nil
		}
	}
}

// historyFile returns the console history path in the user's cache
// directory, or "" to keep no history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "sim8086")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Debug(log.CLI, "console history disabled", "err", err)
		return ""
	}
	return filepath.Join(dir, "history")
}

func runConsole(stdin io.Reader, stdout io.Writer) error {
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if !consoleLine(stdout, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// consoleLine decodes one line of input. It returns false when the session
// should end.
func consoleLine(w io.Writer, line string) bool {
	switch strings.TrimSpace(line) {
	case "quit", "exit":
		return false
	}

	data, err := parseHex(line)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return true
	}

	d := decoder.NewDisassembler(data)
	for d.More() {
		in, err := d.Next()
		if err != nil {
			log.Debug(log.CLI, "console decode failed", "line", line, "err", err)
			fmt.Fprintf(w, "error: %v\n", err)
			break
		}
		fmt.Fprintln(w, in)
	}
	return true
}

// parseHex reads whitespace or comma separated hex bytes, optionally
// prefixed with 0x. Anything after ';' is a comment.
func parseHex(line string) ([]byte, error) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})

	var sb strings.Builder
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f)%2 != 0 {
			return nil, fmt.Errorf("odd number of hex digits in %q", f)
		}
		sb.WriteString(f)
	}
	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}
