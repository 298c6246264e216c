// Package listing renders decoded instructions.
package listing

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vishen/sim8086/internal/decoder"
)

// Header starts every text listing so the output assembles with nasm.
const Header = "bits 16"

// Options controls the text listing.
type Options struct {
	// Debug appends the raw instruction bits to each line as a comment.
	Debug bool
}

// WriteText writes the header followed by one line per instruction.
func WriteText(w io.Writer, insts []decoder.Instruction, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	for _, in := range insts {
		bw.WriteString(in.String())

		// Print debug info
		if opts.Debug {
			bw.WriteString(" ; (")
			for _, b := range in.Bytes {
				fmt.Fprintf(bw, " %08b", b)
			}
			bw.WriteString(" )")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
