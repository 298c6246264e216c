package listing

import (
	"bufio"
	"fmt"
	"io"
)

// HexDump writes data sixteen bytes per line, each line prefixed with its
// decimal offset and bytes grouped in pairs.
func HexDump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for i, b := range data {
		if i%16 == 0 {
			fmt.Fprintf(bw, "%08d: ", i)
		}
		fmt.Fprintf(bw, "%02x", b)
		if i%2 == 1 {
			bw.WriteByte(' ')
		}
		if i%16 == 15 {
			bw.WriteByte('\n')
		}
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
