package listing

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/vishen/sim8086/internal/decoder"
)

// Dump pretty prints the decoded instruction structs. Colors are only used
// when color is set.
func Dump(w io.Writer, insts []decoder.Instruction, color bool) error {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)
	for _, in := range insts {
		if _, err := printer.Println(in); err != nil {
			return err
		}
	}
	return nil
}
