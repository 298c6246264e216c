package decoder

import (
	"github.com/vishen/sim8086/internal/log"
)

// Disassembler walks a buffer one instruction at a time. The first error is
// sticky: the cursor does not move past an instruction it could not decode.
type Disassembler struct {
	data []byte
	di   int
	err  error
}

func NewDisassembler(data []byte) *Disassembler {
	return &Disassembler{data: data}
}

// More reports whether undecoded bytes remain and no error has occurred.
func (d *Disassembler) More() bool {
	return d.err == nil && d.di < len(d.data)
}

// Offset is the position of the next instruction.
func (d *Disassembler) Offset() int {
	return d.di
}

func (d *Disassembler) Err() error {
	return d.err
}

// Next decodes the instruction at the cursor and advances past it.
func (d *Disassembler) Next() (Instruction, error) {
	if d.err != nil {
		return Instruction{}, d.err
	}
	in, err := DecodeAt(d.data, d.di)
	if err != nil {
		d.err = err
		return Instruction{}, err
	}
	d.di += in.Size
	if log.Root().Enabled(log.LevelTrace) {
		log.Trace(log.Decode, "decoded", "offset", in.Offset, "size", in.Size, "text", in.String())
	}
	return in, nil
}

// Disassemble decodes all of data. It returns either every instruction or an
// error, never a partial listing.
func Disassemble(data []byte) ([]Instruction, error) {
	var insts []Instruction
	d := NewDisassembler(data)
	for d.More() {
		in, err := d.Next()
		if err != nil {
			log.Debug(log.Decode, "decode failed", "offset", d.Offset(), "err", err)
			return nil, err
		}
		insts = append(insts, in)
	}
	log.Debug(log.Decode, "disassembled", "instructions", len(insts), "bytes", len(data))
	return insts, nil
}
