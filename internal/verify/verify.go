// Package verify cross-checks decoded instructions against the x86asm
// reference decoder.
package verify

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"

	"github.com/vishen/sim8086/internal/decoder"
	"github.com/vishen/sim8086/internal/log"
)

// Mismatch describes an instruction the reference decoder reads differently.
type Mismatch struct {
	Offset int
	Text   string
	Reason string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("offset %d: %s: %s", m.Offset, m.Text, m.Reason)
}

// Check decodes every instruction's bytes with x86asm in 16-bit mode and
// compares opcode, length and operands.
func Check(insts []decoder.Instruction) []Mismatch {
	var out []Mismatch
	for _, in := range insts {
		if reason := compare(in); reason != "" {
			m := Mismatch{Offset: in.Offset, Text: in.String(), Reason: reason}
			log.Warn(log.Verify, "mismatch", "offset", m.Offset, "text", m.Text, "reason", m.Reason)
			out = append(out, m)
		}
	}
	log.Debug(log.Verify, "checked", "instructions", len(insts), "mismatches", len(out))
	return out
}

func compare(in decoder.Instruction) string {
	ref, err := x86asm.Decode(in.Bytes, 16)
	if err != nil {
		return fmt.Sprintf("reference decoder: %v", err)
	}
	// x86asm decodes input that ends mid-instruction as a lone prefix
	// byte of unknown op rather than failing.
	if ref.Op == 0 {
		return fmt.Sprintf("reference decoder read %d of %d bytes", ref.Len, len(in.Bytes))
	}
	if ref.Op != x86asm.MOV {
		return fmt.Sprintf("reference op is %s", ref.Op)
	}
	if ref.Len != in.Size {
		return fmt.Sprintf("size %d, reference size %d", in.Size, ref.Len)
	}
	if reason := compareArg(in, in.Dst, ref.Args[0]); reason != "" {
		return "destination " + reason
	}
	if reason := compareArg(in, in.Src, ref.Args[1]); reason != "" {
		return "source " + reason
	}
	return ""
}

func compareArg(in decoder.Instruction, op decoder.Operand, arg x86asm.Arg) string {
	switch op := op.(type) {
	case decoder.Register:
		reg, ok := arg.(x86asm.Reg)
		if !ok {
			return fmt.Sprintf("%s, reference %v", op, arg)
		}
		if name := strings.ToLower(reg.String()); name != op.String() {
			return fmt.Sprintf("%s, reference %s", op, name)
		}

	case decoder.Immediate:
		imm, ok := arg.(x86asm.Imm)
		if !ok {
			return fmt.Sprintf("%s, reference %v", op, arg)
		}
		want := uint16(imm)
		if in.Fields.Width() == 0 {
			want = uint16(uint8(imm))
		}
		if want != uint16(op) {
			return fmt.Sprintf("%s, reference %d", op, int64(imm))
		}

	case decoder.EffectiveAddress:
		mem, ok := arg.(x86asm.Mem)
		if !ok {
			return fmt.Sprintf("%s, reference %v", op, arg)
		}
		return compareMem(in, op, mem)
	}
	return ""
}

// x86asm sign-extends 8-bit displacements, so only the low byte is compared
// for those.
func compareMem(in decoder.Instruction, ea decoder.EffectiveAddress, mem x86asm.Mem) string {
	f, ok := in.Fields.(decoder.MoveFields)
	if !ok {
		return fmt.Sprintf("%s in a %s instruction", ea, in.Kind)
	}

	disp := uint16(mem.Disp)
	if f.Mod == decoder.ModMemoryDisp8 {
		disp = uint16(uint8(mem.Disp))
	}
	if disp != ea.Disp {
		return fmt.Sprintf("%s, reference displacement %d", ea, mem.Disp)
	}

	if ea.Direct {
		if mem.Base != 0 || mem.Index != 0 {
			return fmt.Sprintf("%s, reference has registers %v", ea, mem)
		}
		return ""
	}
	if name := strings.ToLower(mem.Base.String()); name != ea.Base.String() {
		return fmt.Sprintf("%s, reference base %s", ea, name)
	}
	if ea.HasIndex != (mem.Index != 0) {
		return fmt.Sprintf("%s, reference index %v", ea, mem.Index)
	}
	if ea.HasIndex && strings.ToLower(mem.Index.String()) != ea.Index.String() {
		return fmt.Sprintf("%s, reference index %s", ea, mem.Index)
	}
	return ""
}
