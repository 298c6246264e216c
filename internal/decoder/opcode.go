package decoder

import (
	"fmt"
	"strings"

	_ "embed"
)

var (
	//go:embed opcodes.txt
	opcodeTable string

	patterns = parsePatterns(opcodeTable)
)

// Kind identifies which decoding routine applies to an instruction.
type Kind int

const (
	KindUnknown Kind = iota
	RegisterMemoryMove
	ImmediateToRegisterMove
)

var kindNames = map[string]Kind{
	"regmem": RegisterMemoryMove,
	"immreg": ImmediateToRegisterMove,
}

func (k Kind) String() string {
	switch k {
	case RegisterMemoryMove:
		return "register/memory to/from register"
	case ImmediateToRegisterMove:
		return "immediate to register"
	}
	return "unknown"
}

type pattern struct {
	Mnemonic string
	Kind     Kind
	Bits     byte
	Len      int
}

func (p pattern) String() string {
	return fmt.Sprintf("%s %d: %0*b", p.Mnemonic, p.Len, p.Len, p.Bits)
}

func (p pattern) match(b byte) bool {
	return b>>(8-p.Len)&mask(p.Len) == p.Bits
}

// parsePatterns reads the embedded table. The table ships with the binary, so
// a malformed line is a programming error.
func parsePatterns(table string) []pattern {
	var ps []pattern
	for i, line := range strings.Split(table, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		cols := strings.Fields(line)
		if len(cols) != 3 {
			panic(fmt.Sprintf("opcodes.txt line %d: want 3 columns, got %d", i+1, len(cols)))
		}
		kind, ok := kindNames[cols[1]]
		if !ok {
			panic(fmt.Sprintf("opcodes.txt line %d: unknown kind %q", i+1, cols[1]))
		}
		bits := cols[2]
		if len(bits) == 0 || len(bits) > 8 || strings.Trim(bits, "01") != "" {
			panic(fmt.Sprintf("opcodes.txt line %d: invalid bit pattern %q", i+1, bits))
		}
		ps = append(ps, pattern{
			Mnemonic: cols[0],
			Kind:     kind,
			Bits:     convert(bits),
			Len:      len(bits),
		})
	}
	return ps
}

func classify(b byte) (pattern, error) {
	for _, p := range patterns {
		if p.match(b) {
			return p, nil
		}
	}
	return pattern{}, ErrUnsupportedOpcode
}

// Classify reports which instruction kind b begins. It only inspects b.
func Classify(b byte) (Kind, error) {
	p, err := classify(b)
	if err != nil {
		return KindUnknown, err
	}
	return p.Kind, nil
}

func mask(length int) byte {
	m := byte(1)
	for i := 1; i < length; i++ {
		m = m << 1
		m |= 1
	}
	return m
}

func convert(v string) byte {
	b := byte(0)
	for i, c := range v {
		if c == '1' {
			b |= 1 << (len(v) - 1 - i)
		}
	}
	return b
}
