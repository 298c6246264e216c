package decoder

import (
	"strconv"
	"strings"
)

// Operand is a Register, an EffectiveAddress or an Immediate.
type Operand interface {
	String() string
	operand()
}

// EffectiveAddress is a memory operand. A direct address has no registers and
// keeps the literal address in Disp.
type EffectiveAddress struct {
	Base     Register
	Index    Register
	HasIndex bool
	Disp     uint16
	Direct   bool
}

func (ea EffectiveAddress) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	if ea.Direct {
		sb.WriteString(strconv.Itoa(int(ea.Disp)))
	} else {
		sb.WriteString(ea.Base.String())
		if ea.HasIndex {
			sb.WriteString(" + ")
			sb.WriteString(ea.Index.String())
		}
		if ea.Disp != 0 {
			sb.WriteString(" + ")
			sb.WriteString(strconv.Itoa(int(ea.Disp)))
		}
	}
	sb.WriteString("]")
	return sb.String()
}

func (EffectiveAddress) operand() {}

// Immediate is a literal source value, printed as unsigned decimal.
type Immediate uint16

func (i Immediate) String() string {
	return strconv.Itoa(int(i))
}

func (Immediate) operand() {}
