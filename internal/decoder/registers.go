package decoder

// Register is one of the sixteen general purpose 8086 registers.
type Register byte

const (
	// W = 0
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH

	// W = 1
	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

var registerNames = [...]string{
	AL: "al",
	CL: "cl",
	DL: "dl",
	BL: "bl",
	AH: "ah",
	CH: "ch",
	DH: "dh",
	BH: "bh",
	AX: "ax",
	CX: "cx",
	DX: "dx",
	BX: "bx",
	SP: "sp",
	BP: "bp",
	SI: "si",
	DI: "di",
}

// REG field encoding, indexed by [reg][w].
//
//	| REG | W = 0 | W = 1 |
//	| 000 | AL    | AX    |
//	| 001 | CL    | CX    |
//	| 010 | DL    | DX    |
//	| 011 | BL    | BX    |
//	| 100 | AH    | SP    |
//	| 101 | CH    | BP    |
//	| 110 | DH    | SI    |
//	| 111 | BH    | DI    |
var registerTable = [8][2]Register{
	{AL, AX},
	{CL, CX},
	{DL, DX},
	{BL, BX},
	{AH, SP},
	{CH, BP},
	{DH, SI},
	{BH, DI},
}

// register resolves a 3-bit register index and the width bit. Both are
// masked, so every input maps to a register.
func register(r, w byte) Register {
	return registerTable[r&0b111][w&1]
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "INVALID REG"
}

// Wide reports whether r is a 16-bit register.
func (r Register) Wide() bool {
	return r >= AX && r <= DI
}

func (Register) operand() {}
