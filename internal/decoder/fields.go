package decoder

// MOD field encoding.
const (
	ModMemory       byte = 0b00 // Memory mode, no displacement *
	ModMemoryDisp8  byte = 0b01 // Memory mode, 8-bit displacement
	ModMemoryDisp16 byte = 0b10 // Memory mode, 16-bit displacement
	ModRegister     byte = 0b11 // Register mode (no displacement)

	// * except when r/m is 0b110, which is a 16-bit direct address
	rmDirect byte = 0b110
)

// Fields is the set of bit-fields extracted from an instruction header.
// It is either MoveFields or ImmediateFields.
type Fields interface {
	Width() byte
	fields()
}

// MoveFields are the fields of a register/memory move:
//
//	[100010 d w] [mod reg r/m]
type MoveFields struct {
	D   byte // 0: REG is the source, 1: REG is the destination
	W   byte // 0: byte operation, 1: word operation
	Mod byte
	Reg byte
	RM  byte
}

func extractMoveFields(b1, b2 byte) MoveFields {
	return MoveFields{
		D:   (b1 >> 1) & 0b1,
		W:   b1 & 0b1,
		Mod: (b2 >> 6) & 0b11,
		Reg: (b2 >> 3) & 0b111,
		RM:  b2 & 0b111,
	}
}

func (f MoveFields) Width() byte { return f.W }
func (MoveFields) fields()       {}

// ImmediateFields are the fields of an immediate to register move:
//
//	[1011 w reg] [data] [data if w=1]
type ImmediateFields struct {
	W   byte
	Reg byte
}

func extractImmediateFields(b1 byte) ImmediateFields {
	return ImmediateFields{
		W:   (b1 >> 3) & 0b1,
		Reg: b1 & 0b111,
	}
}

func (f ImmediateFields) Width() byte { return f.W }
func (ImmediateFields) fields()       {}
