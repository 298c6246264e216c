package decoder

// addressBase holds the registers an r/m value adds together in memory mode.
// Only the paired forms carry an index register.
type addressBase struct {
	base     Register
	index    Register
	hasIndex bool
}

// Effective address calculation, indexed by r/m. Entry 0b110 is replaced by a
// direct address when mod is 0b00.
var effectiveAddr = [8]addressBase{
	0b000: {base: BX, index: SI, hasIndex: true},
	0b001: {base: BX, index: DI, hasIndex: true},
	0b010: {base: BP, index: SI, hasIndex: true},
	0b011: {base: BP, index: DI, hasIndex: true},
	0b100: {base: SI},
	0b101: {base: DI},
	0b110: {base: BP},
	0b111: {base: BX},
}

func isDirectAddress(mod, rm byte) bool {
	return mod == ModMemory && rm == rmDirect
}
