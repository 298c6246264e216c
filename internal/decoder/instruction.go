package decoder

// Instruction is a single decoded instruction.
type Instruction struct {
	Offset   int
	Bytes    []byte
	Kind     Kind
	Fields   Fields
	Mnemonic string

	Dst Operand
	Src Operand

	// Size is the number of bytes consumed from the stream.
	Size int
}

func (i Instruction) String() string {
	return i.Mnemonic + " " + i.Dst.String() + ", " + i.Src.String()
}
