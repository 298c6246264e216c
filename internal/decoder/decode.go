package decoder

// reader reads the bytes of one instruction. It never reads past the end of
// data.
type reader struct {
	data []byte
	di   int
}

// read next byte
func (r *reader) next() (byte, error) {
	if r.di >= len(r.data) {
		return 0, ErrTruncatedInput
	}
	b := r.data[r.di]
	r.di++
	return b, nil
}

// read an 8-bit immediate
func (r *reader) imm8() (uint16, error) {
	b, err := r.next()
	return uint16(b), err
}

// read full 16-bit little-endian immediate
func (r *reader) imm16() (uint16, error) {
	lo, err := r.next()
	if err != nil {
		return 0, err
	}
	hi, err := r.next()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// DecodeAt decodes the instruction starting at offset. It does not modify data
// and returns the same result for the same input.
func DecodeAt(data []byte, offset int) (Instruction, error) {
	if offset < 0 || offset >= len(data) {
		return Instruction{}, &DecodeError{Offset: offset, Err: ErrTruncatedInput}
	}

	opcode := data[offset]
	p, err := classify(opcode)
	if err != nil {
		return Instruction{}, &DecodeError{Offset: offset, Opcode: opcode, Err: err}
	}

	r := &reader{data: data, di: offset}
	var in Instruction
	switch p.Kind {
	case RegisterMemoryMove:
		in, err = r.move()
	case ImmediateToRegisterMove:
		in, err = r.immediate()
	default:
		err = ErrInternal
	}
	if err != nil {
		return Instruction{}, &DecodeError{Offset: offset, Opcode: opcode, Err: err}
	}

	in.Offset = offset
	in.Kind = p.Kind
	in.Mnemonic = p.Mnemonic
	in.Size = r.di - offset
	in.Bytes = data[offset:r.di:r.di]
	return in, nil
}

// [100010 d w] [mod reg r/m] [disp-lo] [disp-hi]
func (r *reader) move() (Instruction, error) {
	b1, err := r.next()
	if err != nil {
		return Instruction{}, err
	}
	b2, err := r.next()
	if err != nil {
		return Instruction{}, err
	}
	f := extractMoveFields(b1, b2)

	reg := register(f.Reg, f.W)
	rm, err := r.modRM(f.Mod, f.RM, f.W)
	if err != nil {
		return Instruction{}, err
	}

	in := Instruction{Fields: f, Dst: rm, Src: reg}
	if f.D == 1 {
		in.Dst, in.Src = in.Src, in.Dst
	}
	return in, nil
}

func (r *reader) modRM(mod, rm, w byte) (Operand, error) {
	if mod == ModRegister {
		return register(rm, w), nil
	}

	if isDirectAddress(mod, rm) {
		addr, err := r.imm16()
		if err != nil {
			return nil, err
		}
		return EffectiveAddress{Disp: addr, Direct: true}, nil
	}

	ea := effectiveAddr[rm]
	o := EffectiveAddress{Base: ea.base, Index: ea.index, HasIndex: ea.hasIndex}

	// Displacements are kept unsigned.
	var err error
	switch mod {
	case ModMemoryDisp8:
		o.Disp, err = r.imm8()
	case ModMemoryDisp16:
		o.Disp, err = r.imm16()
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// [1011 w reg] [data] [data if w=1]
func (r *reader) immediate() (Instruction, error) {
	b1, err := r.next()
	if err != nil {
		return Instruction{}, err
	}
	f := extractImmediateFields(b1)

	var data uint16
	if f.W == 1 {
		data, err = r.imm16()
	} else {
		data, err = r.imm8()
	}
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Fields: f,
		Dst:    register(f.Reg, f.W),
		Src:    Immediate(data),
	}, nil
}
