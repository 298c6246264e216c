package listing

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/vishen/sim8086/internal/decoder"
)

// Explain renders each instruction as a tree of the fields it was decoded
// from.
func Explain(insts []decoder.Instruction) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s (%d instructions)", Header, len(insts)))
	for _, in := range insts {
		branch := tree.AddMetaBranch(fmt.Sprintf("%04x", in.Offset), in.String())
		branch.AddMetaNode("kind", in.Kind.String())
		branch.AddMetaNode("bytes", fmt.Sprintf("% x", in.Bytes))

		fields := branch.AddBranch("fields")
		switch f := in.Fields.(type) {
		case decoder.MoveFields:
			fields.AddMetaNode("d", fmt.Sprintf("%b", f.D))
			fields.AddMetaNode("w", fmt.Sprintf("%b", f.W))
			fields.AddMetaNode("mod", fmt.Sprintf("%02b %s", f.Mod, modeName(f)))
			fields.AddMetaNode("reg", fmt.Sprintf("%03b", f.Reg))
			fields.AddMetaNode("r/m", fmt.Sprintf("%03b", f.RM))
		case decoder.ImmediateFields:
			fields.AddMetaNode("w", fmt.Sprintf("%b", f.W))
			fields.AddMetaNode("reg", fmt.Sprintf("%03b", f.Reg))
		}

		branch.AddMetaNode("dst", in.Dst.String())
		branch.AddMetaNode("src", in.Src.String())
		branch.AddMetaNode("size", in.Size)
	}
	return tree.String()
}

func modeName(f decoder.MoveFields) string {
	switch f.Mod {
	case decoder.ModRegister:
		return "register"
	case decoder.ModMemoryDisp8:
		return "memory, 8-bit displacement"
	case decoder.ModMemoryDisp16:
		return "memory, 16-bit displacement"
	}
	if f.RM == 0b110 {
		return "memory, direct address"
	}
	return "memory, no displacement"
}
