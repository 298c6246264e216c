package listing

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/vishen/sim8086/internal/decoder"
)

type jsonInstruction struct {
	Offset int    `json:"offset"`
	Bytes  string `json:"bytes"`
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Dst    string `json:"dst"`
	Src    string `json:"src"`
	Size   int    `json:"size"`
}

// WriteJSON writes the instructions as an indented JSON array.
func WriteJSON(w io.Writer, insts []decoder.Instruction) error {
	out := make([]jsonInstruction, 0, len(insts))
	for _, in := range insts {
		out = append(out, jsonInstruction{
			Offset: in.Offset,
			Bytes:  hex.EncodeToString(in.Bytes),
			Kind:   in.Kind.String(),
			Text:   in.String(),
			Dst:    in.Dst.String(),
			Src:    in.Src.String(),
			Size:   in.Size,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
