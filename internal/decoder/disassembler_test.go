package decoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishen/sim8086/internal/log"
)

// listing_0039_more_movs from the course material, minus the signed
// displacement lines.
var moreMovs = []byte{
	0x89, 0xde, // mov si, bx
	0x88, 0xc6, // mov dh, al
	0xb1, 0x0c, // mov cl, 12
	0xb5, 0xf4, // mov ch, 244
	0xb9, 0x0c, 0x00, // mov cx, 12
	0xb9, 0xf4, 0xff, // mov cx, 65524
	0xba, 0x6c, 0x0f, // mov dx, 3948
	0x8a, 0x00, // mov al, [bx + si]
	0x8b, 0x1b, // mov bx, [bp + di]
	0x8b, 0x56, 0x00, // mov dx, [bp]
	0x8a, 0x60, 0x04, // mov ah, [bx + si + 4]
	0x8a, 0x80, 0x87, 0x13, // mov al, [bx + si + 4999]
	0x89, 0x09, // mov [bx + di], cx
	0x88, 0x0a, // mov [bp + si], cl
	0x88, 0x6e, 0x00, // mov [bp], ch
}

var moreMovsText = []string{
	"mov si, bx",
	"mov dh, al",
	"mov cl, 12",
	"mov ch, 244",
	"mov cx, 12",
	"mov cx, 65524",
	"mov dx, 3948",
	"mov al, [bx + si]",
	"mov bx, [bp + di]",
	"mov dx, [bp]",
	"mov ah, [bx + si + 4]",
	"mov al, [bx + si + 4999]",
	"mov [bx + di], cx",
	"mov [bp + si], cl",
	"mov [bp], ch",
}

func TestDisassemble(t *testing.T) {
	insts, err := Disassemble(moreMovs)
	require.NoError(t, err)
	require.Len(t, insts, len(moreMovsText))

	total := 0
	for i, in := range insts {
		assert.Equal(t, moreMovsText[i], in.String())
		assert.Equal(t, total, in.Offset)
		total += in.Size
	}
	assert.Equal(t, len(moreMovs), total)
}

func TestDisassembleEmpty(t *testing.T) {
	insts, err := Disassemble(nil)
	require.NoError(t, err)
	assert.Empty(t, insts)
}

func TestDisassembleIsAllOrNothing(t *testing.T) {
	data := append([]byte{0x89, 0xd8}, 0xff, 0x00)
	insts, err := Disassemble(data)
	assert.Nil(t, insts)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, ErrUnsupportedOpcode)
	assert.Equal(t, 2, de.Offset)
}

func TestDisassemblerStopsAtError(t *testing.T) {
	d := NewDisassembler([]byte{0x89, 0xd8, 0x8b, 0x4e})

	in, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "mov ax, bx", in.String())
	assert.Equal(t, 2, d.Offset())
	assert.True(t, d.More())

	_, err = d.Next()
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.False(t, d.More())
	assert.Equal(t, 2, d.Offset())

	_, again := d.Next()
	assert.Equal(t, err, again)
	assert.Equal(t, err, d.Err())
}

func TestDisassembleTraceLogging(t *testing.T) {
	prev := log.Root()
	t.Cleanup(func() { log.SetDefault(prev) })

	var buf bytes.Buffer
	log.SetDefault(log.NewLogger(log.NewHandler(&buf, log.LevelDebug)))
	_, err := Disassemble(moreMovs[:4])
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"msg":"decoded"`)
	assert.Contains(t, buf.String(), `"msg":"disassembled"`)

	buf.Reset()
	log.SetDefault(log.NewLogger(log.NewHandler(&buf, log.LevelTrace)))
	_, err = Disassemble(moreMovs[:4])
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"text":"mov si, bx"`)
	assert.Contains(t, buf.String(), `"text":"mov dh, al"`)
}
