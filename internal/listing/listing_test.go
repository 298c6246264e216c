package listing

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/vishen/sim8086/internal/decoder"
)

var scenarios = []byte{
	0x89, 0xd8, // mov ax, bx
	0x8b, 0x00, // mov ax, [bx + si]
	0x8b, 0x4e, 0x02, // mov cx, [bp + 2]
	0x8b, 0x16, 0x00, 0x00, // mov dx, [0]
	0xb9, 0x0c, 0x00, // mov cx, 12
}

func decode(t *testing.T, data []byte) []decoder.Instruction {
	t.Helper()
	insts, err := decoder.Disassemble(data)
	require.NoError(t, err)
	return insts
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, decode(t, scenarios), Options{}))

	want := `bits 16
mov ax, bx
mov ax, [bx + si]
mov cx, [bp + 2]
mov dx, [0]
mov cx, 12
`
	assert.Equal(t, want, buf.String())
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil, Options{}))
	assert.Equal(t, "bits 16\n", buf.String())
}

func TestWriteTextDebug(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, decode(t, scenarios[:2]), Options{Debug: true}))
	assert.Equal(t, "bits 16\nmov ax, bx ; ( 10001001 11011000 )\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, decode(t, scenarios[:7])))

	want := `[
  {"offset": 0, "bytes": "89d8", "kind": "register/memory to/from register",
   "text": "mov ax, bx", "dst": "ax", "src": "bx", "size": 2},
  {"offset": 2, "bytes": "8b00", "kind": "register/memory to/from register",
   "text": "mov ax, [bx + si]", "dst": "ax", "src": "[bx + si]", "size": 2},
  {"offset": 4, "bytes": "8b4e02", "kind": "register/memory to/from register",
   "text": "mov cx, [bp + 2]", "dst": "cx", "src": "[bp + 2]", "size": 3}
]`
	assertSameJSON(t, want, buf.String())
}

// assertSameJSON compares two JSON arrays.
func assertSameJSON(t *testing.T, want, got string) {
	t.Helper()
	var left, right []any
	require.NoError(t, json.Unmarshal([]byte(want), &left))
	require.NoError(t, json.Unmarshal([]byte(got), &right))

	delta := gojsondiff.New().CompareArrays(left, right)
	if !delta.Modified() {
		return
	}
	diff, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{ShowArrayIndex: true}).Format(delta)
	require.NoError(t, err)
	t.Errorf("JSON listing differs:\n%s", diff)
}

func TestAssertSameJSONSeesChanges(t *testing.T) {
	left := []any{map[string]any{"text": "mov ax, bx", "size": 2.0}}
	right := []any{map[string]any{"text": "mov bx, ax", "size": 2.0}}
	assert.True(t, gojsondiff.New().CompareArrays(left, right).Modified())
	assert.False(t, gojsondiff.New().CompareArrays(left, left).Modified())
}

func TestHexDump(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = byte(i)
	}

	var buf bytes.Buffer
	require.NoError(t, HexDump(&buf, data))

	want := "00000000: 0001 0203 0405 0607 0809 0a0b 0c0d 0e0f \n" +
		"00000016: 1011 \n"
	assert.Equal(t, want, buf.String())
}

func TestExplain(t *testing.T) {
	out := Explain(decode(t, scenarios[:7]))

	assert.True(t, strings.HasPrefix(out, "bits 16 (3 instructions)"))
	for _, s := range []string{
		"mov ax, bx",
		"mov cx, [bp + 2]",
		"01 memory, 8-bit displacement",
		"00 memory, no displacement",
		"11 register",
		"8b 4e 02",
	} {
		assert.Contains(t, out, s)
	}
}

func TestExplainImmediate(t *testing.T) {
	out := Explain(decode(t, []byte{0xb1, 0x0c}))
	assert.Contains(t, out, "immediate to register")
	assert.Contains(t, out, "mov cl, 12")
	assert.NotContains(t, out, "mod")
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, decode(t, scenarios[:2]), false))
	assert.Contains(t, buf.String(), "Mnemonic")
	assert.Contains(t, buf.String(), `"mov"`)
	assert.NotContains(t, buf.String(), "\x1b[")
}
