package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		line string
		want []byte
	}{
		{"89 d8", []byte{0x89, 0xd8}},
		{"0x8b 0x4e 0x02", []byte{0x8b, 0x4e, 0x02}},
		{"8b,16,00,00", []byte{0x8b, 0x16, 0x00, 0x00}},
		{"b90c00 ; mov cx, 12", []byte{0xb9, 0x0c, 0x00}},
		{"\tB1 0C\r", []byte{0xb1, 0x0c}},
		{"; only a comment", nil},
		{"", nil},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			got, err := parseHex(tc.line)
			require.NoError(t, err)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := parseHex("8")
	assert.ErrorContains(t, err, "odd number")
	_, err = parseHex("zz")
	assert.ErrorContains(t, err, "invalid hex")
}

func TestParseHexLines(t *testing.T) {
	data, err := parseHexLines("89 d8\n\n8b 00 ; mov ax, [bx + si]\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0xd8, 0x8b, 0x00}, data)

	_, err = parseHexLines("89 d8\nxx\n")
	assert.ErrorContains(t, err, "line 2")
}

func TestRunConsole(t *testing.T) {
	in := strings.NewReader("89 d8\nff\n8b 4e\n\nb9 0c 00 b1 0c\nquit\n89 d8\n")
	var out bytes.Buffer
	require.NoError(t, runConsole(in, &out))

	want := `mov ax, bx
error: offset 0 (11111111): unsupported opcode
error: offset 0 (10001011): truncated input
mov cx, 12
mov cl, 12
`
	assert.Equal(t, want, out.String())
}
