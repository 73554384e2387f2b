package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinary(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		data   []byte
		sample int
		want   bool
	}{
		{"empty", nil, 0, false},
		{"ascii", []byte("hello world\n"), 0, false},
		{"utf8", []byte("héllo wörld €\n"), 0, false},
		{"nul byte", []byte("abc\x00def"), 0, true},
		{"invalid utf8", []byte{'a', 0xff, 0xfe, 'b'}, 0, true},
		{"latin1", []byte("caf\xe9"), 0, true},
		// "é" is split by the 4 byte sample; the cut rune is not held against it.
		{"rune cut at sample end", []byte("abcé and more"), 4, false},
		{"invalid after sample", append([]byte("abcd"), 0xff), 4, false},
		{"nul after sample", []byte("abcd\x00"), 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := touchBytes(t, root, strings.ReplaceAll(tt.name, " ", "_")+".dat", tt.data)
			assert.Equal(t, tt.want, isBinary(path, tt.sample))
		})
	}
}

func TestIsBinaryUnreadable(t *testing.T) {
	assert.True(t, isBinary(filepath.Join(t.TempDir(), "missing"), 0))
}

func TestTrimPartialRune(t *testing.T) {
	euro := []byte("€") // 3 bytes

	assert.Equal(t, []byte("ab"), trimPartialRune([]byte("ab")))
	assert.Equal(t, []byte("a"), trimPartialRune(append([]byte("a"), euro[:1]...)))
	assert.Equal(t, []byte("a"), trimPartialRune(append([]byte("a"), euro[:2]...)))
	assert.Equal(t, append([]byte("a"), euro...), trimPartialRune(append([]byte("a"), euro...)))
	// A stray continuation byte is left for validation to reject.
	assert.Equal(t, []byte{'a', 0x80}, trimPartialRune([]byte{'a', 0x80}))
}
