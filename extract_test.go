package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContentRoundTrip(t *testing.T) {
	root := t.TempDir()

	tests := map[string]string{
		"empty.txt":   "",
		"short.txt":   "hello\nworld",
		"crlf.txt":    "line one\r\nline two\r\n",
		"unicode.txt": "日本語 テキスト ✓ émoji 🚀\n",
		// The euro sign straddles the first chunk boundary.
		"boundary.txt": strings.Repeat("a", readChunkSize-1) + "€" + strings.Repeat("b", readChunkSize),
		"large.txt":    strings.Repeat("0123456789abcdef\n", 3*readChunkSize),
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := touch(t, root, name, content)
			got, err := extractContent(path)
			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestExtractContentEncodingError(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		data   []byte
		offset int64
	}{
		{"invalid at start", []byte{0xff, 'a'}, 0},
		{"invalid in second chunk", append([]byte(strings.Repeat("a", readChunkSize+10)), 0xfe), int64(readChunkSize + 10)},
		{"truncated rune at eof", append([]byte("abc"), []byte("€")[:2]...), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := touchBytes(t, root, strings.ReplaceAll(tt.name, " ", "_"), tt.data)
			_, err := extractContent(path)
			require.Error(t, err)

			var ee *ExtractError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, EncodingError, ee.Kind)
			assert.Equal(t, tt.offset, ee.Offset)
			assert.True(t, isEncodingError(err))
			assert.ErrorIs(t, err, ErrEncoding)
		})
	}
}

func TestExtractContentReadError(t *testing.T) {
	_, err := extractContent(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var ee *ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, ReadError, ee.Kind)
	assert.False(t, isEncodingError(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInvalidUTF8Offset(t *testing.T) {
	assert.Equal(t, -1, invalidUTF8Offset([]byte("valid €")))
	assert.Equal(t, 2, invalidUTF8Offset([]byte{'a', 'b', 0xc0, 'c'}))
}
