package main

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"
)

// defaultSampleBytes is how much of a file isBinary inspects.
const defaultSampleBytes = 8192

// isBinary samples the first sampleBytes of path and reports whether it looks
// like binary data: a NUL byte, or bytes that are not valid UTF-8. Files that
// cannot be opened or read are treated as binary.
func isBinary(path string, sampleBytes int) bool {
	if sampleBytes <= 0 {
		sampleBytes = defaultSampleBytes
	}
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, sampleBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	sample := buf[:n]

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	// A full sample may end in the middle of a rune; only judge complete ones.
	if n == sampleBytes {
		sample = trimPartialRune(sample)
	}
	return !utf8.Valid(sample)
}

// trimPartialRune drops a trailing incomplete (but so far well-formed) UTF-8
// sequence, so that it can be validated together with the bytes that follow.
func trimPartialRune(p []byte) []byte {
	// A rune is at most utf8.UTFMax bytes, so only the tail needs checking.
	for i := 1; i <= utf8.UTFMax-1 && i <= len(p); i++ {
		c := p[len(p)-i]
		if c < utf8.RuneSelf {
			return p // ASCII byte: nothing pending
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(p[len(p)-i:]) {
				return p[:len(p)-i]
			}
			return p
		}
	}
	return p
}
