package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// readChunkSize matches the 4KB chunks the content is streamed in.
const readChunkSize = 4096

// extractContent reads path as UTF-8 text. The file is streamed in fixed-size
// chunks and validated as it goes, so an invalid sequence stops the read early.
// The returned string holds the file bytes unchanged.
func extractContent(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractError{Kind: ReadError, Path: path, Err: err}
	}
	defer f.Close()

	var sb strings.Builder
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		sb.Grow(int(info.Size()))
	}

	buf := make([]byte, readChunkSize+utf8.UTFMax)
	pending := 0 // bytes of an incomplete rune carried over from the last chunk
	var offset int64
	for {
		n, rerr := f.Read(buf[pending : pending+readChunkSize])
		chunk := buf[:pending+n]
		eof := errors.Is(rerr, io.EOF)

		complete := chunk
		if !eof {
			complete = trimPartialRune(chunk)
		}
		if i := invalidUTF8Offset(complete); i >= 0 {
			return "", &ExtractError{Kind: EncodingError, Path: path, Offset: offset + int64(i), Err: ErrEncoding}
		}
		sb.Write(complete)
		offset += int64(len(complete))

		pending = copy(buf, chunk[len(complete):])

		if eof {
			break
		}
		if rerr != nil {
			return "", &ExtractError{Kind: ReadError, Path: path, Err: rerr}
		}
	}
	return sb.String(), nil
}

// invalidUTF8Offset returns the index of the first invalid sequence in p, or -1.
func invalidUTF8Offset(p []byte) int {
	if utf8.Valid(p) {
		return -1
	}
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
