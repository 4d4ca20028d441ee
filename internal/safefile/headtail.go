package safefile

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Default read window. Support logs are long, but everything the analysis
// needs lives in the session header or near the end of the file.
const (
	DefaultHeadBytes = 35000
	DefaultTailBytes = 6000
)

// ReadHeadTail returns the first head bytes and the last tail bytes of a
// regular file, joined by a newline. When the two ranges overlap the whole
// file is returned. Partial UTF-8 sequences at either cut are dropped so
// the cuts never split a character.
func ReadHeadTail(path string, head, tail int) ([]byte, error) {
	if head < 0 || tail < 0 {
		return nil, fmt.Errorf("invalid read window: head=%d tail=%d", head, tail)
	}

	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size := info.Size()
	if int64(head)+int64(tail) >= size {
		// Limit to the size seen at open; a growing file is read again next time.
		data, err := io.ReadAll(io.LimitReader(f, size))
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	headBuf := make([]byte, head)
	if _, err := f.ReadAt(headBuf, 0); err != nil && err != io.EOF {
		return nil, err
	}
	tailBuf := make([]byte, tail)
	if _, err := f.ReadAt(tailBuf, size-int64(tail)); err != nil && err != io.EOF {
		return nil, err
	}

	headBuf = trimPartialSuffix(headBuf)
	tailBuf = trimPartialPrefix(tailBuf)

	out := make([]byte, 0, len(headBuf)+1+len(tailBuf))
	out = append(out, headBuf...)
	if len(headBuf) > 0 && len(tailBuf) > 0 {
		out = append(out, '\n')
	}
	return append(out, tailBuf...), nil
}

// trimPartialSuffix drops an incomplete UTF-8 sequence at the end of b.
func trimPartialSuffix(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if utf8.RuneStart(b[start]) {
			if !utf8.FullRune(b[start:]) {
				return b[:start]
			}
			return b
		}
	}
	return b
}

// trimPartialPrefix drops UTF-8 continuation bytes at the start of b.
func trimPartialPrefix(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.RuneStart(b[i]) {
			return b[i:]
		}
	}
	if len(b) >= utf8.UTFMax {
		// Not UTF-8 at all; leave it for the caller's validation.
		return b
	}
	return nil
}
