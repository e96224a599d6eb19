// Package text splits long model output into pieces that fit the chat platform's
// message size limit.
package text

import (
	"strings"
	"unicode/utf8"

	errs "github.com/edgard/aibridge/internal/errors"
)

// ErrInvalidLimit is returned by Chunk when the limit is not positive.
var ErrInvalidLimit = errs.NewConfigError("chunk limit must be greater than zero", nil)

// Chunk splits text into an ordered list of chunks of at most limit characters,
// breaking at line boundaries whenever possible.
//
// Lines are accumulated greedily. A line that does not fit in the current chunk
// starts a new one; a line that is longer than limit on its own is hard-split
// into limit-sized pieces and its last piece starts the next chunk. Joining the
// result with "\n" gives back the original text, except for the separators that
// were never there at hard-split points.
//
// Lengths are counted in Unicode code points so multi-byte characters are never
// cut in half. Empty text yields no chunks.
func Chunk(text string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if text == "" {
		return nil, nil
	}

	var (
		chunks  []string
		buf     strings.Builder
		bufLen  int
		started bool // an empty line still counts as content
	)

	flush := func() {
		chunks = append(chunks, buf.String())
		buf.Reset()
		bufLen = 0
		started = false
	}

	for _, line := range strings.Split(text, "\n") {
		lineLen := utf8.RuneCountInString(line)

		if started && bufLen+1+lineLen <= limit {
			buf.WriteByte('\n')
			buf.WriteString(line)
			bufLen += 1 + lineLen
			continue
		}

		if started {
			flush()
		}

		for lineLen > limit {
			cut := runeOffset(line, limit)
			chunks = append(chunks, line[:cut])
			line = line[cut:]
			lineLen -= limit
		}

		buf.WriteString(line)
		bufLen = lineLen
		started = true
	}

	if started {
		flush()
	}

	return chunks, nil
}

// runeOffset returns the byte offset of the n-th rune in s, or len(s) if s is shorter.
func runeOffset(s string, n int) int {
	i := 0
	for pos := range s {
		if i == n {
			return pos
		}
		i++
	}
	return len(s)
}
