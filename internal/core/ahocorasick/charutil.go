package ahocorasick

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// isWordChar reports whether r counts as a "word character" for bound
// checks: Unicode alphanumeric, or underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// normalize returns the NFC form of s, applied to every pattern at build
// time. Scanned text is assumed already NFC-normalized by the caller.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// Normalize exposes normalize to callers outside the package; the
// foreign-language binding uses it to offer NFC normalization to hosts
// before their text reaches check_bounds-sensitive code.
func Normalize(s string) string { return normalize(s) }

// ringBuffer retains the last capacity runes pushed to it, overwriting the
// oldest on overflow. The scanner uses one, sized to max_pattern_len+1, to
// recover the rune immediately before a match's start without rescanning.
type ringBuffer struct {
	values   []rune
	capacity int
	pos      int
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{values: make([]rune, 0, capacity), capacity: capacity}
}

func (b *ringBuffer) push(r rune) {
	if len(b.values) < b.capacity {
		b.values = append(b.values, r)
		return
	}
	b.values[b.pos] = r
	b.pos = (b.pos + 1) % b.capacity
}

func (b *ringBuffer) len() int { return len(b.values) }

// get returns the item at logical index i (0 is oldest live). Panics if i
// is out of bounds, mirroring the construction invariant that callers only
// ever ask for positions they know are populated.
func (b *ringBuffer) get(i int) rune {
	if i < 0 || i >= len(b.values) {
		panic("ahocorasick: ring buffer index out of bounds")
	}
	return b.values[(i+b.pos)%b.capacity]
}
