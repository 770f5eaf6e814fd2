package ahocorasick

import (
	"strings"

	perr "acsearch/internal/platform/errors"
)

// Match is a single occurrence of a pattern in scanned text. Start and End
// are Unicode scalar offsets (not byte offsets); End-Start equals the rune
// count of Value.
type Match struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Value   string `json:"value"`
	Keyword string `json:"keyword"`
}

// Range returns (start, end).
func (m Match) Range() (int, int) { return m.Start, m.End }

// Scan drives the automaton over text in a single pass, returning every
// match in order of its end position. Ties at the same end position are
// ordered by the dictionary-suffix chain: the current state's own match
// first, then successive dct_to shortcuts.
func (a *Automaton) Scan(text string) ([]Match, error) {
	if !a.options.CaseSensitive {
		text = strings.ToLower(text)
	}

	var buf *ringBuffer
	if a.options.CheckBounds {
		buf = newRingBuffer(a.maxPatternLen + 1)
	}

	runes := []rune(text)
	var matches []Match

	state := rootID
	for idx, ch := range runes {
		if buf != nil {
			buf.push(ch)
		}

		current, err := a.getNode(state)
		if err != nil {
			return nil, err
		}
		for state != rootID && current.followLink(ch) == noNode {
			if current.failTo == noNode {
				return nil, perr.MissingLinkf("node %d has no failure link", state)
			}
			state = current.failTo
			current, err = a.getNode(state)
			if err != nil {
				return nil, err
			}
		}
		if next := current.followLink(ch); next != noNode {
			state = next
		}

		var nextCh rune
		hasNext := idx+1 < len(runes)
		if hasNext {
			nextCh = runes[idx+1]
		}

		probeID := state
		for probeID != rootID {
			probe, err := a.getNode(probeID)
			if err != nil {
				return nil, err
			}
			if value, keyword, ok := probe.valueKeyword(); ok {
				end := idx + 1
				m := Match{Start: end - probe.patternLen, End: end, Value: value, Keyword: keyword}
				if !a.options.CheckBounds || a.isWordBounded(m, buf, hasNext, nextCh) {
					matches = append(matches, m)
				}
			}
			if probe.dctTo == noNode {
				probeID = rootID
			} else {
				probeID = probe.dctTo
			}
		}
	}

	return matches, nil
}

// isWordBounded checks whether m is flanked by non-word characters (or
// text boundaries) on both sides, using buf to recover the rune just
// before the match's start without rescanning the text.
func (a *Automaton) isWordBounded(m Match, buf *ringBuffer, hasNext bool, nextCh rune) bool {
	patLen := m.End - m.Start
	left := m.Start == 0 || !isWordChar(buf.get(buf.len()-patLen-1))
	right := !hasNext || !isWordChar(nextCh)
	return left && right
}
