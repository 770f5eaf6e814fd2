// Package ahocorasick implements a multi-pattern string-search engine: a
// trie augmented with failure and dictionary-suffix links, built once from
// a fixed dictionary and then scanned any number of times, concurrently,
// without locking.
package ahocorasick

import (
	"sort"
	"strings"

	perr "acsearch/internal/platform/errors"
)

// Entry is a (pattern, optional keyword) pair. When Keyword is empty, the
// pattern itself is used as the canonical label.
type Entry struct {
	Pattern string
	Keyword string
}

// Options is the immutable search configuration an Automaton is built
// with.
type Options struct {
	// CaseSensitive, when false, lowercases every pattern and all scanned
	// text before any other processing.
	CaseSensitive bool

	// CheckBounds, when true, only emits matches flanked by non-word
	// characters (or text boundaries) on both sides.
	CheckBounds bool
}

// DefaultOptions returns case-sensitive matching with no bounds check.
func DefaultOptions() Options {
	return Options{CaseSensitive: true, CheckBounds: false}
}

// Automaton is the built, immutable Aho-Corasick trie. The zero value is
// not usable; build one with Build.
type Automaton struct {
	nodes         []node
	options       Options
	maxPatternLen int
}

func (a *Automaton) rootNode() *node { return &a.nodes[rootID] }

func (a *Automaton) getNode(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil, perr.InvalidNodeIDf("invalid node id %d", id)
	}
	return &a.nodes[id], nil
}

// NodeCount returns the total number of nodes in the automaton, including
// the root.
func (a *Automaton) NodeCount() int { return len(a.nodes) }

// LookupPath walks path from the root, returning the node reached and
// whether such a path exists. Intended for introspection and tests.
func (a *Automaton) LookupPath(path string) (NodeID, bool) {
	if path == "" {
		return 0, false
	}
	current := rootID
	for _, c := range path {
		next := a.nodes[current].followLink(c)
		if next == noNode {
			return 0, false
		}
		current = next
	}
	return current, true
}

// Build validates entries, constructs the trie, computes failure and
// dictionary-suffix links, and returns an immutable Automaton ready to
// scan. See internal/platform/errors for the error taxonomy.
func Build(entries []Entry, opts Options) (*Automaton, error) {
	if len(entries) == 0 {
		return nil, perr.InvalidDictionaryf("dictionary must not be empty")
	}

	prepared := make([]Entry, len(entries))
	for i, e := range entries {
		pattern := e.Pattern
		if !opts.CaseSensitive {
			pattern = strings.ToLower(pattern)
		}
		keyword := e.Keyword
		if keyword == "" {
			// The default keyword must equal the value insert ultimately
			// stores (case-folded above, then NFC-normalized), not the raw
			// input pattern.
			keyword = normalize(pattern)
		}
		prepared[i] = Entry{Pattern: pattern, Keyword: keyword}
	}

	sort.Slice(prepared, func(i, j int) bool { return prepared[i].Pattern < prepared[j].Pattern })

	for i := 0; i+1 < len(prepared); i++ {
		if prepared[i].Pattern == prepared[i+1].Pattern {
			return nil, perr.DuplicateNodef("duplicate pattern %q", prepared[i].Pattern)
		}
		if prepared[i].Pattern == "" {
			return nil, perr.InvalidDictionaryf("dictionary contains an empty pattern")
		}
	}
	if prepared[len(prepared)-1].Pattern == "" {
		return nil, perr.InvalidDictionaryf("dictionary contains an empty pattern")
	}

	a := &Automaton{
		nodes:   []node{newNode()},
		options: opts,
	}
	for _, e := range prepared {
		a.insert(e.Pattern, e.Keyword)
	}
	if err := a.computeFailureLinks(); err != nil {
		return nil, err
	}
	a.finalize()
	return a, nil
}

// insert adds the NFC-normalized pattern to the trie, creating only the
// nodes missing from the existing prefix path. Only the final node of the
// inserted pattern receives a value/keyword.
func (a *Automaton) insert(pattern, keyword string) {
	normalized := normalize(pattern)
	runes := []rune(normalized)
	if len(runes) > a.maxPatternLen {
		a.maxPatternLen = len(runes)
	}

	current := rootID
	for i, c := range runes {
		if next := a.nodes[current].followLink(c); next != noNode {
			current = next
			continue
		}
		var n node
		if i == len(runes)-1 {
			n = newTerminalNode(normalized, keyword, len(runes))
		} else {
			n = newNode()
		}
		a.nodes = append(a.nodes, n)
		newID := NodeID(len(a.nodes) - 1)
		a.nodes[current].addLink(c, newID)
		current = newID
	}
}

// finalize computes dct_to for each non-root node by walking its failure
// chain to the first pattern terminator, or leaving it absent if the chain
// reaches the root. Edge lists are already sorted by insert's addLink.
func (a *Automaton) finalize() {
	for i := range a.nodes {
		if NodeID(i) == rootID {
			continue
		}
		curr := a.nodes[i].failTo
		for curr != rootID {
			if _, _, ok := a.nodes[curr].valueKeyword(); ok {
				a.nodes[i].dctTo = curr
				break
			}
			curr = a.nodes[curr].failTo
		}
	}
}
