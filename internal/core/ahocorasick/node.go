package ahocorasick

import "sort"

// NodeID addresses a node in an Automaton's node vector. The root is
// always NodeID 0. noNode marks an absent pointer (no fail/dict link yet).
type NodeID int

const (
	rootID NodeID = 0
	noNode NodeID = -1
)

// Link is an outgoing labeled edge: the rune that extends a pattern one
// step, and the node reached by following it.
type Link struct {
	Ch rune
	To NodeID
}

// node is a single automaton state. value/keyword are set only on nodes
// that terminate a pattern; hasValue tags that case instead of carrying a
// second node variant.
type node struct {
	value      string
	keyword    string
	hasValue   bool
	patternLen int

	next []Link

	failTo NodeID
	dctTo  NodeID
}

func newNode() node {
	return node{failTo: noNode, dctTo: noNode}
}

// newTerminalNode builds a node that terminates the given pattern.
func newTerminalNode(value, keyword string, patternLen int) node {
	return node{
		value:      value,
		keyword:    keyword,
		hasValue:   true,
		patternLen: patternLen,
		failTo:     noNode,
		dctTo:      noNode,
	}
}

// followLink returns the child reached on ch, or noNode if there is none.
// Below the linear/binary search threshold a plain scan wins on cache
// locality; sorted fan-outs above it get a binary search instead.
const linearSearchThreshold = 8

func (n *node) followLink(ch rune) NodeID {
	if len(n.next) < linearSearchThreshold {
		for _, l := range n.next {
			if l.Ch == ch {
				return l.To
			}
		}
		return noNode
	}
	i := sort.Search(len(n.next), func(i int) bool { return n.next[i].Ch >= ch })
	if i < len(n.next) && n.next[i].Ch == ch {
		return n.next[i].To
	}
	return noNode
}

// valueKeyword reports whether the node terminates a pattern and returns it.
func (n *node) valueKeyword() (value, keyword string, ok bool) {
	if !n.hasValue {
		return "", "", false
	}
	return n.value, n.keyword, true
}

// addLink inserts a new edge in sorted position, keeping next sorted at all
// times so followLink's binary-search branch is always correct, even
// mid-build before the automaton is finalized.
func (n *node) addLink(ch rune, to NodeID) {
	i := sort.Search(len(n.next), func(i int) bool { return n.next[i].Ch >= ch })
	n.next = append(n.next, Link{})
	copy(n.next[i+1:], n.next[i:])
	n.next[i] = Link{Ch: ch, To: to}
}
