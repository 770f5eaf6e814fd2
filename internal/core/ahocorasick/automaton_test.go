package ahocorasick

import (
	"sort"
	"testing"

	perr "acsearch/internal/platform/errors"
)

func entries(patterns ...string) []Entry {
	out := make([]Entry, len(patterns))
	for i, p := range patterns {
		out[i] = Entry{Pattern: p}
	}
	return out
}

func TestBuild_EmptyDictionary(t *testing.T) {
	_, err := Build(nil, DefaultOptions())
	if !perr.IsCode(err, perr.ErrorCodeInvalidDictionary) {
		t.Fatalf("Build(nil) err = %v, want InvalidDictionary", err)
	}
}

func TestBuild_EmptyPattern(t *testing.T) {
	_, err := Build(entries("ab", ""), DefaultOptions())
	if !perr.IsCode(err, perr.ErrorCodeInvalidDictionary) {
		t.Fatalf("Build with empty pattern err = %v, want InvalidDictionary", err)
	}
}

func TestBuild_DuplicatePattern(t *testing.T) {
	_, err := Build(entries("ab", "cd", "ab"), DefaultOptions())
	if !perr.IsCode(err, perr.ErrorCodeDuplicateNode) {
		t.Fatalf("Build with duplicate err = %v, want DuplicateNode", err)
	}
}

func TestBuild_CaseInsensitiveDuplicate(t *testing.T) {
	_, err := Build(entries("AB", "ab"), Options{CaseSensitive: false})
	if !perr.IsCode(err, perr.ErrorCodeDuplicateNode) {
		t.Fatalf("case-insensitive duplicate err = %v, want DuplicateNode", err)
	}
}

func TestBuild_Initialization(t *testing.T) {
	a, err := Build(entries("ab", "abc", "cd"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root := a.rootNode()
	if root.failTo != noNode {
		t.Fatalf("root has a fail link: %v", root.failTo)
	}
	if len(root.next) != 2 {
		t.Fatalf("root fan-out = %d, want 2", len(root.next))
	}

	var rootChars []rune
	for _, l := range root.next {
		rootChars = append(rootChars, l.Ch)
	}
	sort.Slice(rootChars, func(i, j int) bool { return rootChars[i] < rootChars[j] })
	if rootChars[0] != 'a' || rootChars[1] != 'c' {
		t.Fatalf("root chars = %v, want [a c]", rootChars)
	}

	if a.NodeCount() != 6 {
		t.Fatalf("NodeCount() = %d, want 6 (root, a, ab, abc, c, cd)", a.NodeCount())
	}

	var dictValues []string
	for _, n := range a.nodes {
		if v, _, ok := n.valueKeyword(); ok {
			dictValues = append(dictValues, v)
		}
	}
	sort.Strings(dictValues)
	if len(dictValues) != 3 || dictValues[0] != "ab" || dictValues[1] != "abc" || dictValues[2] != "cd" {
		t.Fatalf("dictValues = %v, want [ab abc cd]", dictValues)
	}
}

func TestBuild_NodeByPath(t *testing.T) {
	a, err := Build(entries("ab", "abc", "bcd", "cd", "cb"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	abID, ok := a.LookupPath("ab")
	if !ok {
		t.Fatalf("LookupPath(ab) not found")
	}
	abNode := a.nodes[abID]
	value, _, dict := abNode.valueKeyword()
	if !dict || value != "ab" {
		t.Fatalf("ab node value/dict = %q/%v, want ab/true", value, dict)
	}

	if _, ok := a.LookupPath("zz"); ok {
		t.Fatalf("LookupPath(zz) unexpectedly found")
	}
	if _, ok := a.LookupPath(""); ok {
		t.Fatalf("LookupPath(\"\") unexpectedly found")
	}
}

func TestBuild_KeywordDefaultsToPattern(t *testing.T) {
	a, err := Build([]Entry{{Pattern: "abc"}, {Pattern: "ac", Keyword: "abc"}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	id, ok := a.LookupPath("abc")
	if !ok {
		t.Fatalf("LookupPath(abc) not found")
	}
	value, keyword, _ := a.nodes[id].valueKeyword()
	if value != "abc" || keyword != "abc" {
		t.Fatalf("abc node = %q/%q, want abc/abc", value, keyword)
	}
}

func TestBuild_KeywordDefaultsToCaseFoldedPattern(t *testing.T) {
	a, err := Build([]Entry{{Pattern: "ABC"}}, Options{CaseSensitive: false})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	id, ok := a.LookupPath("abc")
	if !ok {
		t.Fatalf("LookupPath(abc) not found")
	}
	value, keyword, _ := a.nodes[id].valueKeyword()
	if value != "abc" || keyword != "abc" {
		t.Fatalf("ABC node = %q/%q, want abc/abc (keyword must match the stored, case-folded value)", value, keyword)
	}
}

func TestBuild_DuplicateEmptyPatternsReportDuplicate(t *testing.T) {
	_, err := Build(entries("", ""), DefaultOptions())
	if !perr.IsCode(err, perr.ErrorCodeDuplicateNode) {
		t.Fatalf("Build with two empty patterns err = %v, want DuplicateNode", err)
	}
}

func TestBuild_DictToLinksHaveKeyword(t *testing.T) {
	// "bb" is a failure-chain ancestor of "Cxaabb" et al.; every non-root
	// node whose dct_to is set must point at an actual pattern terminator.
	a, err := Build(entries("a", "abb", "bb", "bCd", "bCx", "Cxaabb"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for id, n := range a.nodes {
		if NodeID(id) == rootID || n.dctTo == noNode {
			continue
		}
		target := a.nodes[n.dctTo]
		if _, _, ok := target.valueKeyword(); !ok {
			t.Fatalf("node %d dct_to %d is not a pattern terminator", id, n.dctTo)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a1, err := Build(entries("ab", "abc", "cd", "bc"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build a1: %v", err)
	}
	// Same entries, different input order.
	a2, err := Build(entries("bc", "cd", "abc", "ab"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build a2: %v", err)
	}
	if a1.NodeCount() != a2.NodeCount() {
		t.Fatalf("node counts differ: %d vs %d", a1.NodeCount(), a2.NodeCount())
	}

	text := "xabcdybcz"
	m1, err := a1.Scan(text)
	if err != nil {
		t.Fatalf("Scan a1: %v", err)
	}
	m2, err := a2.Scan(text)
	if err != nil {
		t.Fatalf("Scan a2: %v", err)
	}
	if len(m1) != len(m2) {
		t.Fatalf("match counts differ: %d vs %d", len(m1), len(m2))
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("match %d differs: %+v vs %+v", i, m1[i], m2[i])
		}
	}
}
