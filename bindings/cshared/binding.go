// Command cshared is built with `go build -buildmode=c-shared` to produce
// a shared library other languages can bind against. It exposes the
// search engine as a small handle-based C ABI: build an automaton once,
// get back an opaque handle, then search any number of texts through it
// without re-parsing the dictionary.
//
// Every exported function takes and returns JSON-encoded payloads rather
// than bespoke C structs, and every string returned to the caller must be
// released with acsearch_free_string. Handles are released with
// acsearch_free_handle. Neither the Go runtime nor the C caller can infer
// object lifetime across this boundary, so both sides must cooperate.
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"context"
	"encoding/json"
	"sync"
	"unsafe"

	"acsearch/internal/batch"
	"acsearch/internal/core/ahocorasick"
	perr "acsearch/internal/platform/errors"
)

func main() {} // required by -buildmode=c-shared, unused

var (
	handlesMu sync.Mutex
	handles   = map[C.uintptr_t]*ahocorasick.Automaton{}
	nextID    C.uintptr_t = 1
)

// wireEntry mirrors ahocorasick.Entry for the JSON boundary, pinning the
// field names callers depend on independent of any internal renames.
type wireEntry struct {
	Pattern string `json:"pattern"`
	Keyword string `json:"keyword"`
}

func setErr(outErr **C.char, err error) {
	if outErr == nil || err == nil {
		return
	}
	payload, _ := json.Marshal(perr.WireFrom(err))
	*outErr = C.CString(string(payload))
}

//export acsearch_normalize
func acsearch_normalize(input *C.char) *C.char {
	return C.CString(ahocorasick.Normalize(C.GoString(input)))
}

//export acsearch_build
func acsearch_build(dictionaryJSON *C.char, caseSensitive, checkBounds C.int, outErr **C.char) C.uintptr_t {
	var wire []wireEntry
	if err := json.Unmarshal([]byte(C.GoString(dictionaryJSON)), &wire); err != nil {
		setErr(outErr, perr.Wrapf(err, perr.ErrorCodeInvalidDictionary, "decoding dictionary JSON"))
		return 0
	}
	entries := make([]ahocorasick.Entry, len(wire))
	for i, e := range wire {
		entries[i] = ahocorasick.Entry{Pattern: e.Pattern, Keyword: e.Keyword}
	}

	automaton, err := ahocorasick.Build(entries, ahocorasick.Options{
		CaseSensitive: caseSensitive != 0,
		CheckBounds:   checkBounds != 0,
	})
	if err != nil {
		setErr(outErr, err)
		return 0
	}

	handlesMu.Lock()
	defer handlesMu.Unlock()
	id := nextID
	nextID++
	handles[id] = automaton
	return id
}

func lookupHandle(handle C.uintptr_t) (*ahocorasick.Automaton, error) {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	a, ok := handles[handle]
	if !ok {
		return nil, perr.InvalidNodeIDf("unknown automaton handle %d", uint64(handle))
	}
	return a, nil
}

//export acsearch_search
func acsearch_search(handle C.uintptr_t, text *C.char, outErr **C.char) *C.char {
	automaton, err := lookupHandle(handle)
	if err != nil {
		setErr(outErr, err)
		return nil
	}
	matches, err := automaton.Scan(C.GoString(text))
	if err != nil {
		setErr(outErr, err)
		return nil
	}
	payload, _ := json.Marshal(matches)
	return C.CString(string(payload))
}

//export acsearch_search_many
func acsearch_search_many(handle C.uintptr_t, textsJSON *C.char, outErr **C.char) *C.char {
	automaton, err := lookupHandle(handle)
	if err != nil {
		setErr(outErr, err)
		return nil
	}

	var texts []string
	if err := json.Unmarshal([]byte(C.GoString(textsJSON)), &texts); err != nil {
		setErr(outErr, perr.Wrapf(err, perr.ErrorCodeIO, "decoding texts JSON"))
		return nil
	}

	results, err := batch.Run(context.Background(), automaton, texts, batch.Options{})
	if err != nil {
		setErr(outErr, err)
		return nil
	}
	payload, _ := json.Marshal(results)
	return C.CString(string(payload))
}

//export acsearch_free_handle
func acsearch_free_handle(handle C.uintptr_t) {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	delete(handles, handle)
}

//export acsearch_free_string
func acsearch_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}
