// Command acsearch runs a single Aho-Corasick search: it builds an
// automaton from a TSV dictionary file, scans a text file against it, and
// writes the matches to a TSV output file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"acsearch/internal/core/ahocorasick"
	"acsearch/internal/platform/config"
	perr "acsearch/internal/platform/errors"
	"acsearch/internal/platform/logger"
)

type args struct {
	dictionaryFile  string
	textFile        string
	caseInsensitive bool
	wordBounds      bool
	outputFile      string
}

// parseArgs reads flags, falling back to CLI_* environment overrides
// (via internal/platform/config) for defaults a caller wants fixed across
// many invocations without repeating flags each time.
func parseArgs(cfg config.Conf) args {
	var a args
	flag.StringVar(&a.dictionaryFile, "dictionary-file", "", "TSV file of keyword/pattern entries to search for (required)")
	flag.StringVar(&a.textFile, "text-file", "", "file containing the text to search (required)")
	flag.BoolVar(&a.caseInsensitive, "case-insensitive", cfg.MayBool("CASE_INSENSITIVE", false), "match without regard to case")
	flag.BoolVar(&a.wordBounds, "word-bounds", cfg.MayBool("WORD_BOUNDS", false), "only report matches flanked by non-word characters")
	flag.StringVar(&a.outputFile, "output-file", cfg.MayString("OUTPUT_FILE", "output.tsv"), "where to write the TSV match report")
	flag.Parse()
	return a
}

// readDictionary parses a TSV dictionary file: one entry per line, first
// column is the keyword or pattern, optional second column is the pattern.
// A missing second column means the first column is both pattern and
// keyword. Stray tabs within a field are flattened to spaces.
func readDictionary(path string) ([]ahocorasick.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "opening dictionary file %q", path)
	}
	defer f.Close()

	var entries []ahocorasick.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		first := strings.ReplaceAll(strings.TrimSpace(parts[0]), "\t", " ")
		if len(parts) == 1 {
			entries = append(entries, ahocorasick.Entry{Pattern: first, Keyword: first})
			continue
		}
		second := strings.ReplaceAll(strings.TrimSpace(parts[1]), "\t", " ")
		entries = append(entries, ahocorasick.Entry{Pattern: second, Keyword: first})
	}
	if err := scanner.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "reading dictionary file %q", path)
	}
	return entries, nil
}

func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "reading text file %q", path)
	}
	return string(b), nil
}

func writeMatches(path string, matches []ahocorasick.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "creating output file %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString("start\tend\tvalue\tkeyword\n"); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "writing output file %q", path)
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", m.Start, m.End, m.Value, m.Keyword); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "writing output file %q", path)
		}
	}
	return w.Flush()
}

func run(ctx context.Context, a args) error {
	if a.dictionaryFile == "" || a.textFile == "" {
		return perr.New(perr.ErrorCodeInvalidDictionary, "--dictionary-file and --text-file are required")
	}

	entries, err := readDictionary(a.dictionaryFile)
	if err != nil {
		return err
	}
	text, err := readText(a.textFile)
	if err != nil {
		return err
	}

	automaton, err := ahocorasick.Build(entries, ahocorasick.Options{
		CaseSensitive: !a.caseInsensitive,
		CheckBounds:   a.wordBounds,
	})
	if err != nil {
		return err
	}

	logger.C(ctx).Debug().
		Int("dictionary_entries", len(entries)).
		Int("automaton_nodes", automaton.NodeCount()).
		Msg("automaton built")

	matches, err := automaton.Scan(text)
	if err != nil {
		return err
	}

	if err := writeMatches(a.outputFile, matches); err != nil {
		return err
	}

	logger.C(ctx).Info().Int("matches", len(matches)).Str("output_file", a.outputFile).Msg("scan complete")
	return nil
}

func main() {
	logger.Init(logger.FromEnv())
	cfg := config.New().Prefix("CLI_")

	ctx := logger.WithJob(context.Background(), "", uuid.NewString())

	if err := run(ctx, parseArgs(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	os.Exit(0)
}
