// Package batch fans a list of independent texts out across a bounded
// worker pool and scans each against one shared, immutable automaton.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"acsearch/internal/core/ahocorasick"
	"acsearch/internal/platform/config"
	"acsearch/internal/platform/logger"
)

// maxWorkers caps fan-out regardless of how many texts or cores are
// available, mirroring the MAX_THREADS ceiling the reference
// implementation applies to its own thread pool.
const maxWorkers = 16

// Options configures a batch run. A zero Options uses the default worker
// cap (min(GOMAXPROCS, maxWorkers, len(texts))).
type Options struct {
	// MaxWorkers, when > 0, lowers the worker cap; it never raises it above
	// GOMAXPROCS or maxWorkers.
	MaxWorkers int
}

// OptionsFromEnv reads BATCH_MAX_WORKERS from cfg (typically
// config.New().Prefix("BATCH_")), defaulting to 0 (use the automatic cap)
// when unset.
func OptionsFromEnv(cfg config.Conf) Options {
	return Options{MaxWorkers: cfg.MayInt("MAX_WORKERS", 0)}
}

func workerCount(opt Options, n int) int {
	cap := runtime.GOMAXPROCS(0)
	if opt.MaxWorkers > 0 && opt.MaxWorkers < cap {
		cap = opt.MaxWorkers
	}
	if cap > maxWorkers {
		cap = maxWorkers
	}
	if cap > n {
		cap = n
	}
	if cap < 1 {
		cap = 1
	}
	return cap
}

// Run scans every text in texts against automaton, using up to
// Options.MaxWorkers (or the default cap) goroutines, and returns results
// in the same order as the input. A scan error on any text aborts the
// whole batch, since the only errors Scan can return indicate a corrupt
// automaton rather than a per-text condition worth tolerating.
func Run(ctx context.Context, automaton *ahocorasick.Automaton, texts []string, opt Options) ([][]ahocorasick.Match, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	workers := workerCount(opt, len(texts))
	results := make([][]ahocorasick.Match, len(texts))

	if workers == 1 {
		for i, text := range texts {
			m, err := automaton.Scan(text)
			if err != nil {
				return nil, err
			}
			results[i] = m
		}
		return results, nil
	}

	logger.C(ctx).Debug().Int("texts", len(texts)).Int("workers", workers).Msg("batch scan starting")

	chunkSize := len(texts)/workers + 1
	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(texts); start += chunkSize {
		end := min(start+chunkSize, len(texts))
		start, end := start, end
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			for i := start; i < end; i++ {
				m, err := automaton.Scan(texts[i])
				if err != nil {
					return err
				}
				results[i] = m
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
