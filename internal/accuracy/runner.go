package accuracy

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

const DefaultWorkers = 4

// CandidateResult pairs a candidate with its per-horizon results.
type CandidateResult struct {
	Candidate Candidate
	Results   map[params.Horizon]AccuracyResult
}

// ProgressFunc is called after each candidate finishes.
type ProgressFunc func(done, total int)

// ParallelAccuracyRunner fans candidates out over a bounded worker pool.
type ParallelAccuracyRunner struct {
	eval    ConfigEvaluator
	workers int
}

func NewParallelAccuracyRunner(eval ConfigEvaluator, workers int) *ParallelAccuracyRunner {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &ParallelAccuracyRunner{eval: eval, workers: workers}
}

// EvaluateConfigsParallel evaluates every candidate and returns results in
// input order. The first error cancels outstanding work and is returned
// without partial results.
func (r *ParallelAccuracyRunner) EvaluateConfigsParallel(ctx context.Context, candidates []Candidate, progress ProgressFunc) ([]CandidateResult, error) {
	out := make([]CandidateResult, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var mu sync.Mutex
	done := 0
	for i, c := range candidates {
		g.Go(func() error {
			res, err := r.eval.Evaluate(ctx, c)
			if err != nil {
				return fmt.Errorf("evaluating %s: %w", c.Label, err)
			}
			out[i] = CandidateResult{Candidate: c, Results: res}
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(candidates))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
