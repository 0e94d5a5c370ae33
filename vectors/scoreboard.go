package vectors

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const batchSize = 256

// Scoreboard checks Model against Reference, or against the stored
// expectations of each vector when Reference is nil.
type Scoreboard struct {
	Model     Model
	Reference Model
	// Workers bounds the number of concurrent batches; zero means GOMAXPROCS.
	Workers int
}

type Report struct {
	Total   int
	Failed  int
	Skipped int
	// Failures holds the indices of the failing vectors.
	Failures *roaring.Bitmap
}

func (r Report) Passed() bool {
	return r.Failed == 0
}

// Run evaluates every vector and compares the results, after
// canonicalisation for arithmetic ops. Vectors that a model does not
// support, or that have no expectation when there is no reference, are
// skipped.
func (s *Scoreboard) Run(ctx context.Context, vs []Vector) (Report, error) {
	report := Report{Total: len(vs), Failures: roaring.New()}
	var mu sync.Mutex

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(vs); start += batchSize {
		start := start // per-iteration copy; go.mod targets go 1.21 loop semantics
		end := min(start+batchSize, len(vs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				got, want, ok, err := s.eval(vs[i])
				if err != nil {
					return err
				}

				mu.Lock()
				switch {
				case !ok:
					report.Skipped++
				case got != want:
					report.Failed++
					report.Failures.Add(uint32(i))
				}
				mu.Unlock()

				if ok && got != want {
					log.Warn().
						Int("index", i).
						Str("vector", vs[i].String()).
						Str("model", s.Model.Name()).
						Str("got", FormatResult(vs[i].Op, got, vs[i].Width)).
						Str("want", FormatResult(vs[i].Op, want, vs[i].Width)).
						Msg("mismatch")
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	log.Debug().
		Int("total", report.Total).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("scoreboard done")
	return report, nil
}

// eval returns the model result and the expectation. ok is false when the
// vector cannot be checked.
func (s *Scoreboard) eval(v Vector) (got, want uint64, ok bool, err error) {
	got, err = s.Model.Eval(v)
	if errors.Is(err, ErrUnsupported) {
		return 0, 0, false, nil
	} else if err != nil {
		return 0, 0, false, err
	}

	switch {
	case s.Reference != nil:
		want, err = s.Reference.Eval(v)
		if errors.Is(err, ErrUnsupported) {
			return 0, 0, false, nil
		} else if err != nil {
			return 0, 0, false, err
		}
	case v.HasWant:
		want = v.Want
	default:
		return 0, 0, false, nil
	}

	if v.Op.Arithmetic() {
		got = Canonicalize(got, v.Width)
		want = Canonicalize(want, v.Width)
	}
	return got, want, true, nil
}
