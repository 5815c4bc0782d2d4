package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/scoring"
)

// Pipeline batch-scores a candidate universe. Records are scored
// independently, so the work fans out across a bounded worker pool; results
// land at their input index, making the output identical to a sequential
// pass regardless of worker count.
type Pipeline struct {
	weights scoring.Weights
	workers int
}

// NewPipeline creates a scoring pipeline. workers <= 1 runs sequentially.
func NewPipeline(weights scoring.Weights, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{weights: weights, workers: workers}
}

// ScoreAll returns a new slice with every record's Scores and DataQuality
// populated. The input is not mutated. The first scoring error cancels
// outstanding work and is returned.
func (p *Pipeline) ScoreAll(ctx context.Context, records []domain.CompanyRecord) ([]domain.CompanyRecord, error) {
	out := make([]domain.CompanyRecord, len(records))
	copy(out, records)

	workers := p.workers
	if workers > len(out) {
		workers = len(out)
	}
	if workers <= 1 {
		for i := range out {
			if err := p.scoreOne(&out[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	indexes := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := p.scoreOne(&out[i]); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	var sendErr error
feed:
	for i := range out {
		select {
		case indexes <- i:
		case <-ctx.Done():
			sendErr = ctx.Err()
			break feed
		case err := <-errs:
			sendErr = err
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if sendErr == nil {
		select {
		case sendErr = <-errs:
		default:
		}
	}
	if sendErr != nil {
		return nil, fmt.Errorf("score pipeline: %w", sendErr)
	}

	log.Debug().Int("records", len(out)).Int("workers", workers).Msg("Universe scored")
	return out, nil
}

func (p *Pipeline) scoreOne(r *domain.CompanyRecord) error {
	score, err := scoring.Score(r, p.weights)
	if err != nil {
		return err
	}
	r.Scores = score
	r.DataQuality = r.ComputeDataQuality()
	return nil
}
