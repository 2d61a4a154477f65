package textnorm

import (
	"context"
	"runtime"
	"sync"
)

// NormalizeAll normalizes texts on up to workers goroutines (GOMAXPROCS when
// workers <= 0). Results keep the input order. It returns ctx.Err() when the
// context ends before every text was handed out.
func (p *Pipeline) NormalizeAll(ctx context.Context, texts []string, workers int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(texts))
	if len(texts) == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = p.Normalize(texts[i])
			}
		}()
	}

	var err error
feed:
	for i := range texts {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return out, nil
}
