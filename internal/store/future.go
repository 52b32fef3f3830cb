package store

import (
	"context"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
)

// Future is the pending outcome of a catalog fetch. It resolves exactly once.
type Future struct {
	done chan struct{}
	res  catalog.FetchResult
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolvedFuture(res catalog.FetchResult) *Future {
	f := newFuture()
	f.resolve(res)
	return f
}

func (f *Future) resolve(res catalog.FetchResult) {
	f.res = res
	close(f.done)
}

// Done is closed once the fetch has resolved
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the fetch resolves or ctx is done. Giving up on the wait
// does not cancel the fetch.
func (f *Future) Wait(ctx context.Context) (catalog.FetchResult, error) {
	select {
	case <-f.done:
		return f.res, nil
	case <-ctx.Done():
		return catalog.FetchResult{}, ctx.Err()
	}
}
