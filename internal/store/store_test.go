package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedFetcher blocks every fetch until release is closed
type gatedFetcher struct {
	calls    atomic.Int32
	release  chan struct{}
	products []models.Product
	err      error
}

func newGatedFetcher(products []models.Product, err error) *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{}), products: products, err: err}
}

func (f *gatedFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	f.calls.Add(1)
	<-f.release
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func wait(t *testing.T, f *Future) catalog.FetchResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := f.Wait(ctx)
	require.NoError(t, err, "fetch did not resolve")
	return res
}

func TestStore_InitialState(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)

	st := s.State()
	assert.Equal(t, StatusIdle, SelectCatalog(st).Status)
	assert.Empty(t, SelectCatalog(st).Error)
	assert.Empty(t, SelectCatalog(st).Products)
	assert.Empty(t, SelectCart(st).CartItems)
}

func TestStore_RequestFetchSucceeds(t *testing.T) {
	want := catalog.SeedProducts()
	fetcher := newGatedFetcher(want, nil)
	s := New(fetcher, nil)

	f := s.RequestFetch(context.Background())
	assert.Equal(t, StatusLoading, SelectCatalog(s.State()).Status, "loading must be visible as soon as the request returns")

	close(fetcher.release)
	res := wait(t, f)
	require.True(t, res.Succeeded())

	cat := SelectCatalog(s.State())
	assert.Equal(t, StatusSucceeded, cat.Status)
	assert.Empty(t, cat.Error)
	if diff := cmp.Diff(want, cat.Products, cmp.Comparer(decimal.Decimal.Equal)); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_RequestFetchFails(t *testing.T) {
	fetcher := newGatedFetcher(nil, errors.New("network error"))
	s := New(fetcher, nil)

	f := s.RequestFetch(context.Background())
	close(fetcher.release)
	res := wait(t, f)

	require.False(t, res.Succeeded())
	cat := SelectCatalog(s.State())
	assert.Equal(t, StatusFailed, cat.Status)
	assert.Equal(t, "network error", cat.Error)
	assert.Empty(t, cat.Products)
}

func TestStore_FailureKeepsStaleProducts(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)
	wait(t, s.RequestFetch(context.Background()))

	s.fetcher = &errFetcher{err: errors.New("upstream down")}
	wait(t, s.RequestFetch(context.Background()))

	cat := SelectCatalog(s.State())
	assert.Equal(t, StatusFailed, cat.Status)
	assert.Equal(t, "upstream down", cat.Error)
	assert.Len(t, cat.Products, len(catalog.SeedProducts()))
}

type errFetcher struct{ err error }

func (f *errFetcher) FetchProducts(context.Context) ([]models.Product, error) {
	return nil, f.err
}

func TestStore_ConcurrentRequestsJoinInFlightFetch(t *testing.T) {
	fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
	s := New(fetcher, nil)

	var wg sync.WaitGroup
	futures := make([]*Future, 20)
	for i := range futures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			futures[i] = s.RequestFetch(context.Background())
		}(i)
	}
	wg.Wait()

	close(fetcher.release)
	for _, f := range futures {
		assert.Same(t, futures[0], f)
		wait(t, f)
	}

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestStore_SecondRequestRefetches(t *testing.T) {
	fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
	close(fetcher.release)
	s := New(fetcher, nil)

	wait(t, s.RequestFetch(context.Background()))
	wait(t, s.RequestFetch(context.Background()))

	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestStore_FetchIfIdle(t *testing.T) {
	t.Run("fetches from idle", func(t *testing.T) {
		fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
		close(fetcher.release)
		s := New(fetcher, nil)

		res := wait(t, s.Fetch(context.Background(), FetchIfIdle))

		assert.True(t, res.Succeeded())
		assert.Equal(t, int32(1), fetcher.calls.Load())
	})

	t.Run("does not refetch after success", func(t *testing.T) {
		fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
		close(fetcher.release)
		s := New(fetcher, nil)
		wait(t, s.RequestFetch(context.Background()))

		res := wait(t, s.Fetch(context.Background(), FetchIfIdle))

		assert.True(t, res.Succeeded())
		assert.Len(t, res.Products, len(catalog.SeedProducts()))
		assert.Equal(t, int32(1), fetcher.calls.Load())
	})

	t.Run("reports a failed catalog without refetching", func(t *testing.T) {
		fetcher := newGatedFetcher(nil, errors.New("network error"))
		close(fetcher.release)
		s := New(fetcher, nil)
		wait(t, s.RequestFetch(context.Background()))

		res := wait(t, s.Fetch(context.Background(), FetchIfIdle))

		require.Error(t, res.Err)
		assert.Equal(t, "network error", res.Err.Error())
		assert.Equal(t, int32(1), fetcher.calls.Load())
	})
}

func TestStore_FetchOutlivesCallerContext(t *testing.T) {
	fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
	s := New(fetcher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	f := s.RequestFetch(ctx)
	cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(fetcher.release)
	res := wait(t, f)
	assert.True(t, res.Succeeded())
	assert.Equal(t, StatusSucceeded, SelectCatalog(s.State()).Status)
}

func TestStore_DispatchCartActions(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)
	p := models.Product{ID: 1, Title: "x", Price: decimal.NewFromInt(10)}

	s.Dispatch(ItemAdded{Product: p})
	s.Dispatch(ItemAdded{Product: p})

	cart := SelectCart(s.State())
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(20)))

	s.Dispatch(CartCleared{})
	assert.Empty(t, SelectCart(s.State()).CartItems)
}

func TestStore_Subscribe(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)

	var names []string
	unsubscribe := s.Subscribe(func(a Action, st State) {
		names = append(names, ActionName(a))
	})

	s.Dispatch(ItemAdded{Product: product(1, "1")})
	s.Dispatch(QuantityIncreased{ID: 1})
	unsubscribe()
	s.Dispatch(CartCleared{})

	assert.Equal(t, []string{"cart/itemAdded", "cart/quantityIncreased"}, names)
}

func TestStore_SubscriberSeesFetchTransitions(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)

	var mu sync.Mutex
	var statuses []Status
	s.Subscribe(func(a Action, st State) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, st.Catalog.Status)
	})

	wait(t, s.RequestFetch(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusLoading, StatusSucceeded}, statuses)
}

func TestStore_DispatchFetchRequestedStartsFetch(t *testing.T) {
	fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
	s := New(fetcher, nil)

	s.Dispatch(FetchRequested{})
	assert.Equal(t, StatusLoading, SelectCatalog(s.State()).Status)

	f := s.Fetch(context.Background(), FetchIfIdle)
	close(fetcher.release)
	res := wait(t, f)

	require.True(t, res.Succeeded())
	assert.Len(t, res.Products, len(catalog.SeedProducts()))
	assert.Equal(t, StatusSucceeded, SelectCatalog(s.State()).Status)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestStore_DispatchDropsFetchOutcomes(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)

	s.Dispatch(FetchSucceeded{Products: catalog.SeedProducts()})
	s.Dispatch(FetchFailed{})

	cat := SelectCatalog(s.State())
	assert.Equal(t, StatusIdle, cat.Status)
	assert.Empty(t, cat.Error)
	assert.Empty(t, cat.Products)
}

func TestStore_FetchIfIdleRecoversLoadingWithoutFlight(t *testing.T) {
	fetcher := newGatedFetcher(catalog.SeedProducts(), nil)
	close(fetcher.release)
	s := New(fetcher, nil)

	s.mu.Lock()
	s.state.Catalog = ReduceCatalog(s.state.Catalog, FetchRequested{})
	s.mu.Unlock()

	res := wait(t, s.Fetch(context.Background(), FetchIfIdle))

	require.True(t, res.Succeeded())
	assert.Len(t, res.Products, len(catalog.SeedProducts()))
	assert.Equal(t, StatusSucceeded, SelectCatalog(s.State()).Status)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestStore_ListenersRunInRegistrationOrder(t *testing.T) {
	s := New(catalog.NewStaticFetcher(), nil)

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		s.Subscribe(func(Action, State) { order = append(order, i) })
	}
	unsubscribe := s.Subscribe(func(Action, State) { order = append(order, 99) })
	s.Subscribe(func(Action, State) { order = append(order, 10) })
	unsubscribe()

	s.Dispatch(CartCleared{})

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, order)
}
