package libssk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// pager serves fixed pages and records the requested ones.
type pager struct {
	pages     [][]libssk.Hit
	requested []int
	fail      map[int]error
	onSearch  func()
}

func newPager(sizes ...int) *pager {
	p := &pager{fail: map[int]error{}}
	var n int
	for _, size := range sizes {
		page := make([]libssk.Hit, size)
		for i := range page {
			page[i] = libssk.Hit{ObjectID: fmt.Sprintf("food-%d", n)}
			n++
		}
		p.pages = append(p.pages, page)
	}
	return p
}

func (p *pager) Search(ctx context.Context, params libssk.SearchParams) (*libssk.SearchResult, error) {
	p.requested = append(p.requested, params.Page)
	if p.onSearch != nil {
		p.onSearch()
	}
	if err := p.fail[params.Page]; err != nil {
		return nil, err
	}

	result := &libssk.SearchResult{
		Page:    params.Page,
		NbPages: len(p.pages),
	}
	if params.Page < len(p.pages) {
		result.Hits = p.pages[params.Page]
	}
	return result, nil
}

func TestInfiniteHits_ShowMore(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	p := newPager(8, 8, 2)
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{Filters: libssk.FoodFromList("abc123", ""), HitsPerPage: 8}, 8)

	hits, err := ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 8)
	assert.False(t, ih.IsLastPage())

	hits, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 8)
	assert.False(t, ih.IsLastPage())

	hits, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.True(t, ih.IsLastPage())

	assert.Len(t, ih.Hits(), 18)
	assert.Equal(t, "food-0", ih.Hits()[0].ObjectID)
	assert.Equal(t, "food-17", ih.Hits()[17].ObjectID)
	assert.Equal(t, []int{0, 1, 2}, p.requested)

	// Nothing more to fetch
	hits, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, []int{0, 1, 2}, p.requested)
}

func TestInfiniteHits_MinHitsPerPage(t *testing.T) {
	ctx := context.Background()
	p := newPager(3, 3, 3, 1)
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 3}, 5)

	hits, err := ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 6)
	assert.Equal(t, []int{0, 1}, p.requested)

	hits, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 4) // Last page reached before the minimum.
	assert.True(t, ih.IsLastPage())
	assert.Len(t, ih.Hits(), 10)
}

func TestInfiniteHits_All(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	p := newPager(8, 8, 2)
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 8}, 8)

	var ids []string
	for hit, err := range ih.All(ctx) {
		require.NoError(t, err)
		ids = append(ids, hit.ObjectID)
	}
	assert.Len(t, ids, 18)
	assert.True(t, ih.IsLastPage())
	assert.Equal(t, []int{0, 1, 2}, p.requested)

	// Restartable
	var n int
	for _, err := range ih.All(ctx) {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 18, n)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, p.requested)
}

func TestInfiniteHits_AllBreak(t *testing.T) {
	p := newPager(8, 8, 2)
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 8}, 8)

	for hit := range ih.All(context.Background()) {
		if hit.ObjectID == "food-3" {
			break
		}
	}
	assert.Equal(t, []int{0}, p.requested)
}

func TestInfiniteHits_FirstPageFailure(t *testing.T) {
	p := newPager(8, 8, 2)
	p.fail[0] = errors.New("search backend unavailable")
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 8}, 8)

	var (
		hits []libssk.Hit
		errs []error
	)
	for hit, err := range ih.All(context.Background()) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		hits = append(hits, hit)
	}

	assert.Empty(t, hits)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "search backend unavailable")
	assert.Empty(t, ih.Hits())
	assert.False(t, ih.IsLastPage())
}

func TestInfiniteHits_NoPartialPage(t *testing.T) {
	ctx := context.Background()
	p := newPager(3, 3, 3)
	p.fail[1] = errors.New("timeout")
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 3}, 5)

	hits, err := ih.ShowMore(ctx)
	assert.EqualError(t, err, "timeout")
	assert.Nil(t, hits)
	assert.Empty(t, ih.Hits())

	// Retried from the same page.
	delete(p.fail, 1)
	hits, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Len(t, hits, 6)
	assert.Equal(t, []int{0, 1, 0, 1}, p.requested)
}

func TestInfiniteHits_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newPager(8, 8)
	p.onSearch = cancel // Consumer goes away while the request is in flight.
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 8}, 8)

	hits, err := ih.ShowMore(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, hits)
	assert.Empty(t, ih.Hits())
}

func TestInfiniteHits_Refine(t *testing.T) {
	ctx := context.Background()
	p := newPager(8, 8, 2)
	ih := libssk.NewInfiniteHits(p, libssk.SearchParams{HitsPerPage: 8, Page: 2}, 8)

	_, err := ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p.requested)

	ih.Refine(libssk.SearchParams{Query: "ramen", HitsPerPage: 8})
	assert.Empty(t, ih.Hits())
	assert.False(t, ih.IsLastPage())

	_, err = ih.ShowMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, p.requested)
}

func TestInfiniteHits_Empty(t *testing.T) {
	ih := libssk.NewInfiniteHits(newPager(), libssk.SearchParams{}, 8)

	hits, err := ih.ShowMore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.True(t, ih.IsLastPage())
}

func TestNewInfiniteHits_InvalidMin(t *testing.T) {
	assert.Panics(t, func() { libssk.NewInfiniteHits(newPager(), libssk.SearchParams{}, 0) })
}
