package libssk

import (
	"context"
	"iter"
)

// InfiniteHits accumulates the pages of a search into a growing list of hits,
// the way an infinite scroll consumes them.
//
// Each call to ShowMore requests the following pages until at least minHitsPerPage
// new hits are gathered or the search backend reports its last page.
// The backend pagination is trusted: no cache nor deduplication is performed.
//
// An InfiniteHits is not safe for concurrent use.
type InfiniteHits struct {
	searcher       Searcher
	params         SearchParams
	minHitsPerPage int

	hits     []Hit
	nextPage int
	last     bool
}

// NewInfiniteHits returns a new InfiniteHits for the given search parameters.
// params.Page is ignored, pages are requested from the first one.
// It panics if minHitsPerPage is lower than 1.
func NewInfiniteHits(searcher Searcher, params SearchParams, minHitsPerPage int) *InfiniteHits {
	if minHitsPerPage < 1 {
		panic("libssk: minHitsPerPage must be greater than zero")
	}

	ih := &InfiniteHits{
		searcher:       searcher,
		minHitsPerPage: minHitsPerPage,
	}
	ih.Refine(params)
	return ih
}

// Refine restarts the sequence with the given search parameters.
func (ih *InfiniteHits) Refine(params SearchParams) {
	params.Page = 0
	ih.params = params
	ih.Reset()
}

// Reset drops the accumulated hits, the next ShowMore starts from the first page.
func (ih *InfiniteHits) Reset() {
	ih.hits = nil
	ih.nextPage = 0
	ih.last = false
}

// Hits returns all the hits gathered so far.
func (ih *InfiniteHits) Hits() []Hit {
	return ih.hits
}

// IsLastPage returns true once the backend reported its last page.
func (ih *InfiniteHits) IsLastPage() bool {
	return ih.last
}

// ShowMore fetches the next hits and returns them.
//
// Pages are fetched until at least minHitsPerPage hits are gathered or the last page is reached.
// On error, including a canceled context, nothing is appended: the fetched pages are discarded
// and the next call retries from the same page.
func (ih *InfiniteHits) ShowMore(ctx context.Context) ([]Hit, error) {
	if ih.last {
		return nil, nil
	}

	var (
		fetched []Hit
		page    = ih.nextPage
		last    bool
	)
	for !last && len(fetched) < ih.minHitsPerPage {
		params := ih.params
		params.Page = page

		result, err := ih.searcher.Search(ctx, params)
		if err != nil {
			return nil, err
		}
		// The consumer may have gone away while the request was in flight.
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		fetched = append(fetched, result.Hits...)
		last = result.IsLastPage()
		page = result.Page + 1
	}

	ih.hits = append(ih.hits, fetched...)
	ih.nextPage = page
	ih.last = last
	return fetched, nil
}

// All returns the whole sequence of hits, fetched lazily while iterating.
// Each call restarts from the first page. Iteration stops after the first error.
func (ih *InfiniteHits) All(ctx context.Context) iter.Seq2[Hit, error] {
	return func(yield func(Hit, error) bool) {
		ih.Reset()

		for !ih.IsLastPage() {
			hits, err := ih.ShowMore(ctx)
			if err != nil {
				yield(Hit{}, err)
				return
			}

			for _, hit := range hits {
				if !yield(hit, nil) {
					return
				}
			}
		}
	}
}
