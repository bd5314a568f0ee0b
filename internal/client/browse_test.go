package client

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

// pages is a Searcher serving a fixed number of hits per page.
type pages []int

func (p pages) Search(_ context.Context, params libssk.SearchParams) (*libssk.SearchResult, error) {
	if params.Page >= len(p) {
		return nil, errors.New("page out of range")
	}

	result := &libssk.SearchResult{
		Page:    params.Page,
		NbPages: len(p),
	}
	for i := 0; i < p[params.Page]; i++ {
		result.Hits = append(result.Hits, libssk.Hit{
			ObjectID: fmt.Sprintf("food-%d-%d", params.Page, i),
			Name:     fmt.Sprintf("Food %d.%d", params.Page, i),
		})
	}
	return result, nil
}

func TestStream(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		buf     bytes.Buffer
		prompts int
	)
	ih := libssk.NewInfiniteHits(pages{4, 4, 3}, libssk.SearchParams{}, 5)

	err := stream(context.Background(), &buf, ih, func() (bool, error) {
		prompts++
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, prompts)
	assert.Len(t, ih.Hits(), 11)
	assert.Contains(t, buf.String(), "  1. Food 0.0")
	assert.Contains(t, buf.String(), " 11. Food 2.2")
}

func TestStream_Stop(t *testing.T) {
	var buf bytes.Buffer
	ih := libssk.NewInfiniteHits(pages{4, 4, 3}, libssk.SearchParams{}, 4)

	err := stream(context.Background(), &buf, ih, func() (bool, error) {
		return false, nil
	})
	assert.NoError(t, err)
	assert.Len(t, ih.Hits(), 4)
	assert.False(t, ih.IsLastPage())
	assert.NotContains(t, buf.String(), "Food 1.0")
}

func TestStream_Empty(t *testing.T) {
	var buf bytes.Buffer
	ih := libssk.NewInfiniteHits(pages{0}, libssk.SearchParams{}, 4)

	err := stream(context.Background(), &buf, ih, nil)
	assert.NoError(t, err)
	assert.Equal(t, "No food found.\n", buf.String())
}

func TestStream_Error(t *testing.T) {
	var buf bytes.Buffer
	ih := libssk.NewInfiniteHits(pages{}, libssk.SearchParams{}, 4)

	err := stream(context.Background(), &buf, ih, nil)
	assert.EqualError(t, err, "could not get hits: page out of range")
	assert.Empty(t, buf.String())
}

func TestRefinements_Filters(t *testing.T) {
	filters, err := Refinements{}.Filters()
	assert.NoError(t, err)
	assert.Empty(t, filters)

	filters, err = Refinements{
		libssk.AttributeVerdict:    {"must-try", "recommended"},
		libssk.AttributeCategories: {"Noodles"},
	}.Filters()
	assert.NoError(t, err)
	assert.Equal(t, `categories = "Noodles" AND (verdict = "must-try" OR verdict = "recommended")`, filters)

	_, err = Refinements{libssk.AttributeTags: {`spicy" OR "1`}}.Filters()
	assert.EqualError(t, err, `invalid tags: "spicy\" OR \"1"`)
}

func TestCollect(t *testing.T) {
	defer goleak.VerifyNone(t)

	hits, err := collect(context.Background(), pages{3, 3, 1}, libssk.SearchParams{HitsPerPage: 3})
	assert.NoError(t, err)
	assert.Len(t, hits, 7)
	assert.Equal(t, "food-2-0", hits[6].ObjectID)

	_, err = collect(context.Background(), pages{}, libssk.SearchParams{})
	assert.EqualError(t, err, "could not get hits: page out of range")
}
