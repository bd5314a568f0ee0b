package libssk

import "context"

const (
	// DefaultHitsPerPage is the page size used when none is requested.
	DefaultHitsPerPage = 20
	// MaxHitsPerPage is the largest page size served by the search index.
	MaxHitsPerPage = 100
)

type (
	// A Searcher performs search requests against a search index.
	Searcher interface {
		Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	}

	// A Hit is the projection of a food as indexed by the search service.
	Hit struct {
		ObjectID    string   `json:"objectID"`
		ListID      string   `json:"listId"`
		OwnerID     string   `json:"ownerId"`
		OwnerName   string   `json:"ownerName"`
		Visibility  string   `json:"visibility"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		CategoryIDs []string `json:"categoryIds"`
		Categories  []string `json:"categories"`
		Tags        []string `json:"tags"`
		Address     string   `json:"address"`
		Price       string   `json:"price"`
		Verdict     string   `json:"verdict"`
		CoverImage  string   `json:"coverImage"`
		Images      []string `json:"images"`
		CreatedAt   int64    `json:"createdAt"` // Unix timestamp
	}

	// SearchParams are the parameters of a search request.
	SearchParams struct {
		Query       string   `json:"query,omitempty"`
		Filters     string   `json:"filters,omitempty"`
		Page        int      `json:"page"` // Zero-based
		HitsPerPage int      `json:"hitsPerPage,omitempty"`
		Facets      []string `json:"facets,omitempty"`
	}

	// A SearchResult is a page of hits.
	SearchResult struct {
		Hits        []Hit                     `json:"hits"`
		NbHits      int                       `json:"nbHits"`
		Page        int                       `json:"page"`
		NbPages     int                       `json:"nbPages"`
		HitsPerPage int                       `json:"hitsPerPage"`
		Facets      map[string]map[string]int `json:"facets,omitempty"`
	}
)

// Normalize returns a copy of the params with page and page size in their valid ranges.
func (p SearchParams) Normalize() SearchParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.HitsPerPage <= 0 {
		p.HitsPerPage = DefaultHitsPerPage
	}
	if p.HitsPerPage > MaxHitsPerPage {
		p.HitsPerPage = MaxHitsPerPage
	}
	return p
}

// IsLastPage returns true when no page follows this one.
func (r *SearchResult) IsLastPage() bool {
	return r.Page+1 >= r.NbPages
}

// NbPagesFor returns the number of pages needed to serve nbHits.
func NbPagesFor(nbHits, hitsPerPage int) int {
	if hitsPerPage <= 0 {
		return 0
	}
	return (nbHits + hitsPerPage - 1) / hitsPerPage
}
