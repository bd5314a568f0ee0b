package service

import (
	"context"

	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/search"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

type (
	// A SearchService answers the search requests of a viewer.
	SearchService interface {
		// Search searches the hits readable by the viewer (nil for anonymous).
		Search(ctx context.Context, viewer *model.User, params libssk.SearchParams) (*libssk.SearchResult, error)
		// ListFoods returns a page of the hits of a list readable by the viewer (nil for anonymous).
		ListFoods(ctx context.Context, viewer *model.User, listID string, page, hitsPerPage int) (*libssk.SearchResult, error)
	}

	searchService struct {
		db    database.Client
		index search.Index
	}
)

// NewSearch returns a new SearchService.
func NewSearch(db database.Client, index search.Index) SearchService {
	return &searchService{
		db:    db,
		index: index,
	}
}

func (s *searchService) Search(ctx context.Context, viewer *model.User, params libssk.SearchParams) (*libssk.SearchResult, error) {
	var viewerID string
	if viewer != nil {
		viewerID = viewer.ID
	}

	filters, err := search.Guard(params.Filters, viewerID)
	if err != nil {
		return nil, err
	}
	params.Filters = filters

	return s.index.Search(ctx, params)
}

func (s *searchService) ListFoods(ctx context.Context, viewer *model.User, listID string, page, hitsPerPage int) (*libssk.SearchResult, error) {
	list, err := readableList(s.db, viewer, listID)
	if err != nil {
		return nil, err
	}

	// The owner is known from the list record.
	return s.Search(ctx, viewer, libssk.SearchParams{
		Filters:     libssk.FoodFromList(list.ID, list.UserID),
		Page:        page,
		HitsPerPage: hitsPerPage,
	})
}
