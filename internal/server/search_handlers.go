package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/server/serializer"
	"github.com/shishikan-sg/shishikan/internal/server/service"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// searcher contains the search and reference data handlers.
type searcher struct {
	db     database.Client
	search service.SearchService
}

// Categories renders all the categories.
func (h *searcher) Categories(c echo.Context) error {
	categories, err := h.db.FindCategories()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Categories(categories))
}

// Search renders the hits matching the query and the filters, restricted to the readable ones.
func (h *searcher) Search(c echo.Context) error {
	var (
		params libssk.SearchParams
		facets string
	)
	err := echo.QueryParamsBinder(c).
		String("query", &params.Query).
		String("filters", &params.Filters).
		Int("page", &params.Page).
		Int("hits_per_page", &params.HitsPerPage).
		String("facets", &facets).
		BindError()
	if err != nil {
		return sskerror.BadRequest("Invalid search params.")
	}

	for _, facet := range strings.Split(facets, ",") {
		if facet = strings.TrimSpace(facet); facet != "" {
			params.Facets = append(params.Facets, facet)
		}
	}

	result, err := h.search.Search(c.Request().Context(), currentUser(c), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
