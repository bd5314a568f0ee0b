package search

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/shishikan-sg/shishikan/pkg/stormsql"
	"github.com/shishikan-sg/shishikan/pkg/structs"
)

// searchable are the model.Hit fields matched by the full-text query.
var searchable = []string{"Name", "Description", "Address", "OwnerName", "Categories", "Tags"}

type stormIndex struct {
	db database.HitInteraction
}

// NewStorm returns an Index stored in the given database.
func NewStorm(db database.HitInteraction) Index {
	return &stormIndex{db: db}
}

func (idx *stormIndex) Save(ctx context.Context, hits ...libssk.Hit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([]*model.Hit, 0, len(hits))
	for _, hit := range hits {
		records = append(records, &model.Hit{
			ObjectID:      hit.ObjectID,
			ListID:        hit.ListID,
			OwnerID:       hit.OwnerID,
			OwnerName:     hit.OwnerName,
			Visibility:    hit.Visibility,
			Name:          hit.Name,
			Description:   hit.Description,
			CategoryIDs:   hit.CategoryIDs,
			Categories:    hit.Categories,
			Tags:          hit.Tags,
			Address:       hit.Address,
			Price:         hit.Price,
			Verdict:       hit.Verdict,
			CoverImage:    hit.CoverImage,
			Images:        hit.Images,
			CreatedAtUnix: hit.CreatedAt,
		})
	}
	return idx.db.SaveHits(records...)
}

func (idx *stormIndex) Delete(ctx context.Context, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return idx.db.DeleteHits(ids...)
}

func (idx *stormIndex) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return idx.db.ClearHits()
}

func (idx *stormIndex) Search(ctx context.Context, params libssk.SearchParams) (*libssk.SearchResult, error) {
	params = params.Normalize()

	filter, err := stormsql.ParseFilter(params.Filters, field)
	if err != nil {
		return nil, sskerror.BadRequest(fmt.Sprintf("Invalid filters: %s", errors.Cause(err)))
	}

	facets := make([]string, 0, len(params.Facets))
	for _, attribute := range params.Facets {
		f, err := field(attribute)
		if err != nil {
			return nil, sskerror.BadRequest(fmt.Sprintf("Invalid facet: %s", attribute))
		}
		facets = append(facets, f)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	records, err := idx.db.FindHits(q.And(filter, fulltext(params.Query)))
	if err != nil {
		return nil, err
	}

	result := &libssk.SearchResult{
		Hits:        []libssk.Hit{},
		NbHits:      len(records),
		Page:        params.Page,
		NbPages:     libssk.NbPagesFor(len(records), params.HitsPerPage),
		HitsPerPage: params.HitsPerPage,
	}

	if len(facets) > 0 {
		result.Facets = map[string]map[string]int{}
		for i, f := range facets {
			counts := map[string]int{}
			for _, record := range records {
				values, err := structs.Strings(record, f)
				if err != nil {
					return nil, err
				}
				for _, v := range values {
					counts[v]++
				}
			}
			result.Facets[params.Facets[i]] = counts
		}
	}

	if params.Page >= result.NbPages {
		return result, nil
	}
	start := params.Page * params.HitsPerPage
	end := min(start+params.HitsPerPage, len(records))

	for _, record := range records[start:end] {
		result.Hits = append(result.Hits, toHit(record))
	}
	return result, nil
}

func toHit(record *model.Hit) libssk.Hit {
	return libssk.Hit{
		ObjectID:    record.ObjectID,
		ListID:      record.ListID,
		OwnerID:     record.OwnerID,
		OwnerName:   record.OwnerName,
		Visibility:  record.Visibility,
		Name:        record.Name,
		Description: record.Description,
		CategoryIDs: record.CategoryIDs,
		Categories:  record.Categories,
		Tags:        record.Tags,
		Address:     record.Address,
		Price:       record.Price,
		Verdict:     record.Verdict,
		CoverImage:  record.CoverImage,
		Images:      record.Images,
		CreatedAt:   record.CreatedAtUnix,
	}
}

////////////////////
//                //
// Full-text      //
//                //
////////////////////

// fulltext returns a matcher requiring every word of the query in at least one searchable field.
func fulltext(query string) q.Matcher {
	words := strings.Fields(strings.ToLower(query))

	matchers := make([]q.Matcher, 0, len(words))
	for _, word := range words {
		fields := make([]q.Matcher, 0, len(searchable))
		for _, f := range searchable {
			fields = append(fields, q.NewFieldMatcher(f, &wordMatcher{word: word}))
		}
		matchers = append(matchers, q.Or(fields...))
	}
	return q.And(matchers...)
}

type wordMatcher struct {
	word string
}

func (m *wordMatcher) MatchField(v any) (bool, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if strings.Contains(strings.ToLower(fmt.Sprint(rv.Index(i).Interface())), m.word) {
				return true, nil
			}
		}
		return false, nil
	}

	return strings.Contains(strings.ToLower(fmt.Sprint(v)), m.word), nil
}
