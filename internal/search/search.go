// Package search maintains the food search index.
//
// Two drivers are available: an embedded index stored alongside the records
// in the storm database and a remote Algolia index.
package search

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/shishikan-sg/shishikan/pkg/stormsql"
)

// Drivers.
const (
	DriverStorm   = "storm"
	DriverAlgolia = "algolia"
)

// attributes maps the filterable hit attributes to the model.Hit fields.
var attributes = map[string]string{
	libssk.AttributeObjectID:   "ObjectID",
	libssk.AttributeListID:     "ListID",
	libssk.AttributeOwnerID:    "OwnerID",
	libssk.AttributeVisibility: "Visibility",
	libssk.AttributeCategories: "Categories",
	libssk.AttributeCategoryID: "CategoryIDs",
	libssk.AttributeTags:       "Tags",
	libssk.AttributePrice:      "Price",
	libssk.AttributeVerdict:    "Verdict",
	libssk.AttributeCreatedAt:  "CreatedAtUnix",
}

func field(attribute string) (string, error) {
	if f, ok := attributes[attribute]; ok {
		return f, nil
	}
	return "", errors.Errorf("unknown attribute: %s", attribute)
}

// An Index stores hits and answers search requests.
type Index interface {
	libssk.Searcher

	// Save inserts or replaces the given hits.
	Save(ctx context.Context, hits ...libssk.Hit) error
	// Delete removes the hits for the given object ids.
	Delete(ctx context.Context, ids ...string) error
	// Clear removes all the hits.
	Clear(ctx context.Context) error
}

// HitFromFood returns the search projection of the given food.
func HitFromFood(food *model.Food, list *model.List, owner *model.User, categories []*model.Category, tags []*model.Tag) libssk.Hit {
	hit := libssk.Hit{
		ObjectID:    food.ID,
		ListID:      food.ListID,
		OwnerID:     food.UserID,
		Visibility:  list.Visibility,
		Name:        food.Name,
		Description: food.Description,
		CategoryIDs: []string{},
		Categories:  []string{},
		Tags:        []string{},
		Address:     food.Address,
		Price:       food.Price,
		Verdict:     food.Verdict,
		CoverImage:  food.CoverImage,
		Images:      append([]string{}, food.Images...),
	}

	if owner != nil {
		hit.OwnerName = owner.Name
	}
	if food.CreatedAt != nil {
		hit.CreatedAt = food.CreatedAt.Unix()
	}
	for _, c := range categories {
		hit.CategoryIDs = append(hit.CategoryIDs, c.ID)
		hit.Categories = append(hit.Categories, c.Name)
	}
	for _, t := range tags {
		hit.Tags = append(hit.Tags, t.Name)
	}

	return hit
}

// Guard restricts the given filters to the hits readable by the viewer:
// hits of public lists and, when viewerID is not empty, hits owned by the viewer.
// The filters must be a valid expression on their own so they cannot escape the guard.
func Guard(filters, viewerID string) (string, error) {
	if _, err := stormsql.ParseFilter(filters, field); err != nil {
		return "", sskerror.BadRequest(fmt.Sprintf("Invalid filters: %s", errors.Cause(err)))
	}

	guard := libssk.Eq(libssk.AttributeVisibility, libssk.VisibilityPublic)
	if viewerID != "" {
		if !libssk.ValidIdentifier(viewerID) {
			return "", errors.Errorf("invalid viewer identifier: %q", viewerID)
		}
		guard = libssk.Or(guard, libssk.Eq(libssk.AttributeOwnerID, viewerID))
	}

	if filters == "" {
		return guard, nil
	}
	return libssk.And(guard, fmt.Sprintf("(%s)", filters)), nil
}
