package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/search"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/sirupsen/logrus"
)

type (
	// A FoodService manages the foods.
	FoodService interface {
		// Add adds a food to a list owned by the given user and indexes it.
		Add(ctx context.Context, user *model.User, listID string, params AddFoodParams) (*Food, error)
	}

	// AddFoodParams are used to add a food to a list.
	AddFoodParams struct {
		Name        string   `json:"name"         validate:"required,max=140"`
		Description string   `json:"description"  validate:"required,max=2000"`
		CategoryIDs []string `json:"category_ids" validate:"required,min=1,dive,required"`
		TagNames    []string `json:"tag_names"    validate:"max=20,dive,required,max=40"`
		Address     string   `json:"address"      validate:"required,max=300"`
		Price       string   `json:"price"        validate:"required,oneof=1 2 3 4"`
		Verdict     string   `json:"verdict"      validate:"required,oneof=must-try recommended okay avoid"`
		CoverImage  string   `json:"cover_image"  validate:"omitempty,url"`
		Images      []string `json:"images"       validate:"max=4,dive,url"`
	}

	// A Food is a food with its categories and tags.
	Food struct {
		Food       *model.Food
		Categories []*model.Category
		Tags       []*model.Tag
	}

	foodService struct {
		db    database.Client
		index search.Index
		log   logrus.FieldLogger
	}
)

// NewFood returns a new FoodService.
func NewFood(db database.Client, index search.Index, log logrus.FieldLogger) FoodService {
	return &foodService{
		db:    db,
		index: index,
		log:   log,
	}
}

func (s *foodService) Add(ctx context.Context, user *model.User, listID string, params AddFoodParams) (*Food, error) {
	list, err := readableList(s.db, user, listID)
	if err != nil {
		return nil, err
	}
	if !list.IsOwnedBy(user) {
		return nil, forbidden("You can only add foods to your own lists.")
	}

	//
	// Images
	//

	if len(params.Images) > libssk.MaxImages {
		return nil, sskerror.BadRequest("A food has at most 4 images.")
	}
	switch {
	case len(params.Images) == 0 && params.CoverImage != "":
		params.Images = []string{params.CoverImage}
	case len(params.Images) > 0 && params.CoverImage == "":
		params.CoverImage = params.Images[0]
	case len(params.Images) > 0 && params.CoverImage != params.Images[0]:
		return nil, sskerror.BadRequest("The cover image must be the first image.")
	}

	//
	// Categories
	//

	categoryIDs := unique(params.CategoryIDs, strings.TrimSpace)
	categories, err := s.db.FindCategoriesByIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categoryIDs) == 0 || len(categories) != len(categoryIDs) {
		return nil, sskerror.BadRequest("Unknown category.")
	}

	//
	// Tags
	//

	tags, err := s.tags(params.TagNames)
	if err != nil {
		return nil, err
	}

	food := &model.Food{
		ListID:      list.ID,
		UserID:      user.ID,
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Address:     strings.TrimSpace(params.Address),
		Price:       params.Price,
		Verdict:     params.Verdict,
		CoverImage:  params.CoverImage,
		Images:      params.Images,
	}
	for _, c := range categories {
		food.CategoryIDs = append(food.CategoryIDs, c.ID)
	}
	for _, t := range tags {
		food.TagIDs = append(food.TagIDs, t.ID)
	}

	if err = s.db.Save(food); err != nil {
		return nil, errors.Wrap(err, "could not persist food")
	}

	// The food is saved at this point, a missing hit is repaired by the reindex command.
	hit := search.HitFromFood(food, list, user, categories, tags)
	if err = s.index.Save(ctx, hit); err != nil {
		s.log.WithField("food_id", food.ID).WithError(err).Warn("could not index food")
	}

	return &Food{
		Food:       food,
		Categories: categories,
		Tags:       tags,
	}, nil
}

// tags returns the tags for the given names, creating the unknown ones.
func (s *foodService) tags(names []string) ([]*model.Tag, error) {
	names = unique(names, func(name string) string {
		return strings.ToLower(strings.TrimSpace(name))
	})

	tags := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.db.FindTagByName(name)
		if err == nil {
			tags = append(tags, tag)
			continue
		}
		if !s.db.IsNotFound(err) {
			return nil, errors.Wrap(err, "could not get access to database")
		}

		tag = &model.Tag{Name: name}
		if err = s.db.Save(tag); err != nil {
			if !s.db.IsAlreadyExists(err) {
				return nil, errors.Wrap(err, "could not persist tag")
			}

			// Created by a concurrent request.
			if tag, err = s.db.FindTagByName(name); err != nil {
				return nil, errors.Wrap(err, "could not get access to database")
			}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// unique normalizes the values and removes the empty and duplicated ones, keeping the order.
func unique(values []string, normalize func(string) string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = normalize(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
