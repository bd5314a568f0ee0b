package search

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Project builds the hit of the given food, loading its list, owner, categories and tags.
func Project(db database.Client, food *model.Food) (libssk.Hit, error) {
	list, err := db.FindList(food.ListID)
	if err != nil {
		return libssk.Hit{}, errors.Wrapf(err, "food %s", food.ID)
	}

	owner, err := db.FindUser(food.UserID)
	if err != nil && !db.IsNotFound(err) {
		return libssk.Hit{}, errors.Wrapf(err, "food %s", food.ID)
	}

	categories, err := db.FindCategoriesByIDs(food.CategoryIDs)
	if err != nil {
		return libssk.Hit{}, errors.Wrapf(err, "food %s", food.ID)
	}

	tags, err := db.FindTagsByIDs(food.TagIDs)
	if err != nil {
		return libssk.Hit{}, errors.Wrapf(err, "food %s", food.ID)
	}

	return HitFromFood(food, list, owner, categories, tags), nil
}

// Reindex clears the index and rebuilds it from all the foods of the database.
// Projections and index writes run on concurrency goroutines.
func Reindex(ctx context.Context, log logrus.FieldLogger, db database.Client, index Index, concurrency int) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	foods, err := db.FindAllFoods()
	if err != nil {
		return 0, err
	}

	if err = index.Clear(ctx); err != nil {
		return 0, errors.Wrap(err, "could not clear index")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, food := range foods {
		g.Go(func() error {
			hit, err := Project(db, food)
			if err != nil {
				return err
			}

			if err = index.Save(ctx, hit); err != nil {
				return errors.Wrapf(err, "could not index food %s", food.ID)
			}

			log.WithField("food_id", food.ID).Debug("food indexed")
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return 0, err
	}
	return len(foods), nil
}
