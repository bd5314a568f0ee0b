package client

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// Lists renders the lists of the current user, or the readable lists of userID when given.
func Lists(ctx context.Context, userID string) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	var lists []libssk.List
	if userID == "" {
		lists, err = client.Lists(ctx)
	} else {
		lists, err = client.UserLists(ctx, userID)
	}
	if err != nil {
		return errors.Wrap(err, "could not get lists")
	}

	return RenderLists(os.Stdout, lists)
}

// CreateList creates a list owned by the current user.
func CreateList(ctx context.Context, params libssk.CreateListParams) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	list, err := client.CreateList(ctx, params)
	if err != nil {
		return errors.Wrap(err, "could not create list")
	}

	fmt.Printf("List %s created (%s)\n", list.Name, list.ID)
	return nil
}

// Categories renders all the categories.
func Categories(ctx context.Context) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	categories, err := client.Categories(ctx)
	if err != nil {
		return errors.Wrap(err, "could not get categories")
	}

	return RenderCategories(os.Stdout, categories)
}
