package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// Backup fetches all the foods of a list and stores them in the current directory.
func Backup(ctx context.Context, listID string) error {
	if !libssk.ValidIdentifier(listID) {
		return errors.Errorf("invalid list id: %q", listID)
	}

	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	list, err := client.List(ctx, listID)
	if err != nil {
		return errors.Wrap(err, "could not get list")
	}

	hits, err := collect(ctx, client, libssk.SearchParams{
		Filters:     libssk.FoodFromList(list.ID, list.User.ID),
		HitsPerPage: libssk.MaxHitsPerPage,
	})
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("list_%s_%s.json", list.ID, time.Now().Format("20060102150405"))
	err = backup(struct {
		List  *libssk.List `json:"list"`
		Foods []libssk.Hit `json:"foods"`
	}{list, hits}, filename)
	if err != nil {
		return errors.Wrap(err, "foods")
	}

	fmt.Printf("%d foods saved in %s\n", len(hits), filename)
	return nil
}

// collect walks all the pages of the search.
func collect(ctx context.Context, searcher libssk.Searcher, params libssk.SearchParams) ([]libssk.Hit, error) {
	hits := []libssk.Hit{}
	for hit, err := range libssk.NewInfiniteHits(searcher, params, params.Normalize().HitsPerPage).All(ctx) {
		if err != nil {
			return nil, errors.Wrap(err, "could not get hits")
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func backup(v any, filename string) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize value to backup")
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create backup file")
	}
	defer f.Close()

	_, err = f.Write(payload)
	if err != nil {
		return errors.Wrap(err, "could not write backuped values")
	}

	return errors.Wrap(f.Sync(), "could not backup")
}
