package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// MinHitsPerPage is the number of hits rendered before asking to load more.
const MinHitsPerPage = 10

// Browse renders the foods of a list, page after page.
func Browse(ctx context.Context, listID string) error {
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
	fmt.Printf("%s by %s\n\n", nameStyle.Render(list.Name), list.User.Name)

	params := libssk.SearchParams{
		Filters: libssk.FoodFromList(list.ID, list.User.ID),
	}
	return stream(ctx, os.Stdout, libssk.NewInfiniteHits(client, params, MinHitsPerPage), prompt)
}

// Refinements are the values accepted per attribute, joined with OR.
type Refinements map[string][]string

// Filters returns the filter expression of the refinements.
// Attributes are joined with AND, sorted by name.
func (r Refinements) Filters() (string, error) {
	attributes := make([]string, 0, len(r))
	for attribute := range r {
		attributes = append(attributes, attribute)
	}
	slices.Sort(attributes)

	clauses := make([]string, 0, len(attributes))
	for _, attribute := range attributes {
		values := make([]string, 0, len(r[attribute]))
		for _, v := range r[attribute] {
			if !libssk.ValidValue(v) {
				return "", errors.Errorf("invalid %s: %q", attribute, v)
			}
			values = append(values, libssk.Eq(attribute, v))
		}
		clauses = append(clauses, libssk.Or(values...))
	}
	return libssk.And(clauses...), nil
}

// Search renders the foods matching the query and the refinements, page after page.
func Search(ctx context.Context, query string, refinements Refinements) error {
	filters, err := refinements.Filters()
	if err != nil {
		return err
	}

	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	params := libssk.SearchParams{
		Query:   query,
		Filters: filters,
	}
	return stream(ctx, os.Stdout, libssk.NewInfiniteHits(client, params, MinHitsPerPage), prompt)
}

// stream renders the hits of ih until the last page or until more returns false.
func stream(ctx context.Context, w io.Writer, ih *libssk.InfiniteHits, more func() (bool, error)) error {
	for {
		offset := len(ih.Hits())

		hits, err := ih.ShowMore(ctx)
		if err != nil {
			return errors.Wrap(err, "could not get hits")
		}
		RenderHits(w, offset, hits)

		if ih.IsLastPage() {
			if len(ih.Hits()) == 0 {
				fmt.Fprintln(w, "No food found.")
			}
			return nil
		}

		ok, err := more()
		if err != nil || !ok {
			return err
		}
	}
}

func prompt() (bool, error) {
	answer, err := readline.Line("Load more? [Y/n] ")
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "could not read answer from stdin")
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
