package client

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// Add prompts for a food and adds it to the given list.
// images are local files, uploaded first, or URLs.
func Add(ctx context.Context, listID string, images []string) error {
	if !libssk.ValidIdentifier(listID) {
		return errors.Errorf("invalid list id: %q", listID)
	}
	if len(images) > libssk.MaxImages {
		return errors.Errorf("a food has at most %d images", libssk.MaxImages)
	}

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

	params := libssk.AddFoodParams{ListID: listID}

	if params.Name, err = line("Name: "); err != nil {
		return err
	}
	if params.Description, err = line("Description: "); err != nil {
		return err
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	input, err := line(fmt.Sprintf("Categories (%s): ", strings.Join(names, ", ")))
	if err != nil {
		return err
	}
	if params.CategoryIDs, err = matchCategories(categories, input); err != nil {
		return err
	}

	input, err = line("Tags (comma separated): ")
	if err != nil {
		return err
	}
	params.TagNames = split(input)

	if params.Address, err = line("Address: "); err != nil {
		return err
	}

	input, err = line("Price ($, $$, $$$, $$$$): ")
	if err != nil {
		return err
	}
	if params.Price, err = parsePrice(input); err != nil {
		return err
	}

	input, err = line("Verdict (must-try, recommended, okay, avoid): ")
	if err != nil {
		return err
	}
	if params.Verdict, err = parseVerdict(input); err != nil {
		return err
	}

	if params.Images, err = upload(ctx, client, images); err != nil {
		return err
	}

	food, err := client.AddFood(ctx, params)
	if err != nil {
		return errors.Wrap(err, "could not add food")
	}

	RenderFood(os.Stdout, food)
	return nil
}

func line(prompt string) (string, error) {
	s, err := readline.Line(prompt)
	if err != nil {
		return "", errors.Wrap(err, "could not read from stdin")
	}
	return strings.TrimSpace(s), nil
}

// split splits a comma separated input, ignoring blank values.
func split(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// matchCategories returns the ids of the comma separated category names, case insensitive.
func matchCategories(categories []libssk.Category, input string) ([]string, error) {
	var ids []string
	for _, name := range split(input) {
		i := slices.IndexFunc(categories, func(c libssk.Category) bool {
			return strings.EqualFold(c.Name, name)
		})
		if i < 0 {
			return nil, errors.Errorf("unknown category: %s", name)
		}
		ids = append(ids, categories[i].ID)
	}

	if len(ids) == 0 {
		return nil, errors.New("at least one category is required")
	}
	return ids, nil
}

// parsePrice accepts a tier (1..4) or its label ($..$$$$).
func parsePrice(s string) (libssk.PriceTier, error) {
	for _, tier := range libssk.PriceTiers {
		if s == string(tier) || s == tier.Label() {
			return tier, nil
		}
	}
	return "", errors.Errorf("unknown price: %q", s)
}

func parseVerdict(s string) (libssk.Verdict, error) {
	verdict := libssk.Verdict(strings.ToLower(s))
	if !verdict.Valid() {
		return "", errors.Errorf("unknown verdict: %q", s)
	}
	return verdict, nil
}

// upload returns the URLs of the images, uploading the local files.
func upload(ctx context.Context, client libssk.Client, images []string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		if u, err := url.Parse(image); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			urls = append(urls, image)
			continue
		}

		f, err := os.Open(image)
		if err != nil {
			return nil, errors.Wrap(err, "could not open image")
		}

		fmt.Println("Uploading", image)
		u, err := client.UploadImage(ctx, filepath.Base(image), f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "could not upload %s", image)
		}
		urls = append(urls, u)
	}
	return urls, nil
}
