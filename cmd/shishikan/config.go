package main

import (
	"context"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/logger"
	"github.com/shishikan-sg/shishikan/internal/search"
	"github.com/shishikan-sg/shishikan/internal/storage"
	"github.com/sirupsen/logrus"
)

const (
	dbname    = "shishikan.db"
	envprefix = "SHISHIKAN_"
)

var defaults = map[string]any{
	"address":                  "localhost:5000",
	"database_codec":           "msgpack",
	"log.level":                "info",
	"session.access_token_ttl": "720h",
	"google.tokeninfo_url":     "https://oauth2.googleapis.com/tokeninfo",
	"search.driver":            search.DriverStorm,
	"search.concurrency":       4,
	"storage.driver":           storage.DriverFilesystem,
	"storage.filesystem.path":  "images",
	"categories": []string{
		"Chinese", "Malay", "Indian", "Peranakan", "Western", "Japanese",
		"Korean", "Thai", "Noodles", "Rice", "Seafood", "Dessert", "Drinks",
	},
}

// load reads the configuration from the defaults, the YAML file and the environment, in that order.
// Nested keys are separated by a double underscore in variable names (e.g. SHISHIKAN_SEARCH__DRIVER).
func load(filename string) (*koanf.Koanf, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "could not load .env")
	}

	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "could not load %s", filename)
		}
	}

	err := konf.Load(env.Provider(envprefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envprefix)), "__", ".")
	}), nil)
	return konf, errors.Wrap(err, "could not load environment")
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func newLogger(konf *koanf.Koanf) (*logrus.Logger, error) {
	return logger.New(logger.Config{
		Level: konf.String("log.level"),
		File:  konf.String("log.file"),
		Quiet: konf.Bool("log.quiet"),
	})
}

func newIndex(konf *koanf.Koanf, db database.Client) (search.Index, error) {
	switch driver := konf.String("search.driver"); driver {
	case search.DriverStorm:
		return search.NewStorm(db), nil
	case search.DriverAlgolia:
		return search.NewAlgolia(search.AlgoliaConfig{
			ApplicationID: konf.String("search.algolia.application_id"),
			APIKey:        konf.String("search.algolia.api_key"),
			Index:         konf.String("search.algolia.index"),
			Endpoint:      konf.String("search.algolia.endpoint"),
			HTTP:          &http.Client{Timeout: 10 * time.Second},
		})
	default:
		return nil, errors.Errorf("unknown search driver: %s", driver)
	}
}

// newStore returns the image store and the directory to serve under /images (empty when not served).
func newStore(ctx context.Context, konf *koanf.Koanf) (storage.Store, string, error) {
	switch driver := konf.String("storage.driver"); driver {
	case storage.DriverFilesystem:
		dir := konf.String("storage.filesystem.path")
		baseURL := konf.String("storage.filesystem.base_url")
		if baseURL == "" {
			baseURL = "http://" + konf.String("address") + "/images"
		}

		store, err := storage.NewFilesystem(dir, baseURL)
		return store, dir, err
	case storage.DriverS3:
		store, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    konf.String("storage.s3.bucket"),
			Region:    konf.String("storage.s3.region"),
			Prefix:    konf.String("storage.s3.prefix"),
			PublicURL: konf.String("storage.s3.public_url"),
		})
		return store, "", err
	default:
		return nil, "", errors.Errorf("unknown storage driver: %s", driver)
	}
}
