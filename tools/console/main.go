package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/pkg/stormsql"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go shishikan.db " SELECT * FROM foods WHERE ListID = 'f2a98ab0-2c40-42b4-be08-da3b771be935' AND CreatedAt > '2024-02-16 20:52:55' ORDER BY CreatedAt DESC LIMIT 10;  "

var (
	codec string
	dump  bool
)

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE QUERY",
		Short: "SQL console for shishikan database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			sc, err := stormsql.ParseSelect(args[1])
			if err != nil {
				return err
			}

			//
			//
			option, err := database.StormCodec(codec)
			if err != nil {
				return err
			}

			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], option)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			//
			// Prepare request
			//

			query := db.Select(sc.Matcher)
			if sc.Skip > 0 {
				query.Skip(sc.Skip)
			}
			if sc.Limit > 0 {
				query.Limit(sc.Limit)
			}
			if len(sc.OrderBy) > 0 {
				query.OrderBy(sc.OrderBy...)
				if sc.OrderByReversed {
					query.Reverse()
				}
			}

			// Execute

			if sc.Count {
				return count(sc, query)
			}

			return list(sc, query)
		},
	}
	c.Flags().StringVar(&codec, "codec", "msgpack", "Storm codec of the database (msgpack, cbor, binc)")
	c.Flags().BoolVar(&dump, "dump", false, "Dump records as Go values instead of JSON")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// tables returns a record and a slice of records of each table.
var tables = map[string]func() (any, any){
	"users":      func() (any, any) { return &model.User{}, &[]*model.User{} },
	"sessions":   func() (any, any) { return &model.Session{}, &[]*model.Session{} },
	"lists":      func() (any, any) { return &model.List{}, &[]*model.List{} },
	"foods":      func() (any, any) { return &model.Food{}, &[]*model.Food{} },
	"categories": func() (any, any) { return &model.Category{}, &[]*model.Category{} },
	"tags":       func() (any, any) { return &model.Tag{}, &[]*model.Tag{} },
	"hits":       func() (any, any) { return &model.Hit{}, &[]*model.Hit{} },
}

func table(tablename string) (record, records any, err error) {
	fn, ok := tables[tablename]
	if !ok {
		return nil, nil, errors.Errorf("unknown tablename: %s", tablename)
	}
	record, records = fn()
	return record, records, nil
}

func count(sc *stormsql.SelectClause, query storm.Query) error {
	record, _, err := table(sc.Tablename)
	if err != nil {
		return err
	}

	n, err := query.Count(record)
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	fmt.Println("Count:", n)
	return nil
}

func list(sc *stormsql.SelectClause, query storm.Query) error {
	_, records, err := table(sc.Tablename)
	if err != nil {
		return err
	}

	err = query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	if dump {
		litter.Dump(records)
		return nil
	}
	jsondump(records)

	return nil
}

func jsondump(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}
