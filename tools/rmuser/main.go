package main

import (
	"context"
	"fmt"
	"log"

	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/search"
)

var (
	codec   string
	algolia search.AlgoliaConfig
)

func main() {
	c := &coral.Command{
		Use:   "rmuser DATABASE GOOGLE_ID",
		Short: "Remove a user with its lists, foods and hits from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(c *coral.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := database.StormOpen(args[0], codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			// Fetch user
			user, err := db.FindUserByGoogleID(args[1])
			if err != nil {
				if db.IsNotFound(err) {
					fmt.Println("No account for this Google ID")
					return nil
				}
				return errors.Wrap(err, "find user by Google ID")
			}

			fmt.Println("User found:", user.ID, user.Email)

			// Hits of an external index are removed before the foods they are projected from.
			if algolia.ApplicationID != "" {
				if err = removeHits(c.Context(), db, user.ID); err != nil {
					return err
				}
				fmt.Println("External hits removed")
			}

			if err = db.DeleteUser(user.ID); err != nil {
				return errors.Wrap(err, "delete user")
			}
			fmt.Println("User removed")

			return nil
		},
	}
	c.Flags().StringVar(&codec, "codec", "msgpack", "Storm codec of the database (msgpack, cbor, binc)")
	c.Flags().StringVar(&algolia.ApplicationID, "algolia-app-id", "", "Also remove the hits from this Algolia application")
	c.Flags().StringVar(&algolia.APIKey, "algolia-api-key", "", "Algolia admin API key")
	c.Flags().StringVar(&algolia.Index, "algolia-index", "foods", "Algolia index")

	if err := c.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("%+v", err)
	}
}

func removeHits(ctx context.Context, db database.Client, userID string) error {
	index, err := search.NewAlgolia(algolia)
	if err != nil {
		return err
	}

	lists, err := db.FindListsByUserID(userID, false)
	if err != nil {
		return errors.Wrap(err, "find lists")
	}

	var ids []string
	for _, list := range lists {
		foods, err := db.FindFoodsByListID(list.ID)
		if err != nil {
			return errors.Wrap(err, "find foods")
		}
		for _, food := range foods {
			ids = append(ids, food.ID)
		}
	}

	if len(ids) == 0 {
		return nil
	}
	return errors.Wrap(index.Delete(ctx, ids...), "delete hits")
}
