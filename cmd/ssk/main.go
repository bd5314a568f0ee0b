package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/shishikan-sg/shishikan/internal/client"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cobra.Command{
		Use:     "ssk",
		Short:   "Shishikan client, your food lists in the terminal",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(listsCmd)
	c.AddCommand(categoriesCmd)
	c.AddCommand(addCmd)
	c.AddCommand(browseCmd)
	c.AddCommand(searchCmd)
	c.AddCommand(backupCmd)

	listsCmd.AddCommand(createListCmd)
	createListCmd.Flags().StringVarP(&listParams.Description, "description", "d", "", "List description")
	createListCmd.Flags().BoolVar(&public, "public", false, "Make the list readable by everyone")
	listsCmd.Flags().StringVarP(&userID, "user", "u", "", "Show the public lists of this user")

	addCmd.Flags().StringArrayVarP(&images, "image", "i", nil, "Image file or URL, the first one is the cover (repeatable)")

	searchCmd.Flags().StringArrayVar(&refinements.categories, "category", nil, "Filter by category (repeatable)")
	searchCmd.Flags().StringArrayVar(&refinements.tags, "tag", nil, "Filter by tag (repeatable)")
	searchCmd.Flags().StringArrayVar(&refinements.prices, "price", nil, "Filter by price tier 1..4 (repeatable)")
	searchCmd.Flags().StringArrayVar(&refinements.verdicts, "verdict", nil, "Filter by verdict (repeatable)")

	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	userID      string
	public      bool
	images      []string
	listParams  libssk.CreateListParams
	refinements struct {
		categories []string
		tags       []string
		prices     []string
		verdicts   []string
	}
)

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the Shishikan server with a Google ID token",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return client.Login(c.Context())
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from a Shishikan server session",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return client.Logout(c.Context())
		},
	}

	listsCmd = &cobra.Command{
		Use:   "lists",
		Short: "Show your lists",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return client.Lists(c.Context(), userID)
		},
	}

	createListCmd = &cobra.Command{
		Use:   "create NAME",
		Short: "Create a list, private unless --public",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			listParams.Name = args[0]
			listParams.Visibility = libssk.VisibilityPrivate
			if public {
				listParams.Visibility = libssk.VisibilityPublic
			}
			return client.CreateList(c.Context(), listParams)
		},
	}

	categoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "Show the food categories",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return client.Categories(c.Context())
		},
	}

	addCmd = &cobra.Command{
		Use:   "add LIST_ID",
		Short: "Add a food to one of your lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return client.Add(c.Context(), args[0], images)
		},
	}

	browseCmd = &cobra.Command{
		Use:   "browse LIST_ID",
		Short: "Browse the foods of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return client.Browse(c.Context(), args[0])
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the foods you can read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var query string
			if len(args) > 0 {
				query = args[0]
			}

			r := client.Refinements{}
			for attribute, values := range map[string][]string{
				libssk.AttributeCategories: refinements.categories,
				libssk.AttributeTags:       refinements.tags,
				libssk.AttributePrice:      refinements.prices,
				libssk.AttributeVerdict:    refinements.verdicts,
			} {
				if len(values) > 0 {
					r[attribute] = values
				}
			}
			return client.Search(c.Context(), query, r)
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup LIST_ID",
		Short: "Backup the foods of a list in the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return client.Backup(c.Context(), args[0])
		},
	}
)
