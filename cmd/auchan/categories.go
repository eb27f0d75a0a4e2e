package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse transaction categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the organization's categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := newAPIClient(sess).Categories(ctx, sess.OrgID)
			if err != nil {
				return err
			}

			// The endpoint returns seeded duplicates; keep the latest of each
			// name so IDs stay usable for new transactions.
			categories = model.DedupeCategories(categories)
			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found."))
				return nil
			}

			for _, c := range categories {
				fmt.Printf("%-36s %s\n", c.ID, c.CategoryName)
			}
			return nil
		},
	})

	return cmd
}
