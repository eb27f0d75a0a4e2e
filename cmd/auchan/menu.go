package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/cli"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the features available to your role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries := cli.VisibleMenu(sess.Role)
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No features available for your role."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Menu (%s)", sess.Role)))
			for _, e := range entries {
				fmt.Printf("  %-20s %s\n", e.Label, cli.SubtleStyle.Render(e.Command))
			}
			return nil
		},
	}
}
