package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func divisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "divisions",
		Short: "Manage the organization's divisions",
	}

	cmd.AddCommand(divisionsListCmd())
	cmd.AddCommand(divisionsCreateCmd())
	cmd.AddCommand(divisionsUpdateCmd())
	cmd.AddCommand(divisionsDeleteCmd())

	return cmd
}

func divisionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List divisions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			divisions, err := newAPIClient(sess).ListDivisions(ctx, sess.OrgID)
			if err != nil {
				return err
			}

			if len(divisions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No divisions yet."))
				return nil
			}

			for i := range divisions {
				d := &divisions[i]
				fmt.Printf("%-36s %s\n", d.ID, d.DisplayName())
				if d.Description != "" {
					fmt.Printf("  %s\n", cli.SubtleStyle.Render(d.Description))
				}
			}
			return nil
		},
	}
}

func divisionsCreateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a division",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin); err != nil {
				return err
			}
			if name == "" {
				return common.NewUserError("--name is required", common.ErrInvalidInput)
			}

			division, err := newAPIClient(sess).CreateDivision(ctx, sess.OrgID, name, description)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Division %q created (%s)", division.DisplayName(), division.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "division name")
	cmd.Flags().StringVar(&description, "description", "", "division description")

	return cmd
}

func divisionsUpdateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <division-id>",
		Short: "Rename or re-describe a division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin); err != nil {
				return err
			}
			if name == "" {
				return common.NewUserError("--name is required", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).UpdateDivision(ctx, sess.OrgID, args[0], name, description); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Division updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new division name")
	cmd.Flags().StringVar(&description, "description", "", "new division description")

	return cmd
}

func divisionsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <division-id>",
		Short: "Delete a division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin); err != nil {
				return err
			}
			if !force {
				return common.NewUserError("deleting a division removes its projects, re-run with --force to confirm", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).DeleteDivision(ctx, sess.OrgID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Division deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
