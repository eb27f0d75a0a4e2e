package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects within a division",
	}

	cmd.AddCommand(projectsListCmd())
	cmd.AddCommand(projectsCreateCmd())
	cmd.AddCommand(projectsDeleteCmd())

	return cmd
}

func projectsListCmd() *cobra.Command {
	var divisionID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a division's projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if divisionID == "" {
				return common.NewUserError("--division is required", common.ErrInvalidInput)
			}

			projects, err := newAPIClient(sess).ListProjects(ctx, sess.OrgID, divisionID)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No projects in this division."))
				return nil
			}

			for i := range projects {
				p := &projects[i]
				fmt.Printf("%-36s %-28s budget %s\n",
					p.ID,
					cli.Truncate(p.DisplayName(), 28),
					cli.FormatRupiah(p.BudgetAllocated.Decimal),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&divisionID, "division", "", "division ID")

	return cmd
}

func projectsCreateCmd() *cobra.Command {
	var (
		divisionID, name, description string
		budget                        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project in a division",
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
			if divisionID == "" || name == "" {
				return common.NewUserError("--division and --name are required", common.ErrInvalidInput)
			}

			project, err := newAPIClient(sess).CreateProject(ctx, sess.OrgID, divisionID, api.CreateProjectRequest{
				Name:            name,
				Description:     description,
				BudgetAllocated: model.AmountFromString(budget),
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Project %q created (%s)", project.DisplayName(), project.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&divisionID, "division", "", "division ID")
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&budget, "budget", "0", "allocated budget in rupiah")

	return cmd
}

func projectsDeleteCmd() *cobra.Command {
	var (
		divisionID string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
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
			if divisionID == "" {
				return common.NewUserError("--division is required", common.ErrInvalidInput)
			}
			if !force {
				return common.NewUserError("deleting a project is permanent, re-run with --force to confirm", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).DeleteProject(ctx, sess.OrgID, divisionID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Project deleted"))
			return nil
		},
	}

	cmd.Flags().StringVar(&divisionID, "division", "", "division ID the project belongs to")
	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
