package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func membersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage organization members",
	}

	cmd.AddCommand(membersListCmd())
	cmd.AddCommand(membersAddCmd())
	cmd.AddCommand(membersSetRoleCmd())
	cmd.AddCommand(membersRemoveCmd())

	return cmd
}

func membersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the organization's members",
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

			members, err := newAPIClient(sess).ListMembers(ctx, sess.OrgID)
			if err != nil {
				return err
			}

			if len(members) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No members found."))
				return nil
			}

			for i := range members {
				m := &members[i]
				fmt.Printf("%-36s %-28s %-10s %s\n",
					m.UserID,
					cli.Truncate(m.User.Name, 28),
					m.RoleDisplayName(),
					cli.SubtleStyle.Render(m.User.Email),
				)
			}
			return nil
		},
	}
}

func membersAddCmd() *cobra.Command {
	var (
		email string
		role  int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Invite a user into the organization",
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
			if email == "" {
				return common.NewUserError("--email is required", common.ErrInvalidInput)
			}
			if role < model.RoleIDAdmin || role > model.RoleIDMember {
				return common.NewUserError("--role must be 1 (Admin), 2 (Treasurer), 3 (Auditor), or 4 (Member)", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).AddMember(ctx, sess.OrgID, email, role); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s as %s", email, model.RoleName(role))))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to add")
	cmd.Flags().IntVar(&role, "role", model.RoleIDMember, "role ID (1=Admin, 2=Treasurer, 3=Auditor, 4=Member)")

	return cmd
}

func membersSetRoleCmd() *cobra.Command {
	var role int

	cmd := &cobra.Command{
		Use:   "set-role <user-id>",
		Short: "Change a member's role",
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
			if role < model.RoleIDAdmin || role > model.RoleIDMember {
				return common.NewUserError("--role must be 1 (Admin), 2 (Treasurer), 3 (Auditor), or 4 (Member)", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).UpdateMemberRole(ctx, sess.OrgID, args[0], role); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Role changed to %s", model.RoleName(role))))
			return nil
		},
	}

	cmd.Flags().IntVar(&role, "role", 0, "role ID (1=Admin, 2=Treasurer, 3=Auditor, 4=Member)")

	return cmd
}

func membersRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Remove a member from the organization",
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
				return common.NewUserError("removal revokes the member's access, re-run with --force to confirm", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).RemoveMember(ctx, sess.OrgID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Member removed"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
