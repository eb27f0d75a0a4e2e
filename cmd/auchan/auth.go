package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, register, and inspect the active session",
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(registerCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the AuChan backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return common.NewUserError("email and password are required", common.ErrInvalidInput)
			}

			ctx := cmd.Context()
			store, err := newStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client := newAPIClient(nil)
			result, err := client.Login(ctx, email, password)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					return common.NewUserError("invalid email or password", err)
				}
				return fmt.Errorf("login failed: %w", err)
			}

			sess := result.Session()
			if err := newSessionManager(store).Save(ctx, sess); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Logged in as %s", result.UserName)))
			if sess.Role != "" {
				fmt.Printf("  Role: %s\n", sess.Role)
			}
			if sess.OrgID != "" {
				fmt.Printf("  Organization: %s\n", sess.OrgID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

func registerCmd() *cobra.Command {
	var req struct {
		name, email, password string
		orgName, orgDesc      string
		orgCode               string
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, founding or joining an organization",
		Long: `Create an AuChan account.

Pass --org-name (and optionally --org-desc) to found a new organization,
or --org-code to join an existing one with an invite code.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.name == "" || req.email == "" || req.password == "" {
				return common.NewUserError("name, email, and password are required", common.ErrInvalidInput)
			}
			if req.orgName == "" && req.orgCode == "" {
				return common.NewUserError("provide --org-name to found an organization or --org-code to join one", common.ErrInvalidInput)
			}
			if req.orgName != "" && req.orgCode != "" {
				return common.NewUserError("--org-name and --org-code are mutually exclusive", common.ErrInvalidInput)
			}

			client := newAPIClient(nil)
			if _, err := client.Register(cmd.Context(), api.RegisterRequest{
				Name:     req.name,
				Email:    req.email,
				Password: req.password,
				OrgName:  req.orgName,
				OrgDesc:  req.orgDesc,
				OrgCode:  req.orgCode,
			}); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Account created"))
			fmt.Println("Run 'auchan auth login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.name, "name", "", "full name")
	cmd.Flags().StringVar(&req.email, "email", "", "account email")
	cmd.Flags().StringVar(&req.password, "password", "", "account password")
	cmd.Flags().StringVar(&req.orgName, "org-name", "", "name of the organization to found")
	cmd.Flags().StringVar(&req.orgDesc, "org-desc", "", "description of the new organization")
	cmd.Flags().StringVar(&req.orgCode, "org-code", "", "invite code of an existing organization")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := newStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := newSessionManager(store).Clear(ctx); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Printf("User:         %s\n", sess.UserID)
			fmt.Printf("Organization: %s\n", sess.OrgID)
			fmt.Printf("Role:         %s\n", sess.Role)
			return nil
		},
	}
}
