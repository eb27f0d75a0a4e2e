package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
	"github.com/petanihandal/auchan-cli/internal/ofx"
)

func transactionsImportOFXCmd() *cobra.Command {
	var (
		projectID, categoryID string
		dryRun                bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <file>...",
		Short: "Import transactions from OFX/QFX bank exports",
		Long: `Import transactions from OFX/QFX files exported by a bank.

Negative amounts become EXPENSE entries, positive amounts INCOME. Each entry
is submitted as a normal manual transaction against the given project.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin, model.RoleTreasurer); err != nil {
				return err
			}
			if projectID == "" {
				return common.NewUserError("--project is required", common.ErrInvalidInput)
			}

			parser := ofx.NewParser()
			var entries []ofx.Entry
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}
				parsed, err := parser.ParseFile(ctx, f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", path, err)
				}
				entries = append(entries, parsed...)
			}

			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found in the given files."))
				return nil
			}

			if dryRun {
				for _, e := range entries {
					fmt.Printf("%s  %-8s %-40s %s\n",
						e.Posted.Format("2006-01-02"),
						e.Type,
						cli.Truncate(e.Description, 40),
						cli.FormatRupiah(e.Amount.Decimal),
					)
				}
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d transactions (dry run, nothing submitted)", len(entries))))
				return nil
			}

			client := newAPIClient(sess)
			bar := progressbar.NewOptions(len(entries),
				progressbar.OptionSetDescription("Importing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			imported := 0
			for _, e := range entries {
				_, err := client.CreateTransaction(ctx, api.CreateTransactionRequest{
					OrgID:           sess.OrgID,
					ProjectID:       projectID,
					TransactionDate: e.Posted.Format("2006-01-02"),
					Amount:          e.Amount,
					Type:            e.Type,
					CategoryID:      categoryID,
					Description:     e.Description,
				})
				if err != nil {
					_ = bar.Finish()
					return fmt.Errorf("importing %q: %w (%d of %d imported)", e.Description, err, imported, len(entries))
				}
				imported++
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transactions", imported)))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID to import into")
	cmd.Flags().StringVar(&categoryID, "category", "", "category ID to assign to every imported transaction")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and print without submitting")

	return cmd
}
