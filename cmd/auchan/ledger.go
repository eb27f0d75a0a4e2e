package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
)

func ledgerCmd() *cobra.Command {
	var (
		page, limit int
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the blockchain ledger view of transactions",
		Long: `Show transactions as ledger blocks with their chain hashes.

A transaction is Verified when the backend has anchored it on chain and
recorded the hash; entries without a hash are shown as Pending.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			transactions, meta, err := newAPIClient(sess).ListTransactions(ctx, api.ListTransactionsOptions{
				OrgID: sess.OrgID,
				Page:  page,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions recorded yet."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Blockchain Ledger"))
			for i := range transactions {
				tx := &transactions[i]

				badge := cli.SubtleStyle.Render("○ Pending")
				if tx.Verified() {
					badge = cli.SuccessStyle.Render("✓ Verified")
				}

				fmt.Printf("%s  %s\n", cli.BoldStyle.Render(cli.FormatDateTime(tx.Date())), badge)
				fmt.Printf("  %s  %s  %s\n",
					tx.NormalizedType(),
					cli.FormatSigned(tx.Amount.Decimal, tx.IsIncome()),
					cli.Truncate(tx.ProjectName(), 32),
				)
				if tx.BlockchainHash != "" {
					fmt.Printf("  hash: %s\n", cli.SubtleStyle.Render(tx.BlockchainHash))
				}
				if tx.BlockchainTxID != "" {
					fmt.Printf("  txid: %s\n", cli.SubtleStyle.Render(tx.BlockchainTxID))
				}
				fmt.Println()
			}

			if meta.Total > 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d total", meta.Total)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")

	return cmd
}
