package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

const historyPageSize = 10

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, record, and manage transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsHistoryCmd())
	cmd.AddCommand(transactionsGetCmd())
	cmd.AddCommand(transactionsCreateCmd())
	cmd.AddCommand(transactionsUpdateCmd())
	cmd.AddCommand(transactionsDeleteCmd())
	cmd.AddCommand(transactionsExtractCmd())
	cmd.AddCommand(transactionsImportOFXCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	var (
		divisionID, projectID string
		page, limit           int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client := newAPIClient(sess)
			transactions, meta, err := client.ListTransactions(ctx, api.ListTransactionsOptions{
				OrgID:      sess.OrgID,
				DivisionID: divisionID,
				ProjectID:  projectID,
				Page:       page,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			printTransactionTable(transactions)
			if meta.Total > 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d total", meta.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&divisionID, "division", "", "filter by division ID")
	cmd.Flags().StringVar(&projectID, "project", "", "filter by project ID")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")

	return cmd
}

func transactionsHistoryCmd() *cobra.Command {
	var (
		search string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse transaction history with search",
		Long: `Browse transaction history.

Search matches on description, project name, and division name, and is
applied after fetching, so it also finds text the backend does not index.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client := newAPIClient(sess)
			transactions, _, err := client.ListTransactions(ctx, api.ListTransactionsOptions{
				OrgID: sess.OrgID,
				Page:  1,
				Limit: 50,
			})
			if err != nil {
				return err
			}

			filtered := transactions
			if search != "" {
				filtered = filtered[:0:0]
				for i := range transactions {
					if transactions[i].MatchesSearch(search) {
						filtered = append(filtered, transactions[i])
					}
				}
			}

			if len(filtered) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found."))
				return nil
			}

			start := (page - 1) * historyPageSize
			if start >= len(filtered) || start < 0 {
				return common.NewUserError(
					fmt.Sprintf("page %d is out of range (%d matching transactions)", page, len(filtered)),
					common.ErrInvalidInput,
				)
			}
			end := start + historyPageSize
			if end > len(filtered) {
				end = len(filtered)
			}

			printTransactionTable(filtered[start:end])
			totalPages := (len(filtered) + historyPageSize - 1) / historyPageSize
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Page %d of %d (%d matching)", page, totalPages, len(filtered))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by description, project, or division")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func transactionsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one transaction in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			tx, err := newAPIClient(sess).GetTransaction(ctx, args[0])
			if err != nil {
				return err
			}

			printTransactionDetail(tx)
			return nil
		},
	}
}

func transactionsCreateCmd() *cobra.Command {
	var (
		projectID, categoryID   string
		amount, txType          string
		date, description, file string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a manual transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin, model.RoleTreasurer); err != nil {
				return err
			}

			if projectID == "" || amount == "" {
				return common.NewUserError("--project and --amount are required", common.ErrInvalidInput)
			}
			normalizedType := strings.ToUpper(strings.TrimSpace(txType))
			if normalizedType != model.TypeIncome && normalizedType != model.TypeExpense {
				return common.NewUserError("--type must be INCOME or EXPENSE", common.ErrInvalidInput)
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			req := api.CreateTransactionRequest{
				OrgID:           sess.OrgID,
				ProjectID:       projectID,
				TransactionDate: date,
				Amount:          model.AmountFromString(amount),
				Type:            normalizedType,
				CategoryID:      categoryID,
				Description:     description,
			}

			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("opening attachment: %w", err)
				}
				defer f.Close()
				req.Attachment = f
				req.AttachmentName = filepath.Base(file)
			}

			tx, err := newAPIClient(sess).CreateTransaction(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction recorded"))
			printTransactionDetail(tx)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID the transaction belongs to")
	cmd.Flags().StringVar(&categoryID, "category", "", "category ID")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in rupiah")
	cmd.Flags().StringVar(&txType, "type", "", "INCOME or EXPENSE")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&file, "attachment", "", "path to a receipt or supporting document")

	return cmd
}

func transactionsUpdateCmd() *cobra.Command {
	var txType, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction's type or description",
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

			normalizedType := strings.ToUpper(strings.TrimSpace(txType))
			if normalizedType != model.TypeIncome && normalizedType != model.TypeExpense {
				return common.NewUserError("--type must be INCOME or EXPENSE", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).UpdateTransaction(ctx, args[0], normalizedType, description); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "INCOME or EXPENSE")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func transactionsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
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
				return common.NewUserError("deleting is permanent, re-run with --force to confirm", common.ErrInvalidInput)
			}

			if err := newAPIClient(sess).DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}

func printTransactionTable(transactions []model.Transaction) {
	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions found."))
		return
	}

	for i := range transactions {
		tx := &transactions[i]

		badge := cli.SubtleStyle.Render("○")
		if tx.Verified() {
			badge = cli.SuccessStyle.Render("✓")
		}

		fmt.Printf("%s %s  %-11s %-20s %-16s %s\n",
			badge,
			cli.FormatChartLabel(tx.Date()),
			cli.Truncate(tx.NormalizedType(), 11),
			cli.Truncate(tx.ProjectName(), 20),
			cli.Truncate(tx.CategoryName(), 16),
			cli.FormatSigned(tx.Amount.Decimal, tx.IsIncome()),
		)
	}
}

func printTransactionDetail(tx *model.Transaction) {
	fmt.Printf("ID:          %s\n", tx.ID)
	fmt.Printf("Date:        %s\n", cli.FormatDateTime(tx.Date()))
	fmt.Printf("Type:        %s\n", tx.NormalizedType())
	fmt.Printf("Amount:      %s\n", cli.FormatRupiah(tx.Amount.Decimal))
	fmt.Printf("Category:    %s\n", tx.CategoryName())
	fmt.Printf("Project:     %s\n", tx.ProjectName())
	fmt.Printf("Division:    %s\n", tx.DivisionName())
	if tx.Description != "" {
		fmt.Printf("Description: %s\n", tx.Description)
	}
	if tx.BlockchainHash != "" {
		fmt.Printf("Ledger hash: %s\n", tx.BlockchainHash)
	}
	if tx.AIAnomalyScore != nil {
		fmt.Printf("Anomaly:     %s\n", cli.WarningStyle.Render(fmt.Sprintf("score %.2f", *tx.AIAnomalyScore)))
	}
	if tx.AnomalyReport != nil && tx.AnomalyReport.Reason != "" {
		fmt.Printf("  Reason:    %s\n", tx.AnomalyReport.Reason)
	}
	for _, att := range tx.Attachments {
		fmt.Printf("Attachment:  %s\n", att.FileURL)
	}
}
