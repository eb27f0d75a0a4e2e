package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/dashboard"
	"github.com/petanihandal/auchan-cli/internal/model"
)

var dashboardLimits = map[int]bool{10: true, 20: true, 50: true}

func dashboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregated statistics and recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !dashboardLimits[limit] {
				return common.NewUserError("--limit must be one of 10, 20, 50", common.ErrInvalidInput)
			}

			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client := newAPIClient(sess)

			// Stats and the transaction page are independent reads; fetch
			// them concurrently and fail the whole view on the first error.
			var (
				stats        *model.Statistics
				transactions []model.Transaction
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				err := fetchWithRetry(gctx, func() error {
					var err error
					stats, err = client.Statistics(gctx)
					return err
				})
				if err != nil {
					return fmt.Errorf("fetching statistics: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				err := fetchWithRetry(gctx, func() error {
					var err error
					transactions, _, err = client.ListTransactions(gctx, api.ListTransactionsOptions{
						OrgID: sess.OrgID,
						Page:  1,
						Limit: limit,
					})
					return err
				})
				if err != nil {
					return fmt.Errorf("fetching transactions: %w", err)
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			renderDashboard(stats, transactions, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "transactions to include (10, 20, or 50)")

	return cmd
}

func renderDashboard(stats *model.Statistics, transactions []model.Transaction, limit int) {
	fmt.Println(cli.TitleStyle.Render("Dashboard"))

	income := stats.TotalAmountIncome.Decimal
	expense := stats.TotalAmountExpense.Decimal

	fmt.Printf("  %s  %s\n", cli.BoldStyle.Render("Total Income:  "), cli.IncomeStyle.Render(cli.FormatRupiah(income)))
	fmt.Printf("  %s  %s\n", cli.BoldStyle.Render("Total Expense: "), cli.ExpenseStyle.Render(cli.FormatRupiah(expense)))

	net := stats.NetBalance()
	netStr := cli.FormatRupiah(net)
	if net.Sign() >= 0 {
		netStr = cli.IncomeStyle.Render(netStr)
	} else {
		netStr = cli.ExpenseStyle.Render(netStr)
	}
	fmt.Printf("  %s  %s\n", cli.BoldStyle.Render("Net Balance:   "), netStr)
	fmt.Printf("  %s  %d\n", cli.BoldStyle.Render("Transactions:  "), stats.TotalTransaction)

	if stats.HasAnomalies() {
		fmt.Printf("  %s\n", cli.WarningStyle.Render(fmt.Sprintf("⚠ %d anomalies flagged for review", stats.TotalAnomaly)))
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Activity (last %d)", limit)))
	points := dashboard.BuildSeries(transactions)
	fmt.Println(dashboard.RenderBars(points, 40))

	if len(transactions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("Recent Transactions"))
	for i := range transactions {
		tx := &transactions[i]
		amount := cli.FormatSigned(tx.Amount.Decimal, tx.IsIncome())
		line := fmt.Sprintf("  %s  %-12s %-28s %s",
			cli.FormatChartLabel(tx.Date()),
			tx.NormalizedType(),
			cli.Truncate(displayDescription(tx), 28),
			amount,
		)
		fmt.Println(line)
	}
}

func displayDescription(tx *model.Transaction) string {
	if desc := strings.TrimSpace(tx.Description); desc != "" {
		return desc
	}
	return tx.CategoryName()
}
