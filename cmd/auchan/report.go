package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/ai"
	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/jobs"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and download AI financial reports",
	}

	cmd.AddCommand(reportGenerateCmd())
	cmd.AddCommand(reportStatusCmd())
	cmd.AddCommand(reportDownloadCmd())

	return cmd
}

func reportGenerateCmd() *cobra.Command {
	var (
		month, year int
		wait        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Start an AI report job for a month",
		Long: `Ask the AI service to build a financial report for one month.

Only one job is tracked at a time; starting a new one replaces the tracked
job. A request for a month with no transactions is rejected by the service
and leaves the previously tracked job untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return common.NewUserError("--month must be between 1 and 12", common.ErrInvalidInput)
			}

			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin, model.RoleAuditor); err != nil {
				return err
			}

			prev, prevErr := store.GetTrackedReport(ctx)
			if prevErr == nil && !prev.MatchesPeriod(month, year) {
				fmt.Println(cli.WarningStyle.Render(
					fmt.Sprintf("Tracked job %s covers %02d/%d, requesting %02d/%d", prev.JobID, prev.Month, prev.Year, month, year)))
			}

			aiClient := newAIClient()
			jobID, err := aiClient.BuildReport(ctx, sess.OrgID, month, year)
			if err != nil {
				if errors.Is(err, common.ErrNoTransactions) {
					// The previously tracked job, if any, stays tracked.
					return common.NewUserError(
						fmt.Sprintf("no transactions recorded for %02d/%d, nothing to report on", month, year),
						err,
					)
				}
				return fmt.Errorf("starting report job: %w", err)
			}

			if prevErr == nil && prev.JobID != jobID {
				fmt.Println(cli.WarningStyle.Render(
					fmt.Sprintf("Replacing tracked job %s (%02d/%d)", prev.JobID, prev.Month, prev.Year)))
			}

			tracked := &model.TrackedReport{JobID: jobID, Month: month, Year: year}
			if err := store.SaveTrackedReport(ctx, tracked); err != nil {
				return fmt.Errorf("tracking report job: %w", err)
			}

			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Report job %s started for %02d/%d", jobID, month, year)))

			if !wait {
				fmt.Println("Check progress with 'auchan report status'.")
				return nil
			}

			state, err := waitForJob(ctx, "Generating report", jobID, func(ctx context.Context) (jobs.State, error) {
				return aiClient.ReportStatus(ctx, jobID)
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Println(cli.WarningStyle.Render("Interrupted; the job keeps running remotely. Check back with 'auchan report status'."))
					return nil
				}
				return err
			}
			return reportOutcome(state)
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "report month (1-12, default current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "report year (default current)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the job to finish")

	return cmd
}

func reportStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the tracked report job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin, model.RoleAuditor); err != nil {
				return err
			}

			tracked, err := store.GetTrackedReport(ctx)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError("no report job tracked, start one with 'auchan report generate'", err)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Job:    %s\n", tracked.JobID)
			fmt.Printf("Period: %02d/%d\n", tracked.Month, tracked.Year)

			state, err := newAIClient().ReportStatus(ctx, tracked.JobID)
			if errors.Is(err, common.ErrJobNotFound) {
				// The service no longer knows the job. Keep the record so the
				// user can see which period failed.
				fmt.Printf("Status: %s\n", cli.ErrorStyle.Render(string(jobs.StateFailed)))
				fmt.Println(cli.SubtleStyle.Render("The service no longer knows this job."))
				return nil
			}
			if err != nil {
				return fmt.Errorf("checking report status: %w", err)
			}

			return reportOutcome(state)
		},
	}
}

func reportDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the finished report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, sess, err := requireSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := requireRole(sess, model.RoleAdmin, model.RoleAuditor); err != nil {
				return err
			}

			tracked, err := store.GetTrackedReport(ctx)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError("no report job tracked, start one with 'auchan report generate'", err)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("auchan-report-%d-%02d.pdf", tracked.Year, tracked.Month)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}

			aiClient := newAIClient()
			written, err := downloadWithProgress(ctx, aiClient, tracked.JobID, f)
			closeErr := f.Close()
			if err != nil {
				_ = os.Remove(output)
				if errors.Is(err, common.ErrJobNotFound) {
					return common.NewUserError("report not available, check 'auchan report status' first", err)
				}
				return fmt.Errorf("downloading report: %w", err)
			}
			if closeErr != nil {
				_ = os.Remove(output)
				return fmt.Errorf("writing %s: %w", output, closeErr)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Report saved to %s (%d bytes)", output, written)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default auchan-report-<year>-<month>.pdf)")

	return cmd
}

func downloadWithProgress(ctx context.Context, aiClient *ai.Client, jobID string, w io.Writer) (int64, error) {
	size := aiClient.ReportSize(ctx, jobID)
	bar := progressbar.DefaultBytes(size, "Downloading")
	defer func() { _ = bar.Finish() }()

	return aiClient.DownloadReport(ctx, jobID, io.MultiWriter(w, bar))
}

func reportOutcome(state jobs.State) error {
	switch state {
	case jobs.StateCompleted:
		fmt.Println(cli.SuccessStyle.Render("✓ Report ready"))
		fmt.Println("Download it with 'auchan report download'.")
		return nil
	case jobs.StateFailed:
		return common.NewUserError("report generation failed", common.ErrJobFailed)
	default:
		fmt.Printf("Status: %s\n", cli.InfoStyle.Render(string(state)))
		return nil
	}
}
