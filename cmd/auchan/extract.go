package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/jobs"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func transactionsExtractCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract transactions from a document with the AI service",
		Long: `Upload a receipt, invoice, or bank statement and let the AI service
extract transactions from it. The command waits for the extraction job to
finish; extracted transactions appear in the normal transaction list.`,
		Args: cobra.ExactArgs(1),
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

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening document: %w", err)
			}
			defer f.Close()

			aiClient := newAIClient()
			jobID, err := aiClient.ExtractDocument(ctx, f, filepath.Base(args[0]), sess.UserID, sess.OrgID, projectID)
			if err != nil {
				return fmt.Errorf("starting extraction: %w", err)
			}

			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Extraction job %s started", jobID)))

			state, err := waitForJob(ctx, "Extracting", jobID, func(ctx context.Context) (jobs.State, error) {
				return aiClient.ExtractStatus(ctx, jobID)
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Println(cli.WarningStyle.Render("Interrupted; the job keeps running remotely. Check back with the transaction list."))
					return nil
				}
				return err
			}

			if state == jobs.StateFailed {
				return common.NewUserError("extraction failed, check the document format", common.ErrJobFailed)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Extraction complete"))
			fmt.Println("Run 'auchan transactions list' to review the extracted entries.")
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID to attach extracted transactions to")

	return cmd
}

// waitForJob polls a remote job until it reaches a terminal state, showing a
// spinner while it runs. The tracker flips to processing before the first
// poll so feedback never waits for a tick.
func waitForJob(ctx context.Context, label, jobID string, status jobs.StatusFunc) (jobs.State, error) {
	tracker := jobs.NewTracker()
	tracker.Start(jobID)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	defer func() { _ = bar.Finish() }()

	poller := jobs.NewPoller(status, jobs.WithTick(func(state jobs.State) {
		tracker.Observe(state)
		_ = bar.Add(1)
	}))

	state, err := poller.Wait(ctx)
	if err != nil {
		return tracker.State(), err
	}
	return state, nil
}
