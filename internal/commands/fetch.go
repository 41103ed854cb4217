package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/explorer"
	"github.com/kasflow-dev/kasflow/internal/runlog"
	"github.com/kasflow-dev/kasflow/internal/trace"
)

func newFetchCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fetch [address]",
		Short: "Download the full transaction history from the block explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			wallet, err := p.wallet(args)
			if err != nil {
				return err
			}
			return runFetch(cmd.Context(), p, wallet, verbose)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each page request")

	return cmd
}

func runFetch(ctx context.Context, p *project, wallet string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ec := p.cfg.Explorer
	baseURL := ec.BaseURL
	if baseURL == "" {
		baseURL = explorer.DefaultBaseURL
	}

	opts := []explorer.ClientOption{explorer.WithLogger(logger)}
	if ec.TimeoutSeconds > 0 {
		opts = append(opts, explorer.WithTimeout(time.Duration(ec.TimeoutSeconds)*time.Second))
	}
	if ec.MaxRetries > 0 {
		opts = append(opts, explorer.WithRetries(ec.MaxRetries, time.Second))
	}
	client := explorer.NewClient(baseURL, opts...)

	histOpts := explorer.HistoryOptions{MaxPages: ec.MaxPages}
	if ec.Cutoff != "" {
		cutoff, err := time.Parse("2006-01-02", ec.Cutoff)
		if err != nil {
			return fmt.Errorf("parsing explorer.cutoff %q: %w", ec.Cutoff, err)
		}
		histOpts.Cutoff = cutoff.UTC()
	}

	entry := runlog.Entry{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Address:   wallet,
		Status:    runlog.StatusOK,
	}

	fmt.Printf("Fetching history for %s from %s\n", wallet, baseURL)
	txs, pages, fetchErr := client.History(ctx, wallet, histOpts)
	entry.Pages = pages
	entry.Transactions = len(txs)

	// Derive and persist whatever was fetched, even on a failed run:
	// partial files are the documented behavior, there is no rollback.
	// A clean run with an empty history still writes header-only files,
	// so downstream commands see "no history" rather than a missing
	// file. Only a failed run that fetched nothing leaves existing files
	// alone.
	participants := trace.Participants(txs)
	involving := trace.Involving(participants, wallet)
	entry.Records = len(participants)

	if len(txs) > 0 || fetchErr == nil {
		if err := p.data.WriteTransfersFile(p.data.ParticipantsPath(wallet), participants); err != nil {
			return err
		}
		if err := p.data.WriteTransfersFile(p.data.InvolvingPath(wallet), involving); err != nil {
			return err
		}
		fmt.Printf("Saved %d participant rows to %s\n", len(participants), p.data.ParticipantsPath(wallet))
		fmt.Printf("Saved %d involving rows to %s\n", len(involving), p.data.InvolvingPath(wallet))
	}

	if fetchErr != nil {
		entry.Status = runlog.StatusFailed
		entry.Error = fetchErr.Error()
	}
	if err := runlog.Append(p.dir, []runlog.Entry{entry}); err != nil {
		return err
	}

	if fetchErr != nil {
		return fmt.Errorf("fetch aborted after %d transactions: %w", len(txs), fetchErr)
	}

	fmt.Printf("Fetched %d transactions (run %s)\n", len(txs), entry.RunID)
	return nil
}
