package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"bindery/internal/catalog"
	"bindery/internal/organizer"
	"bindery/internal/services"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var noDelete bool
	var runID string

	cmd := &cobra.Command{
		Use:   "apply [PATH]",
		Short: "Execute the most recent plan recorded for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runApply(cmd, ctx, target, runID, noDelete)
		},
	}

	cmd.Flags().BoolVar(&noDelete, "no-delete", false, "Apply renames but keep duplicates and flagged files")
	cmd.Flags().StringVar(&runID, "run", "", "Apply a specific run id instead of the latest plan")

	return cmd
}

func runApply(cmd *cobra.Command, cmdCtx *commandContext, target, runID string, noDelete bool) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.buildLogger()
	if err != nil {
		return err
	}

	// One apply at a time; a second instance mutating the same plan
	// would race on the filesystem.
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrIO, "applying", "acquire lock", "Cannot acquire the apply lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "applying", "acquire lock",
			"Another bindery instance holds the lock at "+cfg.LockPath(), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	store, err := catalog.Open(cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "applying", "open catalog", "Cannot open catalog database", err)
	}
	defer store.Close()

	ctx := services.WithStage(cmd.Context(), "applying")

	var run *catalog.Run
	if runID != "" {
		run, err = store.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		if run == nil {
			return services.Wrap(services.ErrNotFound, "applying", "load run", "No run with id "+runID, nil)
		}
	} else {
		root, absErr := filepath.Abs(target)
		if absErr != nil {
			return absErr
		}
		run, err = store.LatestPlanned(ctx, root)
		if err != nil {
			return err
		}
		if run == nil {
			return services.Wrap(services.ErrNotFound, "applying", "load run",
				"No pending plan for "+root+"; run bindery scan first", nil)
		}
	}

	summary, err := organizer.New(store, logger).Apply(ctx, run, organizer.Options{SkipDeletes: noDelete})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied run %s: %d renamed, %d deleted, %d skipped, %d failed\n",
		run.ID, summary.Renamed, summary.Deleted, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d operation(s) failed; inspect with: bindery runs", summary.Failed)
	}
	return nil
}
