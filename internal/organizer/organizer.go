package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bindery/internal/catalog"
	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/services"
)

// Options controls which parts of a plan the organizer executes.
type Options struct {
	// SkipDeletes applies renames but leaves duplicate and damaged
	// files in place.
	SkipDeletes bool
}

// Summary counts the outcomes of an apply pass.
type Summary struct {
	Renamed int
	Deleted int
	Skipped int
	Failed  int
}

// Organizer executes a planned run against the filesystem, recording
// per-operation outcomes in the catalog.
type Organizer struct {
	store  *catalog.Store
	logger *slog.Logger
}

func New(store *catalog.Store, logger *slog.Logger) *Organizer {
	return &Organizer{
		store:  store,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Apply walks the run's pending operations in order. A failing
// operation is recorded and skipped; it never aborts the batch. The run
// ends as applied, or partial when anything failed.
func (o *Organizer) Apply(ctx context.Context, run *catalog.Run, opts Options) (*Summary, error) {
	if run == nil {
		return nil, services.Wrap(services.ErrValidation, "applying", "load run", "No run to apply", nil)
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, o.logger)

	ops, err := o.store.OperationsForRun(ctx, run.ID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "applying", "load operations", "Failed to load planned operations", err)
	}

	summary := &Summary{}
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if op.Status != catalog.OpPending {
			continue
		}
		o.applyOne(ctx, logger, run, op, opts, summary)
	}

	status := catalog.RunApplied
	errMsg := ""
	if summary.Failed > 0 {
		status = catalog.RunPartial
		errMsg = fmt.Sprintf("%d operation(s) failed", summary.Failed)
	}
	if err := o.store.FinishRun(ctx, run.ID, status, errMsg); err != nil {
		return summary, err
	}

	logger.Info("apply completed",
		logging.Int("renamed", summary.Renamed),
		logging.Int("deleted", summary.Deleted),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (o *Organizer) applyOne(ctx context.Context, logger *slog.Logger, run *catalog.Run, op *catalog.Operation, opts Options, summary *Summary) {
	switch op.Kind {
	case catalog.KindRename:
		o.applyRename(ctx, logger, run, op, summary)
	case catalog.KindDuplicateDelete, catalog.KindIssueDelete:
		if opts.SkipDeletes {
			o.mark(ctx, logger, op, catalog.OpSkipped, "deletes disabled")
			summary.Skipped++
			return
		}
		o.applyDelete(ctx, logger, run, op, summary)
	default:
		o.mark(ctx, logger, op, catalog.OpFailed, "unknown operation kind "+op.Kind)
		summary.Failed++
	}
}

func (o *Organizer) applyRename(ctx context.Context, logger *slog.Logger, run *catalog.Run, op *catalog.Operation, summary *Summary) {
	source := filepath.Join(run.Root, filepath.FromSlash(op.Source))
	target := filepath.Join(run.Root, filepath.FromSlash(op.Target))

	if _, err := os.Lstat(source); os.IsNotExist(err) {
		o.mark(ctx, logger, op, catalog.OpSkipped, "source no longer exists")
		summary.Skipped++
		return
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		o.fail(ctx, logger, op, summary, err)
		return
	}
	unique, err := fileutil.UniquePath(target)
	if err != nil {
		o.fail(ctx, logger, op, summary, err)
		return
	}
	if unique != target {
		logger.Warn("target exists, using variant",
			logging.String("target", target),
			logging.String("variant", unique),
		)
	}
	if err := fileutil.MoveFile(source, unique); err != nil {
		o.fail(ctx, logger, op, summary, err)
		return
	}

	o.mark(ctx, logger, op, catalog.OpDone, "")
	summary.Renamed++
	logger.Info("renamed", logging.String("from", op.Source), logging.String("to", op.Target))
}

func (o *Organizer) applyDelete(ctx context.Context, logger *slog.Logger, run *catalog.Run, op *catalog.Operation, summary *Summary) {
	path := filepath.Join(run.Root, filepath.FromSlash(op.Source))

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			o.mark(ctx, logger, op, catalog.OpSkipped, "already gone")
			summary.Skipped++
			return
		}
		o.fail(ctx, logger, op, summary, err)
		return
	}

	o.mark(ctx, logger, op, catalog.OpDone, "")
	summary.Deleted++
	logger.Info("deleted", logging.String("path", op.Source), logging.String("reason", op.Detail))
}

func (o *Organizer) fail(ctx context.Context, logger *slog.Logger, op *catalog.Operation, summary *Summary, err error) {
	o.mark(ctx, logger, op, catalog.OpFailed, err.Error())
	summary.Failed++
	logger.Warn("operation failed",
		logging.String("kind", op.Kind),
		logging.String("source", op.Source),
		logging.Error(err),
	)
}

func (o *Organizer) mark(ctx context.Context, logger *slog.Logger, op *catalog.Operation, status, detail string) {
	if err := o.store.MarkOperation(ctx, op.ID, status, detail); err != nil {
		logger.Warn("failed to record operation outcome", logging.Error(err))
	}
}
