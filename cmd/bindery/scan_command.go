package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bindery/internal/catalog"
	"bindery/internal/dedupe"
	"bindery/internal/inspect"
	"bindery/internal/library"
	"bindery/internal/logging"
	"bindery/internal/metadata"
	"bindery/internal/preflight"
	"bindery/internal/report"
	"bindery/internal/scan"
	"bindery/internal/services"
	"bindery/internal/todo"
)

type scanOptions struct {
	maxDepth        int
	noRecursive     bool
	extensions      []string
	todoFile        string
	preserveUnicode bool
	deleteSmall     bool
	jsonOutput      bool
	workers         int
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	opts := scanOptions{maxDepth: -1, workers: -1}

	cmd := &cobra.Command{
		Use:   "scan [PATH]",
		Short: "Scan a directory and plan renames, deduplication and cleanup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runScan(cmd, ctx, target, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", -1, "Limit directory depth (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noRecursive, "no-recursive", false, "Scan only the top level")
	cmd.Flags().StringSliceVar(&opts.extensions, "extensions", nil, "Extensions to process (overrides config)")
	cmd.Flags().StringVar(&opts.todoFile, "todo-file", "", "Checklist destination (default todo.md in the target)")
	cmd.Flags().BoolVar(&opts.preserveUnicode, "preserve-unicode", false, "Keep accents and marks in synthesized names")
	cmd.Flags().BoolVar(&opts.deleteSmall, "delete-small", false, "Plan deletion of too-small and corrupted files")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit the operations plan as JSON")
	cmd.Flags().IntVar(&opts.workers, "workers", -1, "Hashing workers (overrides config)")

	return cmd
}

func runScan(cmd *cobra.Command, cmdCtx *commandContext, target string, opts scanOptions) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.buildLogger()
	if err != nil {
		return err
	}

	scanCfg := cfg.Scan
	if len(opts.extensions) > 0 {
		scanCfg.Extensions = opts.extensions
	}
	maxDepth := scanCfg.MaxDepth
	if opts.maxDepth >= 0 {
		maxDepth = opts.maxDepth
	}
	if opts.noRecursive || !scanCfg.Recursive {
		maxDepth = 1
	}
	workers := cfg.Dedupe.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	preserveUnicode := cfg.Rename.PreserveUnicode || opts.preserveUnicode
	todoFile := cfg.Report.TodoFile
	if opts.todoFile != "" {
		todoFile = opts.todoFile
	}

	ctx := services.WithStage(cmd.Context(), "scanning")

	scanner, err := scan.New(target, maxDepth, scanCfg, logger)
	if err != nil {
		return services.Wrap(services.ErrValidation, "scanning", "open target", "Cannot scan target directory", err)
	}
	root := scanner.Root()

	// A relative checklist path lives in the scanned tree, not the
	// current working directory.
	if todoFile != "" && !filepath.IsAbs(todoFile) {
		todoFile = filepath.Join(root, todoFile)
	}

	if failed := preflight.Failed(preflight.RunAll(cfg, root)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, result := range failed {
			details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
		return services.Wrap(services.ErrValidation, "scanning", "preflight",
			"Preflight checks failed: "+strings.Join(details, "; "), nil)
	}

	records, err := scanner.Scan(ctx)
	if err != nil {
		return services.Wrap(services.ErrIO, "scanning", "walk tree", "Directory walk failed", err)
	}
	logger.Info("scan complete", logging.Int("files", len(records)))

	parser := metadata.NewParser(cfg.Rename.SeriesPrefixes...)
	for _, rec := range records {
		parser.NormalizeRecord(rec, preserveUnicode)
	}

	if variants := dedupe.NameVariantGroups(records); len(variants) > 0 {
		logger.Debug("name variant clusters detected", logging.Int("clusters", len(variants)))
	}

	issues := inspect.NewChecker(logger).ExamineAll(records)

	var groups []library.DuplicateGroup
	if cfg.Dedupe.Enabled {
		detector := dedupe.NewDetector(scanCfg.Extensions, workers, logger)
		groups, _, err = detector.Detect(ctx, records)
		if err != nil {
			return services.Wrap(services.ErrIO, "scanning", "dedupe", "Duplicate detection failed", err)
		}
	}

	// Renames planned for files that dedupe will delete are pointless;
	// drop them before the plan is recorded.
	doomed := make(map[string]bool)
	for _, group := range groups {
		for _, path := range group.Delete {
			doomed[path] = true
		}
	}
	for _, rec := range records {
		if doomed[rec.Path] {
			rec.NewName = ""
			rec.NewPath = ""
		}
	}

	todoList, err := todo.Load(todoFile, root)
	if err != nil {
		return services.Wrap(services.ErrIO, "scanning", "load checklist", "Cannot read existing checklist", err)
	}

	// Files this run deletes must leave the checklist too, or an entry
	// from a previous run outlives the file it points at.
	deletions := make(map[*library.FileRecord]library.Issue)
	for _, rec := range records {
		if doomed[rec.Path] {
			todoList.Remove(rec.Name)
			continue
		}
		issue, flagged := issues[rec]
		if !flagged {
			continue
		}
		if opts.deleteSmall && (issue == library.IssueTooSmall || issue == library.IssueCorruptedPDF) {
			deletions[rec] = issue
			todoList.Remove(rec.Name)
			continue
		}
		todoList.AddIssue(rec, issue)
	}

	ops := report.Build(records, groups, deletions, todoList.Items(), root)

	store, err := catalog.Open(cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "scanning", "open catalog", "Cannot open catalog database", err)
	}
	defer store.Close()

	run, err := store.CreateRun(ctx, root, ops)
	if err != nil {
		return services.Wrap(services.ErrIO, "scanning", "record plan", "Failed to record the plan", err)
	}
	logger.Info("plan recorded", logging.String(logging.FieldRunID, run.ID))

	if err := todoList.Write(); err != nil {
		return services.Wrap(services.ErrIO, "scanning", "write checklist", "Failed to write checklist", err)
	}
	if len(ops.TodoItems) > 0 {
		logger.Info("checklist updated",
			logging.String("path", todoList.Path()),
			logging.Int("items", len(ops.TodoItems)))
	}

	if opts.jsonOutput {
		return writeJSON(cmd, ops)
	}
	renderScanResult(cmd, run, ops, records)
	return nil
}

func renderScanResult(cmd *cobra.Command, run *catalog.Run, ops *report.Operations, records []*library.FileRecord) {
	out := cmd.OutOrStdout()
	plainOutput := !stdoutIsTerminal()

	if ops.Empty() {
		fmt.Fprintf(out, "No changes needed; run %s recorded\n", run.ID)
		return
	}

	sizeByRelPath := make(map[string]int64, len(records))
	for _, rec := range records {
		sizeByRelPath[report.Relative(rec.Path, run.Root)] = rec.Size
	}

	if len(ops.Renames) > 0 {
		if plainOutput {
			for _, rename := range ops.Renames {
				fmt.Fprintf(out, "rename\t%s\t%s\n", rename.From, rename.To)
			}
		} else {
			rows := make([][]string, 0, len(ops.Renames))
			for _, rename := range ops.Renames {
				rows = append(rows, []string{rename.From, rename.To})
			}
			fmt.Fprintln(out, renderTable([]string{"From", "To"}, rows, nil))
		}
	}

	var reclaimable int64
	duplicateCount := 0
	if len(ops.DuplicateDeletes) > 0 {
		var rows [][]string
		for _, group := range ops.DuplicateDeletes {
			for _, path := range group.Delete {
				duplicateCount++
				reclaimable += sizeByRelPath[path]
				if plainOutput {
					fmt.Fprintf(out, "duplicate\t%s\t%s\n", path, group.Keep)
				} else {
					rows = append(rows, []string{group.Keep, path, humanize.Bytes(uint64(sizeByRelPath[path]))})
				}
			}
		}
		if !plainOutput {
			fmt.Fprintln(out, renderTable([]string{"Keep", "Delete", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
		}
	}

	if len(ops.SmallOrCorruptedDeletes) > 0 {
		if plainOutput {
			for _, del := range ops.SmallOrCorruptedDeletes {
				fmt.Fprintf(out, "delete\t%s\t%s\n", del.Path, del.Issue)
			}
		} else {
			rows := make([][]string, 0, len(ops.SmallOrCorruptedDeletes))
			for _, del := range ops.SmallOrCorruptedDeletes {
				rows = append(rows, []string{del.Path, string(del.Issue)})
			}
			fmt.Fprintln(out, renderTable([]string{"Delete", "Issue"}, rows, nil))
		}
	}

	renames, _, issueDeletes, todoCount := ops.Counts()
	fmt.Fprintf(out, "Planned %d rename(s), %d duplicate delete(s) (%s reclaimable), %d cleanup delete(s), %d checklist item(s)\n",
		renames, duplicateCount, humanize.Bytes(uint64(reclaimable)), issueDeletes, todoCount)
	fmt.Fprintf(out, "Run %s recorded; apply with: bindery apply %s\n", run.ID, run.Root)
}
