package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/catalog"
)

type runView struct {
	ID               string `json:"id"`
	Root             string `json:"root"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
	Renames          int    `json:"renames"`
	DuplicateDeletes int    `json:"duplicate_deletes"`
	IssueDeletes     int    `json:"issue_deletes"`
	TodoItems        int    `json:"todo_items"`
	Error            string `json:"error,omitempty"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			views := make([]runView, 0, len(runs))
			for _, run := range runs {
				views = append(views, runView{
					ID:               run.ID,
					Root:             run.Root,
					Status:           run.Status,
					CreatedAt:        run.CreatedAt.Local().Format(time.RFC3339),
					Renames:          run.RenameCount,
					DuplicateDeletes: run.DuplicateDeleteCount,
					IssueDeletes:     run.IssueDeleteCount,
					TodoItems:        run.TodoCount,
					Error:            run.ErrorMessage,
				})
			}

			if jsonOutput {
				return writeJSON(cmd, views)
			}

			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{
					shortID(view.ID),
					view.Status,
					view.Root,
					view.CreatedAt,
					fmt.Sprintf("%d", view.Renames),
					fmt.Sprintf("%d", view.DuplicateDeletes+view.IssueDeletes),
					fmt.Sprintf("%d", view.TodoItems),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Status", "Root", "Created", "Renames", "Deletes", "Todo"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
