package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/smarttask/pkg/export"
	"github.com/MacroPower/smarttask/pkg/tasks"
)

var ErrImportFailed = errors.New("import failed")

// NewImportCmd returns the import command.
func NewImportCmd(args *RootArgs) *cobra.Command {
	merge := new(bool)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore tasks from a JSON backup",
		Long: `Restore tasks from a JSON or gzip compressed JSON backup.

The backup is validated against the schema printed by "smarttask schema"
before anything is written. By default it replaces the task list; with
--merge, imported tasks replace stored tasks with the same id and the rest
are kept.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			imported, err := export.ReadFile(pArgs[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrImportFailed, err)
			}

			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrImportFailed, err)
			}

			next := imported
			if *merge {
				current, err := s.List()
				if err != nil {
					return fmt.Errorf("%w: %w", ErrImportFailed, err)
				}

				next = mergeTasks(current, imported)
			}

			err = s.Replace(next)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrImportFailed, err)
			}

			cc.Printf("Imported %d tasks (%d stored)\n", len(imported), len(next))

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(merge, "merge", "m", false, "Keep stored tasks that are not in the backup")

	return cmd
}

func mergeTasks(current, imported []tasks.Task) []tasks.Task {
	seen := make(map[string]bool, len(imported))
	for _, t := range imported {
		seen[t.ID] = true
	}

	out := make([]tasks.Task, 0, len(current)+len(imported))
	for _, t := range current {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}

	return append(out, imported...)
}
