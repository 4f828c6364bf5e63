package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MacroPower/smarttask/pkg/export"
	"github.com/MacroPower/smarttask/pkg/tasks"
)

const (
	exportDesc = `This command writes a backup of every task.

JSON backups can be imported again; XLSX workbooks add a summary sheet with
the productivity, weekly completion and priority charts.
`
	exportExample = `  smarttask export <command> [file]
  # Write smarttask-backup-<date>.json to the current directory
  smarttask export json

  # Write a compressed backup
  smarttask export json --gzip backups/tasks.json.gz

  # Write a workbook to stdout
  smarttask export xlsx - > tasks.xlsx
`
)

var ErrExportFailed = errors.New("export failed")

// NewExportCmd returns the export command.
func NewExportCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Back up tasks",
		Long:         exportDesc,
		Example:      exportExample,
		SilenceUsage: true,
	}

	gzip := new(bool)

	jsonCmd := newExportKindCmd(args, "json", "Write a JSON backup", func() export.Kind {
		if *gzip {
			return export.KindGzip
		}

		return export.KindJSON
	})
	jsonCmd.Flags().BoolVarP(gzip, "gzip", "z", false, "Compress the backup")

	cmd.AddCommand(jsonCmd)
	cmd.AddCommand(newExportKindCmd(args, "xlsx", "Write an XLSX workbook", func() export.Kind {
		return export.KindXLSX
	}))

	return cmd
}

func newExportKindCmd(args *RootArgs, use, short string, kind func() export.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  short + `. Without a file, a dated name in the current directory is used; "-" writes to stdout.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			k := kind()

			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExportFailed, err)
			}

			ts, err := s.List()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExportFailed, err)
			}

			now := s.Now()

			name := export.BackupName(now, k.Extension())
			if len(pArgs) > 0 {
				name = pArgs[0]
			}

			if name == "-" {
				err = export.Write(cc.OutOrStdout(), k, ts, now)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrExportFailed, err)
				}

				return nil
			}

			err = exportFile(name, k, ts, s)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExportFailed, err)
			}

			cc.Printf("Exported %d tasks to %s\n", len(ts), name)

			return nil
		},
		SilenceUsage: true,
	}
}

func exportFile(name string, k export.Kind, ts []tasks.Task, s *tasks.FileStore) error {
	got, err := export.KindOf(name)
	if err != nil {
		return err
	}

	if got != k {
		return fmt.Errorf("%w: %s is not a %s file", ErrInvalidArgument, name, k)
	}

	err = os.MkdirAll(filepath.Dir(name), 0o750)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return export.WriteFile(name, ts, s.Now())
}
