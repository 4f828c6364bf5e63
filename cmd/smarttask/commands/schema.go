package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/smarttask/pkg/export"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of backup files",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			js, err := export.SchemaJSON()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			cc.Println(string(js))

			return nil
		},
		SilenceUsage: true,
	}
}
