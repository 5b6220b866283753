package commands

import (
	"github.com/spf13/cobra"

	"github.com/hardev/prismops/cmd/prismops/handlers"
)

// UpdateCategories returns the command for bulk category updates.
//
// The command reads VM rows from an Excel workbook and, for each row whose
// match column is exactly "OK", performs a conditional category-association
// write against Prism Central. Per-row outcomes are written back into the
// workbook's status and timestamp columns.
func UpdateCategories() *cobra.Command {
	var opts handlers.UpdateCategoriesOptions

	cmd := &cobra.Command{
		Use:   "update-categories",
		Short: "Bulk-update VM category associations from a workbook",
		Long: `Update VM category associations from an Excel workbook.

Each eligible row (match column exactly "OK") is processed independently:
the VM is read to obtain its current ETag, then the category association is
submitted as a conditional write. The outcome (ACCEPTED or FAILED with the
status code) and a timestamp are written back into the workbook row; one
row's failure never stops the batch.

Examples:
  prismops update-categories -w VMsToUpdate-PROD.xlsx

  # Non-default worksheet
  prismops update-categories -w VMsToUpdate.xlsx --sheet Staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.UpdateCategories(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "files/vars.txt", "Path to the key=value connection settings file")
	cmd.Flags().StringVarP(&opts.WorkbookPath, "workbook", "w", "", "Path to the VMs-to-update workbook (required)")
	cmd.Flags().StringVar(&opts.SheetName, "sheet", "ToUpdate", "Worksheet holding the update rows")
	_ = cmd.MarkFlagRequired("workbook")

	return cmd
}
