package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/workbook"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	session *Session
	out     string
}

func NewExportCmd(session *Session) *cobra.Command {
	ec := &ExportCmd{session: session}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the last analysis to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := ec.session.loadResult(cmd.Context())
			if err != nil {
				return err
			}
			if err := workbook.Save(ec.out, result, ec.session.Settings.Currency); err != nil {
				return err
			}
			return ec.session.Reporter.Message(fmt.Sprintf("wrote %s", ec.out))
		},
	}

	cmd.Flags().StringVar(&ec.out, "out", "analysis.xlsx", "Path of the workbook to write")
	return cmd
}
