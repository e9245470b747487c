package commands

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

// inputContract documents the columns the analysis service expects.
var inputContract = &domain.Report{
	Title: "Required Data & Expected Output",
	Sections: []domain.ReportSection{{
		Title:   "Excel Format Requirements",
		Headers: []string{"Column", "Description"},
		Rows: [][]interface{}{
			{"Product", "Name or identifier"},
			{"Date", "Sale date (YYYY-MM-DD)"},
			{"Sales", "Sales value"},
			{"COGS", "Cost of goods sold"},
		},
	}},
}

func NewRequirementsCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements",
		Short: "Describe the spreadsheet columns the analysis service expects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return session.Reporter.Handle(inputContract)
		},
	}
}
