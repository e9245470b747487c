package commands

import (
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

func NewSummaryCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the profit and loss summary of the last analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := session.loadResult(cmd.Context())
			if err != nil {
				return err
			}
			return session.Reporter.Handle(report.Summary(result, session.Settings.Currency))
		},
	}
}

type ProductsCmd struct {
	session *Session
	low     bool
}

func NewProductsCmd(session *Session) *cobra.Command {
	pc := &ProductsCmd{session: session}
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show the product sales table of the last analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := pc.session.loadResult(cmd.Context())
			if err != nil {
				return err
			}
			if pc.low {
				return pc.session.Reporter.Handle(report.Products("Low Sales Products", result.LowSalesProducts))
			}
			return pc.session.Reporter.Handle(report.Products("Product Sales Data", result.ProductSales))
		},
	}

	cmd.Flags().BoolVar(&pc.low, "low", false, "Show the low sales products table instead")
	return cmd
}
