package commands

import (
	"github.com/de-tools/sales-atlas/pkg/services/ledger"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type SearchCmd struct {
	session *Session
	product string
	date    string
}

func NewSearchCmd(session *Session) *cobra.Command {
	sc := &SearchCmd{session: session}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search daily COGS, sales, profit and losses by product and date",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.product, "product", "", "Product name (case-insensitive, exact)")
	cmd.Flags().StringVar(&sc.date, "date", "", "Sale date, e.g. 2025-03-01")

	return cmd
}

func (sc *SearchCmd) run(cmd *cobra.Command, _ []string) error {
	result, err := sc.session.loadResult(cmd.Context())
	if err != nil {
		return err
	}

	matches, err := ledger.Search(result.DailyDetails, sc.product, sc.date)
	if err != nil {
		return &UserError{Msg: ledger.Message(nil, err), Err: err}
	}
	day := ledger.NormalizeDate(sc.date)
	if day == "" {
		day = sc.date
	}
	return sc.session.Reporter.Handle(report.LedgerSearch(sc.product, day, matches, nil))
}
