package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/ledger"
)

func MapSummaryDomainToApi(currency string, rows []domain.SummaryRow) api.Summary {
	res := api.Summary{Currency: currency, Rows: make([]api.SummaryRow, 0, len(rows))}
	for _, row := range rows {
		res.Rows = append(res.Rows, api.SummaryRow{Metric: row.Metric, Value: row.Value})
	}
	return res
}

// MapSeriesToApi keeps labels and values as non-nil arrays so an empty
// chart encodes as [] rather than null.
func MapSeriesToApi(s charts.Series) api.Series {
	res := api.Series{
		Name:   s.Name,
		Title:  s.Title,
		Label:  s.Label,
		Kind:   string(s.Kind),
		Labels: make([]string, len(s.Labels)),
		Values: make([]float64, len(s.Values)),
	}
	copy(res.Labels, s.Labels)
	copy(res.Values, s.Values)
	return res
}

func MapLedgerMatchesToApi(matches []ledger.Match) []api.LedgerMatch {
	res := make([]api.LedgerMatch, 0, len(matches))
	for _, m := range matches {
		res = append(res, api.LedgerMatch{
			Date:    m.Record.Day,
			Product: m.Record.Product,
			Sales:   m.Record.Sales,
			COGS:    m.Record.COGS,
			Profit:  m.Record.Profit,
			Status:  string(m.Status),
		})
	}
	return res
}
