// Package workbook exports an analysis result as an xlsx workbook.
package workbook

import (
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/ledger"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetProductSales = "Product Sales"
	SheetLowSales     = "Low Sales"
	SheetGrowth       = "Growth"
	SheetDailyDetails = "Daily Details"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// Build lays the result out over one sheet per view. The caller closes the
// returned file.
func Build(r *domain.AnalysisResult, currency string) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9EAD3"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets(r, currency) {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func Write(w io.Writer, r *domain.AnalysisResult, currency string) error {
	f, err := Build(r, currency)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func Save(path string, r *domain.AnalysisResult, currency string) error {
	f, err := Build(r, currency)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func sheets(r *domain.AnalysisResult, currency string) []sheet {
	summary := sheet{name: SheetSummary, headers: []string{"Metric", "Value (" + currency + ")"}}
	for _, row := range report.SummaryRows(r) {
		summary.rows = append(summary.rows, []interface{}{row.Metric, row.Value})
	}
	summary.rows = append(summary.rows,
		[]interface{}{"Predicted Daily Sales", r.PredictedSales.Daily},
		[]interface{}{"Predicted Monthly Sales", r.PredictedSales.Monthly},
		[]interface{}{"Predicted Yearly Sales", r.PredictedSales.Yearly},
	)

	growth := sheet{name: SheetGrowth, headers: []string{"Period", "Sales Growth (%)"}}
	g := charts.GrowthSeries(r)
	for i, label := range g.Labels {
		growth.rows = append(growth.rows, []interface{}{label, g.Values[i]})
	}

	details := sheet{
		name:    SheetDailyDetails,
		headers: []string{"Date", "Product", "Sales", "COGS", "Profit", "Status"},
	}
	for _, d := range r.DailyDetails {
		details.rows = append(details.rows, []interface{}{
			d.Day, d.Product, d.Sales, d.COGS, d.Profit, string(ledger.StatusOf(d)),
		})
	}

	return []sheet{
		summary,
		tableSheet(SheetProductSales, r.ProductSales),
		tableSheet(SheetLowSales, r.LowSalesProducts),
		growth,
		details,
	}
}

func tableSheet(name string, t domain.Table) sheet {
	s := sheet{name: name, headers: t.Headers}
	for _, row := range t.Rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Value())
		}
		s.rows = append(s.rows, cells)
	}
	return s
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, 0, len(s.headers))
	for _, h := range s.headers {
		header = append(header, h)
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", s.name, err)
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", s.name, err)
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", s.name, i+1, err)
		}
	}

	if len(s.headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(s.headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, "A", last, 18); err != nil {
			return fmt.Errorf("size %s columns: %w", s.name, err)
		}
	}
	return nil
}
