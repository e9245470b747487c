package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Handle(&domain.Report{
		Title: "Financial Analysis Results",
		Sections: []domain.ReportSection{
			{
				Title:   "Profit and Loss Summary",
				Headers: []string{"Metric", "Value (Ksh)"},
				Rows: [][]interface{}{
					{"Total Sales", 1234567.891},
					{"Profit / Loss", -42.0},
				},
			},
			{
				Title:   "Search",
				Headers: []string{"Date"},
				Empty:   "No records found.",
			},
		},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Financial Analysis Results")
	assert.Contains(t, out, "=== Profit and Loss Summary ===")
	assert.Contains(t, out, "| Metric        | Value (Ksh)  |")
	assert.Contains(t, out, "1,234,567.89")
	assert.Contains(t, out, "-42")
	assert.Contains(t, out, "No records found.")

	// every table line of a section has the same width
	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+") {
			widths = append(widths, len([]rune(line)))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestReporter_Bars(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Bars([]charts.Series{
		{Title: "Sales Growth Analysis", Label: "Sales Growth (%)", Labels: []string{"Daily", "Yearly"}, Values: []float64{-5, 10}},
		{Title: "Product Sales Chart", Label: "Sales Volume", Labels: []string{}, Values: []float64{}},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "=== Sales Growth Analysis ===")
	assert.Contains(t, out, "Yearly | "+strings.Repeat("█", 40)+" 10")
	assert.Contains(t, out, "Daily  | "+strings.Repeat("░", 20)+" -5")
	assert.Contains(t, out, "No data available")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
}
