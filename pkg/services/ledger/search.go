// Package ledger searches the per-day transaction log of an analysis result.
package ledger

import (
	"errors"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

var (
	ErrNoData       = errors.New("no daily details available")
	ErrMissingInput = errors.New("both product name and date are required")
)

type Status string

const (
	StatusProfit Status = "Profit"
	StatusLoss   Status = "Loss"
)

// StatusOf derives the status label from a record's profit sign.
func StatusOf(record domain.DailyRecord) Status {
	if record.Profit >= 0 {
		return StatusProfit
	}
	return StatusLoss
}

// Match is a ledger record selected by Search together with its derived
// status.
type Match struct {
	Record domain.DailyRecord
	Status Status
}

// Search returns the records whose day equals the normalized date and whose
// product equals the product case-insensitively. Results keep ledger order;
// no match is an empty slice, not an error.
func Search(records []domain.DailyRecord, product, date string) ([]Match, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	product = strings.ToLower(strings.TrimSpace(product))
	if product == "" || strings.TrimSpace(date) == "" {
		return nil, ErrMissingInput
	}
	day := NormalizeDate(date)

	matches := make([]Match, 0)
	for _, record := range records {
		if record.Day != day || strings.ToLower(record.Product) != product {
			continue
		}
		matches = append(matches, Match{Record: record, Status: StatusOf(record)})
	}
	return matches, nil
}

// Message renders a search outcome the way the result panel shows it.
func Message(matches []Match, err error) string {
	switch {
	case errors.Is(err, ErrNoData):
		return "No daily details available."
	case errors.Is(err, ErrMissingInput):
		return "Please enter both product name and date."
	case err != nil:
		return err.Error()
	case len(matches) == 0:
		return "No records found."
	default:
		return ""
	}
}
