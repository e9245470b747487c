package domain

// Report is a titled set of tabular sections ready for presentation
type Report struct {
	Title    string
	Currency string
	Sections []ReportSection
}

// ReportSection represents one table in the report. Cell values keep their
// native type so the presenter decides number formatting.
type ReportSection struct {
	Title   string
	Headers []string
	Rows    [][]interface{}
	Empty   string // shown instead of the table when Rows is empty
}
