package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type TableConfig struct {
	MaxCellWidth int
	BarWidth     int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxCellWidth: 40,
		BarWidth:     40,
	}
}

type Reporter struct {
	writer  io.Writer
	config  TableConfig
	printer *message.Printer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		config:  DefaultTableConfig(),
		printer: message.NewPrinter(language.English),
	}
}

type sectionView struct {
	Title  string
	Empty  string
	Widths []int
	Header []string
	Rows   [][]string
}

type reportView struct {
	Title    string
	Sections []sectionView
}

const reportTemplate = `
{{.Title}}
{{range .Sections}}{{$widths := .Widths}}
=== {{.Title}} ===
{{if .Rows}}{{separator .Widths}}
{{formatRow .Header .Widths}}
{{separator .Widths}}
{{range .Rows}}{{formatRow . $widths}}
{{end}}{{separator .Widths}}
{{else}}{{.Empty}}
{{end}}{{end}}`

// Handle prints every section of the report as a fixed-width table.
func (c *Reporter) Handle(report *domain.Report) error {
	view := reportView{Title: report.Title}
	for _, s := range report.Sections {
		view.Sections = append(view.Sections, c.newSectionView(s))
	}

	funcMap := template.FuncMap{
		"formatRow": func(cells []string, widths []int) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				parts[i] = fmt.Sprintf(" %-*s ", w, cell)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func(widths []int) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

// Bars prints each series as a horizontal text bar chart.
func (c *Reporter) Bars(series []charts.Series) error {
	for _, s := range series {
		if _, err := fmt.Fprintf(c.writer, "\n=== %s ===\n%s\n", s.Title, s.Label); err != nil {
			return err
		}
		if s.Empty() {
			if _, err := fmt.Fprintln(c.writer, "No data available"); err != nil {
				return err
			}
			continue
		}

		labelWidth, peak := 0, 0.0
		for i, l := range s.Labels {
			labelWidth = max(labelWidth, len(l))
			peak = max(peak, math.Abs(s.Values[i]))
		}
		labelWidth = min(labelWidth, c.config.MaxCellWidth)

		for i, l := range s.Labels {
			v := s.Values[i]
			n := 0
			if peak > 0 {
				n = int(math.Round(math.Abs(v) / peak * float64(c.config.BarWidth)))
			}
			glyph := "█"
			if v < 0 {
				glyph = "░"
			}
			_, err := fmt.Fprintf(c.writer, "%-*s | %s %s\n",
				labelWidth, truncate(l, labelWidth), strings.Repeat(glyph, n), c.format(v))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Message prints a single line such as an error or empty-state notice.
func (c *Reporter) Message(msg string) error {
	_, err := fmt.Fprintln(c.writer, msg)
	return err
}

func (c *Reporter) newSectionView(s domain.ReportSection) sectionView {
	view := sectionView{
		Title:  s.Title,
		Empty:  s.Empty,
		Header: make([]string, len(s.Headers)),
		Widths: make([]int, len(s.Headers)),
	}
	if view.Empty == "" {
		view.Empty = "No data available"
	}
	for i, h := range s.Headers {
		view.Header[i] = truncate(h, c.config.MaxCellWidth)
		view.Widths[i] = len([]rune(view.Header[i]))
	}
	for _, row := range s.Rows {
		cells := make([]string, len(s.Headers))
		for i := range cells {
			if i < len(row) {
				cells[i] = truncate(c.format(row[i]), c.config.MaxCellWidth)
			}
			view.Widths[i] = max(view.Widths[i], len([]rune(cells[i])))
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

// format renders numbers with locale digit grouping and at most two
// fraction digits.
func (c *Reporter) format(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return c.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
	case int:
		return c.printer.Sprint(number.Decimal(n))
	case string:
		return n
	default:
		return fmt.Sprint(n)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
