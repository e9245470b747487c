// Package render draws chart series as PNG or SVG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/services/charts"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var ErrEmptySeries = errors.New("series has no data")

type Config struct {
	Width  int
	Height int
	Format Format
}

func DefaultConfig() Config {
	return Config{
		Width:  1024,
		Height: 512,
		Format: FormatPNG,
	}
}

// palette mirrors the dashboard colours, one per series name.
var palette = map[string]drawing.Color{
	charts.NameProductSales:   drawing.ColorFromHex("4bc0c0"),
	charts.NameLowToHigh:      drawing.ColorFromHex("ff9f40"),
	charts.NamePredictedSales: drawing.ColorFromHex("36a2eb"),
	charts.NameGrowth:         drawing.ColorFromHex("9966ff"),
	charts.NameCOGS:           drawing.ColorFromHex("ff6384"),
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (expected png or svg)", s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Series renders one series: bar series as a bar chart, line series as a
// filled line over the category labels.
func Series(w io.Writer, s charts.Series, cfg Config) error {
	if s.Empty() {
		return fmt.Errorf("%s: %w", s.Name, ErrEmptySeries)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}

	provider := chart.PNG
	if cfg.Format == FormatSVG {
		provider = chart.SVG
	}

	color, ok := palette[s.Name]
	if !ok {
		color = chart.ColorBlue
	}

	if s.Kind == charts.KindLine {
		return lineChart(s, cfg, color).Render(provider, w)
	}
	return barChart(s, cfg, color).Render(provider, w)
}

func barChart(s charts.Series, cfg Config, color drawing.Color) chart.BarChart {
	bars := make([]chart.Value, 0, len(s.Values))
	for i, v := range s.Values {
		bars = append(bars, chart.Value{
			Label: s.Labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   color.WithAlpha(160),
				StrokeColor: color,
				StrokeWidth: 1,
			},
		})
	}

	barWidth := (cfg.Width - 120) / (2 * len(bars))
	barWidth = max(4, min(barWidth, 80))

	return chart.BarChart{
		Title:      s.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  s.Label,
			Range: valueRange(s.Values),
		},
		Bars: bars,
	}
}

func lineChart(s charts.Series, cfg Config, color drawing.Color) chart.Chart {
	xs := make([]float64, len(s.Values))
	ticks := make([]chart.Tick, len(s.Values))
	for i := range s.Values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: s.Labels[i]}
	}

	// a single point still needs a non-zero x range
	xMax := math.Max(float64(len(xs)-1), 1)

	c := chart.Chart{
		Title:      s.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  s.Label,
			Range: valueRange(s.Values),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.Label,
				XValues: xs,
				YValues: s.Values,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(64),
					DotColor:    color,
					DotWidth:    4,
				},
			},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return c
}

// valueRange always includes zero and never collapses to a single point.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo == 0 {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}
