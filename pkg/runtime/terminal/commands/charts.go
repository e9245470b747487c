package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/de-tools/sales-atlas/pkg/render"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ChartsCmd struct {
	session *Session
	outDir  string
	format  string
	only    []string
}

func NewChartsCmd(session *Session) *cobra.Command {
	cc := &ChartsCmd{session: session}
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Print the analysis charts and optionally render them to image files",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.outDir, "out", "", "Directory to write chart images to")
	cmd.Flags().StringVar(&cc.format, "format", string(render.FormatPNG), "Image format: png or svg")
	cmd.Flags().StringSliceVar(&cc.only, "only", nil,
		fmt.Sprintf("Limit output to these charts %v", charts.Names()))

	return cmd
}

func (cc *ChartsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	for _, name := range cc.only {
		if !slices.Contains(charts.Names(), name) {
			return fmt.Errorf("unknown chart %q. Supported charts: %v", name, charts.Names())
		}
	}
	format, err := render.ParseFormat(cc.format)
	if err != nil {
		return err
	}

	result, err := cc.session.loadResult(ctx)
	if err != nil {
		return err
	}

	var selected []charts.Series
	for _, s := range charts.All(result) {
		if len(cc.only) == 0 || slices.Contains(cc.only, s.Name) {
			selected = append(selected, s)
		}
	}

	if err := cc.session.Reporter.Bars(selected); err != nil {
		return err
	}
	if cc.outDir == "" {
		return nil
	}

	if err := os.MkdirAll(cc.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	cfg := render.Config{
		Width:  cc.session.Settings.Charts.Width,
		Height: cc.session.Settings.Charts.Height,
		Format: format,
	}
	for _, s := range selected {
		path := filepath.Join(cc.outDir, s.Name+format.Extension())
		err := writeChart(path, s, cfg)
		if errors.Is(err, render.ErrEmptySeries) {
			logger.Warn().Str("chart", s.Name).Msg("skipping chart without data")
			continue
		}
		if err != nil {
			return err
		}
		if err := cc.session.Reporter.Message(fmt.Sprintf("wrote %s", path)); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(path string, s charts.Series, cfg render.Config) (err error) {
	if s.Empty() {
		return render.ErrEmptySeries
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := render.Series(f, s, cfg); err != nil {
		return fmt.Errorf("failed to render %s: %w", s.Name, err)
	}
	return nil
}
