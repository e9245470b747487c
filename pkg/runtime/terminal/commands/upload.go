package commands

import (
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/services/upload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type UploadCmd struct {
	session *Session
}

func NewUploadCmd(session *Session) *cobra.Command {
	uc := &UploadCmd{session: session}
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a sales report and show the analysis",
		Long: `Upload a spreadsheet of product sales to the analysis service.
The returned analysis replaces the cached one and its summary is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: uc.run,
	}
}

func (uc *UploadCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	result, err := uc.session.Uploader.UploadPath(ctx, path)
	if err != nil {
		return &UserError{Msg: upload.Message(err), Err: err}
	}

	c, err := uc.session.resultCache()
	if err == nil {
		err = c.Put(ctx, result)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("analysis received but could not be persisted")
	}

	return uc.session.Reporter.Handle(report.Summary(result, uc.session.Settings.Currency))
}
