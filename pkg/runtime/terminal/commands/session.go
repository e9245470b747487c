package commands

import (
	"context"
	"errors"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/report"
)

var ErrNoAnalysis = errors.New("no analysis data")

// Uploader sends a report file to the analysis service.
type Uploader interface {
	UploadPath(ctx context.Context, path string) (*domain.AnalysisResult, error)
}

// Session carries the dependencies shared by every command. The root
// command fills it in before any subcommand runs. When Cache is nil it is
// opened through OpenCache on first use, so commands that never read the
// cache do not touch the cache file.
type Session struct {
	Settings     config.Settings
	ProfilesPath string
	Cache        cache.ResultCache
	OpenCache    func() (cache.ResultCache, error)
	Uploader     Uploader
	Reporter     *export.Reporter
}

// UserError carries a message meant for the terminal while keeping the
// underlying cause available to errors.Is.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	return e.Msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func (s *Session) resultCache() (cache.ResultCache, error) {
	if s.Cache != nil {
		return s.Cache, nil
	}
	if s.OpenCache == nil {
		return nil, errors.New("no result cache configured")
	}
	c, err := s.OpenCache()
	if err != nil {
		return nil, err
	}
	s.Cache = c
	return c, nil
}

func (s *Session) loadResult(ctx context.Context) (*domain.AnalysisResult, error) {
	c, err := s.resultCache()
	if err != nil {
		return nil, err
	}
	result, ok := c.Get(ctx)
	if !ok {
		return nil, &UserError{Msg: report.NoAnalysisMessage, Err: ErrNoAnalysis}
	}
	return result, nil
}
