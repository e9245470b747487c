package config

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry lists the analysis endpoints declared in an ini profiles file:
//
//	[staging]
//	base_url = https://staging.example.com
//	timeout  = 30s
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.EndpointProfile, error)
	GetProfile(ctx context.Context, name string) (domain.EndpointProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(ctx context.Context) ([]domain.EndpointProfile, error) {
	var profiles []domain.EndpointProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		p, err := cr.GetProfile(ctx, section.Name())
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.EndpointProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return domain.EndpointProfile{}, fmt.Errorf("profile %s not found", name)
	}

	p := domain.EndpointProfile{
		Name:    name,
		BaseURL: section.Key("base_url").String(),
	}
	if section.HasKey("timeout") {
		timeout, err := section.Key("timeout").Duration()
		if err != nil {
			return domain.EndpointProfile{}, fmt.Errorf("profile %s: invalid timeout: %w", name, err)
		}
		p.Timeout = timeout
	}
	if p.BaseURL == "" {
		return domain.EndpointProfile{}, fmt.Errorf("profile %s has no base_url", name)
	}
	return p, nil
}
