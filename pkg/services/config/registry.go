package config

import (
	"context"
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry reads audited-platform connection profiles from an INI
// file (~/.controlatlascfg). One section per profile:
//
//	[ibmi-prod]
//	platform = ibmi
//	host = pub400.example.com
//	user = qauditor
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetConfig(ctx context.Context, profile string) (*domain.PlatformConfig, error)
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

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		platform := domain.Platform(section.Key("platform").String())
		if !platform.IsValid() {
			return nil, fmt.Errorf("profile %s: unknown platform %q", section.Name(), platform)
		}
		profiles = append(profiles, domain.ConfigProfile{
			Name:     section.Name(),
			Platform: platform,
		})
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*domain.PlatformConfig, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	platform := domain.Platform(section.Key("platform").String())
	if !platform.IsValid() {
		return nil, fmt.Errorf("profile %s: unknown platform %q", profile, platform)
	}

	return &domain.PlatformConfig{
		Platform: platform,
		Host:     section.Key("host").String(),
		User:     section.Key("user").String(),
		Token:    section.Key("token").String(),
		DSN:      section.Key("dsn").String(),
		Profile:  section.Key("profile").String(),
	}, nil
}
