package compliance

import (
	"context"
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/config"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	complianceStore "github.com/grc-tools/control-atlas/pkg/store/duckdb/compliance"
	"github.com/rs/zerolog"
)

// Explorer is the compliance service behind the HTTP handlers and the
// `comply` CLI command: list platforms/frameworks, read or capture
// snapshots, evaluate reports.
type Explorer interface {
	ListPlatforms(ctx context.Context) []domain.Platform
	ListFrameworks(ctx context.Context) []domain.Framework
	GetSnapshot(ctx context.Context, platform domain.Platform) (domain.PlatformSnapshot, error)
	GetReport(ctx context.Context, platform domain.Platform, framework domain.Framework) (domain.ComplianceReport, error)
	Scoreboard(ctx context.Context, framework domain.Framework) ([]domain.ComplianceReport, error)
}

type defaultExplorer struct {
	evaluator *Evaluator
	cfg       config.Registry
	platforms platforms.Registry
	store     complianceStore.Store
}

func NewExplorer(evaluator *Evaluator, cfg config.Registry, registry platforms.Registry, store complianceStore.Store) Explorer {
	return &defaultExplorer{
		evaluator: evaluator,
		cfg:       cfg,
		platforms: registry,
		store:     store,
	}
}

func (e *defaultExplorer) ListPlatforms(_ context.Context) []domain.Platform {
	return e.evaluator.Platforms()
}

func (e *defaultExplorer) ListFrameworks(_ context.Context) []domain.Framework {
	return domain.Frameworks()
}

// GetSnapshot returns the latest persisted snapshot for the platform's
// configured profile, capturing and persisting a fresh one if none is
// stored yet.
func (e *defaultExplorer) GetSnapshot(ctx context.Context, platform domain.Platform) (domain.PlatformSnapshot, error) {
	profile, err := e.resolveProfile(ctx, platform)
	if err != nil {
		return domain.PlatformSnapshot{}, err
	}

	stored, err := e.store.GetLatestSnapshot(ctx, string(platform), profile)
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("load %s snapshot: %w", platform, err)
	}
	if stored != nil {
		return adapters.MapSnapshotStoreToDomain(*stored), nil
	}
	return e.Capture(ctx, profile)
}

// Capture collects a fresh snapshot for the profile and persists it.
func (e *defaultExplorer) Capture(ctx context.Context, profile string) (domain.PlatformSnapshot, error) {
	cfg, err := e.cfg.GetConfig(ctx, profile)
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("profile %s: %w", profile, err)
	}

	collector, err := e.platforms.GetCollector(ctx, profile, cfg)
	if err != nil {
		return domain.PlatformSnapshot{}, err
	}

	snapshot, err := collector.Snapshot(ctx)
	if err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("capture %s snapshot: %w", cfg.Platform, err)
	}

	if err := e.store.AddSnapshot(ctx, adapters.MapSnapshotDomainToStore(snapshot)); err != nil {
		return domain.PlatformSnapshot{}, fmt.Errorf("persist %s snapshot: %w", cfg.Platform, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("platform", string(snapshot.Platform)).
		Str("profile", snapshot.Profile).
		Int("config_keys", len(snapshot.Config)).
		Msg("captured platform snapshot")
	return snapshot, nil
}

func (e *defaultExplorer) GetReport(ctx context.Context, platform domain.Platform, framework domain.Framework) (domain.ComplianceReport, error) {
	snapshot, err := e.GetSnapshot(ctx, platform)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	return e.evaluator.Evaluate(snapshot, framework)
}

// Scoreboard evaluates every cataloged platform that has a configured
// profile. Platforms without a profile are skipped, not errors.
func (e *defaultExplorer) Scoreboard(ctx context.Context, framework domain.Framework) ([]domain.ComplianceReport, error) {
	logger := zerolog.Ctx(ctx)

	reports := make([]domain.ComplianceReport, 0)
	for _, platform := range e.evaluator.Platforms() {
		if _, err := e.resolveProfile(ctx, platform); err != nil {
			logger.Debug().Str("platform", string(platform)).Msg("no profile configured, skipping")
			continue
		}
		report, err := e.GetReport(ctx, platform, framework)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// resolveProfile picks the first configured profile for the platform.
func (e *defaultExplorer) resolveProfile(ctx context.Context, platform domain.Platform) (string, error) {
	profiles, err := e.cfg.GetProfiles(ctx)
	if err != nil {
		return "", fmt.Errorf("read profiles: %w", err)
	}
	for _, profile := range profiles {
		if profile.Platform == platform {
			return profile.Name, nil
		}
	}
	return "", fmt.Errorf("no profile configured for platform %s", platform)
}
