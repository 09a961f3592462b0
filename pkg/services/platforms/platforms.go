package platforms

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

// Collector captures a configuration snapshot of one audited
// platform. ibmi/jde/unix collectors generate deterministic sample
// snapshots; databricks and snowflake read live metadata.
type Collector interface {
	Platform() domain.Platform
	Snapshot(ctx context.Context) (domain.PlatformSnapshot, error)
}

type CollectorFactory func(ctx context.Context, profile string, cfg *domain.PlatformConfig) (Collector, error)

// Registry resolves a collector for a config profile.
type Registry interface {
	GetCollector(ctx context.Context, profile string, cfg *domain.PlatformConfig) (Collector, error)
	SupportedPlatforms() []domain.Platform
}

type registry struct {
	factories map[domain.Platform]CollectorFactory
}

func NewRegistry(factories map[domain.Platform]CollectorFactory) Registry {
	return &registry{factories: factories}
}

func (r *registry) GetCollector(ctx context.Context, profile string, cfg *domain.PlatformConfig) (Collector, error) {
	factory, ok := r.factories[cfg.Platform]
	if !ok {
		return nil, fmt.Errorf("no collector for platform %q", cfg.Platform)
	}
	return factory(ctx, profile, cfg)
}

func (r *registry) SupportedPlatforms() []domain.Platform {
	platforms := maps.Keys(r.factories)
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
