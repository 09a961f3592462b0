package scan

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/config"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	complianceStore "github.com/grc-tools/control-atlas/pkg/store/duckdb/compliance"
	scanStore "github.com/grc-tools/control-atlas/pkg/store/duckdb/scan"
	"github.com/rs/zerolog"
)

// Controller manages per-profile background compliance scans. Each
// running scan holds a cancel func and its runner; Cancel stops the
// runner and waits for it to drain.
type Controller interface {
	List(ctx context.Context) ([]domain.Scan, error)
	Start(ctx context.Context, profile string) (domain.Scan, error)
	Cancel(ctx context.Context, profile string) error
	Results(ctx context.Context, profile string) ([]domain.ControlResult, error)
}

type scanDescriptor struct {
	cancelFunc context.CancelFunc
	scan       *store.Scan
	runner     *Runner
}

type DefaultController struct {
	db        *sql.DB
	scans     scanStore.Store
	results   complianceStore.Store
	cfg       config.Registry
	platforms platforms.Registry
	evaluator *compliance.Evaluator
	registers registers.Explorer

	mu      sync.Mutex
	running map[string]scanDescriptor
}

func NewController(
	db *sql.DB,
	scans scanStore.Store,
	results complianceStore.Store,
	cfg config.Registry,
	registry platforms.Registry,
	evaluator *compliance.Evaluator,
	registersExplorer registers.Explorer,
) *DefaultController {
	return &DefaultController{
		db:        db,
		scans:     scans,
		results:   results,
		cfg:       cfg,
		platforms: registry,
		evaluator: evaluator,
		registers: registersExplorer,
		running:   make(map[string]scanDescriptor),
	}
}

// Init resumes scans that were pending when the server last stopped.
func (ctrl *DefaultController) Init(ctx context.Context) error {
	pending, err := ctrl.scans.ListScans(ctx, []string{string(domain.ScanStatusPending)})
	if err != nil {
		return err
	}

	for _, scan := range pending {
		if err := ctrl.startScan(ctx, scan); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("profile", scan.Profile).Msg("failed to resume scan")
		}
	}
	return nil
}

func (ctrl *DefaultController) List(ctx context.Context) ([]domain.Scan, error) {
	rows, err := ctrl.scans.ListScans(ctx, nil)
	if err != nil {
		return nil, err
	}

	scans := make([]domain.Scan, 0, len(rows))
	for _, row := range rows {
		scans = append(scans, adapters.MapScanStoreToDomain(row))
	}
	return scans, nil
}

func (ctrl *DefaultController) Start(ctx context.Context, profile string) (domain.Scan, error) {
	cfg, err := ctrl.cfg.GetConfig(ctx, profile)
	if err != nil {
		return domain.Scan{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	if !cfg.Platform.Auditable() {
		return domain.Scan{}, fmt.Errorf("platform %s has no control support", cfg.Platform)
	}

	ctrl.mu.Lock()
	_, alreadyRunning := ctrl.running[profile]
	ctrl.mu.Unlock()
	if alreadyRunning {
		return domain.Scan{}, fmt.Errorf("scan already running for profile %s", profile)
	}

	scan, err := ctrl.scans.CreateScan(ctx, store.ScanIdentity{
		Profile:  profile,
		Platform: string(cfg.Platform),
	})
	if err != nil {
		return domain.Scan{}, err
	}

	if err := ctrl.startScan(ctx, scan); err != nil {
		return domain.Scan{}, err
	}
	return adapters.MapScanStoreToDomain(scan), nil
}

// Results returns the control results persisted by the profile's most
// recent scan iteration.
func (ctrl *DefaultController) Results(ctx context.Context, profile string) ([]domain.ControlResult, error) {
	cfg, err := ctrl.cfg.GetConfig(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}

	rows, err := ctrl.results.GetLatestResults(ctx, string(cfg.Platform), profile)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ControlResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, adapters.MapControlResultStoreToDomain(row))
	}
	return results, nil
}

func (ctrl *DefaultController) Cancel(ctx context.Context, profile string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.running[profile]
	if !ok {
		return fmt.Errorf("scan not running: %s", profile)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.running, profile)
	return ctrl.scans.UpdateScanStatus(ctx, profile, string(domain.ScanStatusCancelled), nil)
}

func (ctrl *DefaultController) startScan(ctx context.Context, scan *store.Scan) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	cfg, err := ctrl.cfg.GetConfig(ctx, scan.Profile)
	if err != nil {
		return fmt.Errorf("profile %s: %w", scan.Profile, err)
	}

	collector, err := ctrl.platforms.GetCollector(ctx, scan.Profile, cfg)
	if err != nil {
		return err
	}

	// The scan outlives the request that started it. Keep the caller's
	// values (logger) but not its cancellation; only the per-scan
	// cancel func stops the runner.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runner := NewRunner(scan, ctrl.db, ctrl.scans, ctrl.results, collector, ctrl.evaluator, ctrl.registers)
	ctrl.running[scan.Profile] = scanDescriptor{
		cancelFunc: cancel,
		scan:       scan,
		runner:     runner,
	}

	go runner.Run(runCtx)
	return nil
}
