package scan

import (
	"context"
	"database/sql"
	"time"

	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
	complianceStore "github.com/grc-tools/control-atlas/pkg/store/duckdb/compliance"
	scanStore "github.com/grc-tools/control-atlas/pkg/store/duckdb/scan"
	"github.com/rs/zerolog"
)

// Runner drives one profile's scan loop: capture a snapshot, evaluate
// every catalog control, persist snapshot and results in one
// transaction, project failures into the findings register, sleep.
type Runner struct {
	scan      *store.Scan
	db        *sql.DB
	scans     scanStore.Store
	results   complianceStore.Store
	collector platforms.Collector
	evaluator *compliance.Evaluator
	registers registers.Explorer
	done      chan struct{}
	progress  chan RunnerProgress
	config    RunnerConfig
}

type RunnerConfig struct {
	SleepInterval time.Duration
}

type RunnerProgress struct {
	EvaluatedControls int
	FailedControls    int
	LastScanAt        time.Time
}

func NewRunner(
	scan *store.Scan,
	db *sql.DB,
	scans scanStore.Store,
	results complianceStore.Store,
	collector platforms.Collector,
	evaluator *compliance.Evaluator,
	registersExplorer registers.Explorer,
) *Runner {
	return &Runner{
		scan:      scan,
		db:        db,
		scans:     scans,
		results:   results,
		collector: collector,
		evaluator: evaluator,
		registers: registersExplorer,
		done:      make(chan struct{}),
		progress:  make(chan RunnerProgress, 100),
		config: RunnerConfig{
			SleepInterval: 15 * time.Minute,
		},
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().
		Str("profile", r.scan.Profile).
		Str("platform", r.scan.Platform).
		Logger()
	defer close(r.done)
	defer close(r.progress)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("scan stopped")
			return
		default:
			if err := r.runOnce(ctx); err != nil {
				logger.Error().Err(err).Msg("scan iteration failed")
				detail := err.Error()
				if err := r.scans.UpdateScanStatus(ctx, r.scan.Profile, string(domain.ScanStatusFailed), &detail); err != nil {
					logger.Error().Err(err).Msg("failed to record scan failure")
				}
			}

			select {
			case <-ctx.Done():
			case <-time.After(r.config.SleepInterval):
			}
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) error {
	snapshot, err := r.collector.Snapshot(ctx)
	if err != nil {
		return err
	}

	report, err := r.evaluator.Evaluate(snapshot, "")
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	if err := r.persist(ctxWithTx, snapshot, report); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			zerolog.Ctx(ctx).Error().Err(rollbackErr).Msg("rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := r.projectFindings(ctx, report); err != nil {
		return err
	}

	failed := 0
	for _, result := range report.Results {
		if result.Status == domain.ControlStatusFail {
			failed++
		}
	}
	// Progress is advisory. Drop the update when nobody reads the
	// channel, never stall the loop on it.
	select {
	case r.progress <- RunnerProgress{
		EvaluatedControls: len(report.Results),
		FailedControls:    failed,
		LastScanAt:        snapshot.CapturedAt,
	}:
	default:
	}
	return nil
}

func (r *Runner) persist(ctx context.Context, snapshot domain.PlatformSnapshot, report domain.ComplianceReport) error {
	if err := r.results.AddSnapshot(ctx, adapters.MapSnapshotDomainToStore(snapshot)); err != nil {
		return err
	}

	rows := make([]store.ControlResult, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, adapters.MapControlResultDomainToStore(r.scan.ID, r.scan.Profile, result))
	}
	if err := r.results.AddResults(ctx, rows); err != nil {
		return err
	}

	return r.scans.ProgressScan(ctx, r.scan.Profile, snapshot.CapturedAt)
}

// projectFindings appends a finding for each failed control that has
// no open finding yet for this profile.
func (r *Runner) projectFindings(ctx context.Context, report domain.ComplianceReport) error {
	for _, result := range report.Results {
		if result.Status != domain.ControlStatusFail {
			continue
		}

		existing, err := r.registers.GetRecords(ctx, "findings", domain.Filters{
			Dimensions: map[string][]string{
				"control_id": {result.Control.ID},
				"owner":      {r.scan.Profile},
				"status":     {string(domain.FindingStatusOpen)},
			},
		})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}

		finding := adapters.MapControlResultToFinding(r.scan.Profile, result)
		record := adapters.MapFindingToRecord(finding)
		if err := r.registers.AddRecords(ctx, "findings", []domain.RegisterRecord{record}); err != nil {
			return err
		}
	}
	return nil
}
