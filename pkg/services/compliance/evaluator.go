package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

// Evaluator compiles the catalog's CEL rules once and evaluates them
// against platform snapshots. A rule that cannot be evaluated for a
// given snapshot (missing config key, type mismatch) yields ERROR,
// not FAIL.
type Evaluator struct {
	catalog  *Catalog
	programs map[string]cel.Program // control ID -> compiled rule
}

func NewEvaluator(catalog *Catalog) (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("config", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	programs := make(map[string]cel.Program)
	for _, platform := range catalog.Platforms() {
		for _, control := range catalog.Controls(platform, "") {
			ast, issues := env.Compile(control.Rule)
			if issues != nil && issues.Err() != nil {
				return nil, fmt.Errorf("control %s: compile rule: %w", control.ID, issues.Err())
			}
			if ast.OutputType() != cel.BoolType {
				return nil, fmt.Errorf("control %s: rule must evaluate to bool, got %s", control.ID, ast.OutputType())
			}
			program, err := env.Program(ast)
			if err != nil {
				return nil, fmt.Errorf("control %s: build program: %w", control.ID, err)
			}
			programs[control.ID] = program
		}
	}

	return &Evaluator{catalog: catalog, programs: programs}, nil
}

// Evaluate checks the snapshot against every control of its platform,
// optionally restricted to one framework, and scores each framework
// as passed/total*100.
func (e *Evaluator) Evaluate(snapshot domain.PlatformSnapshot, framework domain.Framework) (domain.ComplianceReport, error) {
	if !snapshot.Platform.Auditable() {
		return domain.ComplianceReport{}, fmt.Errorf("platform %s has no control support", snapshot.Platform)
	}

	controls := e.catalog.Controls(snapshot.Platform, framework)
	now := time.Now().UTC()

	report := domain.ComplianceReport{
		Platform:   snapshot.Platform,
		Profile:    snapshot.Profile,
		CapturedAt: snapshot.CapturedAt,
		Period: domain.TimePeriod{
			Start:    snapshot.CapturedAt,
			End:      now,
			Duration: int(now.Sub(snapshot.CapturedAt).Hours() / 24),
		},
		Results: make([]domain.ControlResult, 0, len(controls)),
	}

	tally := make(map[domain.Framework]*domain.FrameworkScore)
	for _, control := range controls {
		result := e.evaluateControl(control, snapshot, now)
		report.Results = append(report.Results, result)

		score, ok := tally[control.Framework]
		if !ok {
			score = &domain.FrameworkScore{Framework: control.Framework}
			tally[control.Framework] = score
		}
		switch result.Status {
		case domain.ControlStatusPass:
			score.Passed++
		case domain.ControlStatusFail:
			score.Failed++
		default:
			score.Errored++
		}
	}

	for _, score := range tally {
		if total := score.Total(); total > 0 {
			score.Score = float64(score.Passed) / float64(total) * 100
		}
		report.Scores = append(report.Scores, *score)
	}
	sort.Slice(report.Scores, func(i, j int) bool {
		return report.Scores[i].Framework < report.Scores[j].Framework
	})

	return report, nil
}

func (e *Evaluator) evaluateControl(control domain.Control, snapshot domain.PlatformSnapshot, now time.Time) domain.ControlResult {
	result := domain.ControlResult{
		Control:     control,
		EvaluatedAt: now,
	}

	program, ok := e.programs[control.ID]
	if !ok {
		result.Status = domain.ControlStatusError
		result.Detail = "rule not compiled"
		return result
	}

	out, _, err := program.Eval(map[string]any{"config": snapshot.Config})
	if err != nil {
		result.Status = domain.ControlStatusError
		result.Detail = fmt.Sprintf("rule evaluation failed: %v", err)
		return result
	}

	passed, ok := out.Value().(bool)
	if !ok {
		result.Status = domain.ControlStatusError
		result.Detail = fmt.Sprintf("rule produced %T, want bool", out.Value())
		return result
	}

	if passed {
		result.Status = domain.ControlStatusPass
		return result
	}
	result.Status = domain.ControlStatusFail
	result.Detail = control.Remediation
	return result
}

// Platforms exposes the auditable platforms known to the evaluator.
func (e *Evaluator) Platforms() []domain.Platform {
	return e.catalog.Platforms()
}

// Controls exposes the catalog behind the evaluator.
func (e *Evaluator) Controls(platform domain.Platform, framework domain.Framework) []domain.Control {
	return e.catalog.Controls(platform, framework)
}
