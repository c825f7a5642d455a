// Package replay re-runs recorded frame sequences through a fully in-memory
// engine, comparing each tick against the fixture's expectations and
// validating the student model's invariants after every frame. Used for
// regression fixtures and offline tuning of the cooldown/threshold knobs.
package replay

// #region imports
import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/officemates/antigravity/internal/audit"
	"github.com/officemates/antigravity/internal/engine"
	"github.com/officemates/antigravity/internal/eval"
	"github.com/officemates/antigravity/internal/student"
)

// #endregion

// #region types

// TickResult is the outcome of replaying one frame.
type TickResult struct {
	Index      int
	At         time.Duration
	Result     engine.Result
	Eval       eval.EvalResult
	Mismatches []string
}

// Summary aggregates a replay run.
type Summary struct {
	TotalFrames     int
	DistractedTicks int
	Interventions   int
	Adaptations     int
	Mismatches      int
	EvalFailures    int
	Decisions       []audit.Decision
}

// #endregion types

// #region harness

// Run replays the fixture's frames against a fresh in-memory engine, running
// the eval harness over the student model after each tick. Timestamps derive
// from the fixture offsets against a fixed epoch, so runs are fully
// deterministic.
func Run(f *Fixture) ([]TickResult, Summary, error) {
	cfg := f.Config.ToEngineConfig()
	recorder := audit.NewMemoryRecorder()
	eng := engine.New(cfg, student.NewMemoryRepository(), recorder, zerolog.Nop())
	evalInst := eval.NewEvalHarness(evalConfigFor(cfg))

	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	results := make([]TickResult, 0, len(f.Frames))
	summary := Summary{TotalFrames: len(f.Frames)}

	for i, frame := range f.Frames {
		at := time.Duration(frame.AtSeconds * float64(time.Second))
		res, err := eng.AnalyzeFrame(ctx, f.UserID, frame.ToBehavioral(), epoch.Add(at))
		if err != nil {
			return results, summary, fmt.Errorf("frame %d: %w", i, err)
		}

		tick := TickResult{
			Index:      i,
			At:         at,
			Result:     res,
			Mismatches: compare(frame.Expect, res),
		}

		m, ok, err := eng.StudentModel(ctx, f.UserID)
		if err != nil {
			return results, summary, fmt.Errorf("frame %d: load model: %w", i, err)
		}
		if !ok {
			return results, summary, fmt.Errorf("frame %d: model missing after analysis", i)
		}
		var evalMismatch string
		tick.Eval, evalMismatch = evalTick(evalInst, m)
		if evalMismatch != "" {
			tick.Mismatches = append(tick.Mismatches, evalMismatch)
			summary.EvalFailures++
		}

		results = append(results, tick)

		if res.DistractionDetected {
			summary.DistractedTicks++
		}
		if res.Intervention != "" {
			summary.Interventions++
		}
		if res.PlanAdapted {
			summary.Adaptations++
		}
		summary.Mismatches += len(tick.Mismatches)
	}

	decisions, err := recorder.Decisions(ctx, f.UserID, 0)
	if err != nil {
		return results, summary, fmt.Errorf("collect decisions: %w", err)
	}
	summary.Decisions = decisions

	return results, summary, nil
}

// evalConfigFor aligns the eval bounds with the run's engine tuning so fixture
// overrides do not trip false invariant failures.
func evalConfigFor(cfg engine.Config) eval.EvalConfig {
	ec := eval.DefaultEvalConfig()
	ec.MaxHistoryLen = cfg.Smoother.WindowSize
	ec.MinDuration = cfg.Adapter.PhoneFloor
	ec.MaxDuration = cfg.Adapter.ExtendCap
	ec.MaxEvents = student.MaxEvents
	return ec
}

// evalTick validates the model and renders a failure as a tick mismatch.
func evalTick(h *eval.EvalHarness, m *student.Model) (eval.EvalResult, string) {
	res := h.Run(m)
	if res.Passed {
		return res, ""
	}
	return res, "eval: " + res.Reason
}

// compare checks only the expectation fields the fixture set.
func compare(expect *FixtureExpect, res engine.Result) []string {
	if expect == nil {
		return nil
	}
	var mismatches []string
	if expect.Distracted != nil && *expect.Distracted != res.DistractionDetected {
		mismatches = append(mismatches,
			fmt.Sprintf("distracted: want %v, got %v", *expect.Distracted, res.DistractionDetected))
	}
	if expect.EventType != nil && *expect.EventType != string(res.LearningEvent.EventType) {
		mismatches = append(mismatches,
			fmt.Sprintf("event_type: want %q, got %q", *expect.EventType, res.LearningEvent.EventType))
	}
	if expect.Intervention != nil && *expect.Intervention != res.Intervention {
		mismatches = append(mismatches,
			fmt.Sprintf("intervention: want %q, got %q", *expect.Intervention, res.Intervention))
	}
	if expect.PlanAdapted != nil && *expect.PlanAdapted != res.PlanAdapted {
		mismatches = append(mismatches,
			fmt.Sprintf("plan_adapted: want %v, got %v", *expect.PlanAdapted, res.PlanAdapted))
	}
	return mismatches
}

// #endregion harness
