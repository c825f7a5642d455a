package eval

import (
	"fmt"

	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/student"
)

// #region eval-harness
// EvalHarness runs lightweight post-adaptation validation on the student model.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates a model after an analysis tick or a plan adaptation.
// Returns pass/fail with metrics. It never mutates the model.
func (h *EvalHarness) Run(m *student.Model) EvalResult {
	var metrics []EvalMetric
	passed := true
	var failReasons []string

	record := func(name string, value float64, pass bool, failFmt string, args ...any) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf(failFmt, args...))
		}
	}

	// 1. Status history must never outgrow the smoothing window.
	histLen := float64(len(m.StatusHistory))
	record("status_history_len", histLen, len(m.StatusHistory) <= h.config.MaxHistoryLen,
		"status history %d exceeds window %d", len(m.StatusHistory), h.config.MaxHistoryLen)

	// 2. Event log must stay within its retention cap.
	record("events_len", float64(len(m.Events)), len(m.Events) <= h.config.MaxEvents,
		"event log %d exceeds cap %d", len(m.Events), h.config.MaxEvents)

	// 3. Distraction count can only be non-negative.
	record("distraction_count", float64(m.DistractionCount), m.DistractionCount >= 0,
		"distraction count %d is negative", m.DistractionCount)

	if m.CurrentPlan != nil {
		metrics, passed, failReasons = h.checkPlan(m.CurrentPlan, metrics, passed, failReasons)
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// checkPlan validates the plan bounds the adaptation rules promise.
func (h *EvalHarness) checkPlan(p *plan.FocusPlan, metrics []EvalMetric, passed bool, failReasons []string) ([]EvalMetric, bool, []string) {
	record := func(name string, value float64, pass bool, failFmt string, args ...any) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf(failFmt, args...))
		}
	}

	d := p.RecommendedDurationMinutes
	record("plan_duration", float64(d), d >= h.config.MinDuration && d <= h.config.MaxDuration,
		"plan duration %d outside [%d, %d]", d, h.config.MinDuration, h.config.MaxDuration)

	b := p.BreakIntervalMinutes
	record("plan_break_interval", float64(b), b >= h.config.MinBreakInterval && b <= d,
		"break interval %d outside [%d, %d]", b, h.config.MinBreakInterval, d)

	record("plan_break_duration", float64(p.BreakDurationMinutes), p.BreakDurationMinutes > 0,
		"break duration %d must be positive", p.BreakDurationMinutes)

	record("plan_confidence", p.Confidence, p.Confidence > 0 && p.Confidence <= 1,
		"confidence %.2f outside (0, 1]", p.Confidence)

	// Adaptations must be time-ordered; out-of-order entries mean the
	// cooldown check is reading the wrong timestamp.
	ordered := true
	for i := 1; i < len(p.Adaptations); i++ {
		if p.Adaptations[i].Timestamp.Before(p.Adaptations[i-1].Timestamp) {
			ordered = false
			break
		}
	}
	record("plan_adaptations_ordered", float64(len(p.Adaptations)), ordered,
		"adaptations out of chronological order")

	return metrics, passed, failReasons
}

// #endregion eval-harness
