package engine

// #region imports
import (
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/gate"
	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/signals"
	"github.com/officemates/antigravity/internal/smoother"
)

// #endregion

// #region config

// Config bundles the tuning knobs for one engine instance.
type Config struct {
	Smoother smoother.Config
	Gate     gate.Config
	Adapter  plan.AdapterConfig

	// DefaultGoalMinutes seeds a plan when adaptation fires before the user
	// ever asked for one.
	DefaultGoalMinutes int

	// FrameInterval is the extractor's sampling cadence; focused ticks credit
	// this much to the user's focus total.
	FrameInterval time.Duration
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		Smoother:           smoother.DefaultConfig(),
		Gate:               gate.DefaultConfig(),
		Adapter:            plan.DefaultAdapterConfig(),
		DefaultGoalMinutes: 25,
		FrameInterval:      3 * time.Second,
	}
}

// #endregion config

// #region result

// Result is one analysis tick's outcome, shaped for the API response.
type Result struct {
	UserID              string                   `json:"user_id"`
	DistractionDetected bool                     `json:"distraction_detected"`
	DistractionType     signals.DistractionType  `json:"distraction_type,omitempty"`
	DistractionLevel    float64                  `json:"distraction_level"`
	Intervention        string                   `json:"intervention,omitempty"`
	ShouldIntervene     bool                     `json:"should_intervene"`
	LearningEvent       classifier.LearningEvent `json:"learning_event"`
	TeachingReady       bool                     `json:"teaching_ready"`
	FocusPlan           *plan.FocusPlan          `json:"focus_plan,omitempty"`
	PlanAdapted         bool                     `json:"plan_adapted"`
}

// #endregion result

// #region readiness

// Readiness is the teaching-moment verdict derived from recent events.
type Readiness struct {
	ShouldTeach bool   `json:"should_teach"`
	Reason      string `json:"reason"`
}

// #endregion readiness
