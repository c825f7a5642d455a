package plan

// #region imports
import (
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region adaptation-type

// AdaptationType names the kind of change applied to a focus plan.
type AdaptationType string

const (
	AdaptReduceFocusTime AdaptationType = "reduce_focus_time"
	AdaptDecomposeGoal   AdaptationType = "decompose_goal"
	AdaptSimplifyTasks   AdaptationType = "simplify_tasks"
	AdaptExtendBlock     AdaptationType = "extend_block"
)

// #endregion adaptation-type

// #region task

// Task is one planned work item. Priority runs 1 (do now) to 5 (can wait).
type Task struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

// #endregion task

// #region adaptation

// Adaptation is one applied plan change. Append-only within a plan.
type Adaptation struct {
	Type             AdaptationType `json:"type"`
	Change           string         `json:"change"`
	NewDuration      int            `json:"new_duration,omitempty"`
	NewBreakInterval int            `json:"new_break_interval,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

// #endregion adaptation

// #region focus-plan

// FocusPlan is a per-user recommendation record the adaptation loop adjusts
// over time. Owned 1:1 by a student model, never shared across users.
type FocusPlan struct {
	ID                         string       `json:"id"`
	UserID                     string       `json:"user_id"`
	CreatedAt                  time.Time    `json:"created_at"`
	RecommendedDurationMinutes int          `json:"recommended_duration_minutes"`
	BreakIntervalMinutes       int          `json:"break_interval_minutes"`
	BreakDurationMinutes       int          `json:"break_duration_minutes"`
	Goals                      []string     `json:"goals"`
	Tasks                      []Task       `json:"tasks,omitempty"`
	Adaptations                []Adaptation `json:"adaptations"`
	Confidence                 float64      `json:"confidence"`
	Rationale                  string       `json:"rationale"`
}

// #endregion focus-plan

// #region trigger

// Trigger carries the behavioral evidence that may drive an adaptation.
// DistractionCount is the user's lifetime counter at trigger time.
type Trigger struct {
	EventType        classifier.EventType    `json:"event_type,omitempty"`
	DistractionType  signals.DistractionType `json:"distraction_type,omitempty"`
	DistractionLevel float64                 `json:"distraction_level"`
	DistractionCount int                     `json:"distraction_count"`
}

// Label returns the event type when set, else the distraction type. Used in
// decision rationales.
func (t Trigger) Label() string {
	if t.EventType != "" && t.EventType != classifier.EventInsufficient {
		return string(t.EventType)
	}
	return string(t.DistractionType)
}

// #endregion trigger

// #region adapter-config

// AdapterConfig holds the adaptation bounds and throttle.
type AdapterConfig struct {
	Cooldown         time.Duration // min interval between applied adaptations
	PhoneShrink      int           // minutes removed on phone use
	PhoneFloor       int           // duration floor for phone-use shrink
	LookAwayShrink   int           // minutes removed on repeated looking away
	LookAwayFloor    int           // duration floor for looking-away shrink
	ExtendStep       int           // minutes added on sustained focus
	ExtendCap        int           // hard ceiling on extension
	DemoteThreshold  int           // tasks above this priority get demoted on overload
	LookAwayMinCount int           // lifetime distractions needed before decompose fires
}

// DefaultAdapterConfig returns the standard adaptation bounds.
func DefaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Cooldown:         120 * time.Second,
		PhoneShrink:      5,
		PhoneFloor:       10,
		LookAwayShrink:   10,
		LookAwayFloor:    15,
		ExtendStep:       5,
		ExtendCap:        45,
		DemoteThreshold:  2,
		LookAwayMinCount: 3,
	}
}

// #endregion adapter-config

// #region adapt-result

// AdaptResult reports what Adapt did for one call.
type AdaptResult struct {
	Applied    bool
	Adaptation *Adaptation // nil when nothing applied
	Action     string      // audit action name, e.g. "adapt_plan_extend_block"
	Reason     string
}

// Alternatives are the options considered (and rejected) for every applied
// adaptation, recorded alongside the decision for explainability.
var Alternatives = []string{"No change", "End session early", "Switch modality"}

// #endregion adapt-result
