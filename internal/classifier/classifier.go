// Package classifier maps smoothed behavioral signals to learning events via
// an ordered rule table. First matching rule wins; the order is the tie-break.
package classifier

// #region imports
import (
	"time"

	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region rule-table

// outcome is the classification a rule produces when its predicate matches.
type outcome struct {
	eventType    EventType
	confidence   float64
	intervene    func(signals.Behavioral) bool
	intervention InterventionType
}

// rule pairs a named predicate with its outcome. Evaluated in slice order so
// each tie-break is auditable and testable on its own.
type rule struct {
	name      string
	predicate func(signals.Behavioral) bool
	outcome   outcome
}

func alwaysIntervene(signals.Behavioral) bool { return true }
func neverIntervene(signals.Behavioral) bool  { return false }

var rules = []rule{
	{
		name:      "face_absent",
		predicate: func(b signals.Behavioral) bool { return !b.FacePresent },
		outcome: outcome{
			eventType:    EventDistractionEnvironment,
			confidence:   0.9,
			intervene:    func(b signals.Behavioral) bool { return b.DistractionLevel > 0.5 },
			intervention: InterventionGentleRefocus,
		},
	},
	{
		name: "staring_without_interacting",
		predicate: func(b signals.Behavioral) bool {
			return b.TimeOnContent > 120 && b.InteractionCount == 0
		},
		outcome: outcome{
			eventType:    EventCognitiveOverload,
			confidence:   0.7,
			intervene:    alwaysIntervene,
			intervention: InterventionSimplifyContent,
		},
	},
	{
		name: "quick_scrolling",
		predicate: func(b signals.Behavioral) bool {
			return b.TimeOnContent < 10 && b.GazeStable
		},
		outcome: outcome{
			eventType:  EventShallowEngagement,
			confidence: 0.6,
			intervene:  neverIntervene,
		},
	},
	{
		name: "settled_attention",
		predicate: func(b signals.Behavioral) bool {
			return b.GazeStable && b.EyesOpen && b.TimeOnContent > 30
		},
		outcome: outcome{
			eventType:  EventSustainedFocus,
			confidence: 0.85,
			intervene:  neverIntervene,
		},
	},
}

// #endregion rule-table

// #region classify

// recoveryWindow is how many trailing events are scanned for prior distraction
// when deciding whether sustained focus is actually a bounce-back.
const recoveryWindow = 10

// Classify evaluates the rule table against one tick's signals. recent is the
// user's trailing event history, newest last. Partial or degenerate signals
// fall through to EventInsufficient; this function never fails.
func Classify(b signals.Behavioral, recent []LearningEvent, ts time.Time) LearningEvent {
	ev := LearningEvent{
		Timestamp: ts,
		EventType: EventInsufficient,
		Evidence:  b,
	}

	for _, r := range rules {
		if !r.predicate(b) {
			continue
		}
		ev.EventType = r.outcome.eventType
		ev.Confidence = r.outcome.confidence
		ev.ShouldIntervene = r.outcome.intervene(b)
		if ev.ShouldIntervene {
			ev.InterventionType = r.outcome.intervention
		}
		break
	}

	// Bounce-back after a recent distraction is tracked separately from
	// steady-state focus.
	if ev.EventType == EventSustainedFocus && hasRecentDistraction(recent) {
		ev.EventType = EventRecovery
		ev.Confidence = 0.75
	}

	return ev
}

func hasRecentDistraction(recent []LearningEvent) bool {
	start := len(recent) - recoveryWindow
	if start < 0 {
		start = 0
	}
	for _, e := range recent[start:] {
		if e.EventType.IsDistraction() {
			return true
		}
	}
	return false
}

// #endregion classify
