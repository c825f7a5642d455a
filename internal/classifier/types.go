package classifier

// #region imports
import (
	"strings"
	"time"

	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region event-type

// EventType labels a learning event inferred from behavioral signals.
type EventType string

const (
	EventSustainedFocus          EventType = "sustained_focus"
	EventShallowEngagement       EventType = "shallow_engagement"
	EventConfusionSilent         EventType = "confusion_without_asking"
	EventCognitiveOverload       EventType = "cognitive_overload"
	EventDistractionPhone        EventType = "distraction_phone"
	EventDistractionEnvironment  EventType = "distraction_environment"
	EventFatigue                 EventType = "fatigue"
	EventSuccessfulApplication   EventType = "successful_application"
	EventDisengagementPostExplan EventType = "disengagement_after_explanation"
	EventRecovery                EventType = "recovery"
	EventAttentionDrop           EventType = "attention_drop"

	// EventInsufficient is the named fallthrough when no rule matches.
	// It is a valid outcome, not an error.
	EventInsufficient EventType = "insufficient_evidence"
)

// IsDistraction reports whether the event type is any distraction variant.
func (e EventType) IsDistraction() bool {
	return strings.Contains(string(e), "distraction")
}

// #endregion event-type

// #region intervention-type

// InterventionType names the remedial action a learning event calls for.
type InterventionType string

const (
	InterventionNone            InterventionType = ""
	InterventionGentleRefocus   InterventionType = "gentle_refocus"
	InterventionSimplifyContent InterventionType = "simplify_content"
	InterventionSuggestBreak    InterventionType = "suggest_break"
)

// #endregion intervention-type

// #region learning-event

// LearningEvent is one classified observation with the evidence behind it.
type LearningEvent struct {
	Timestamp        time.Time          `json:"timestamp"`
	EventType        EventType          `json:"event_type"`
	Evidence         signals.Behavioral `json:"evidence"`
	Confidence       float64            `json:"confidence"`
	ShouldIntervene  bool               `json:"should_intervene"`
	InterventionType InterventionType   `json:"intervention_type,omitempty"`
}

// #endregion learning-event
