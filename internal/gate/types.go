package gate

// #region imports
import (
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region messages

// Intervention messages surfaced to the student.
const (
	MsgRefocus      = "Hey! I noticed you might be looking away. Let's refocus!"
	MsgSuggestBreak = "You've been distracted a few times. Want to take a 5-minute break?"
	MsgTired        = "I notice you might be getting tired. A short break could help you focus better."
	MsgSimplify     = "Let's break this down into smaller pieces. What part would you like to focus on?"
)

// #endregion messages

// #region gate-config

// Config holds the display and audit cooldowns.
type Config struct {
	InterventionCooldown time.Duration // min gap between repeats of the same message type
	LogInterval          time.Duration // audit cadence while the same distracted status persists
	EscalationCount      int           // lifetime distractions before the break fallback
}

// DefaultConfig returns the standard cooldowns.
func DefaultConfig() Config {
	return Config{
		InterventionCooldown: 8 * time.Second,
		LogInterval:          20 * time.Second,
		EscalationCount:      5,
	}
}

// #endregion gate-config

// #region tick-input

// TickInput is everything the gate needs for one tick's decision.
type TickInput struct {
	Distracted bool
	Type       signals.DistractionType

	// RawMessage means the smoother saw enough distracted frames to justify
	// a refocus message this tick (pre-cooldown).
	RawMessage bool

	// EventIntervention is the remedial action the classifier attached to
	// this tick's learning event, if any.
	EventIntervention classifier.InterventionType

	// DistractionCount is the lifetime counter including this tick.
	DistractionCount int
}

// Bookkeeping is the per-user cooldown state as of the previous tick.
type Bookkeeping struct {
	LastStatus           bool
	LastInterventionType signals.DistractionType
	LastInterventionTime time.Time
	LastLogTime          time.Time
}

// #endregion tick-input

// #region decision

// Decision is the gate's output for one tick. Show is true only when there is
// a non-empty Message; the caller arms the intervention cooldown only then.
type Decision struct {
	Show      bool
	Message   string
	ShouldLog bool
	Reason    string
}

// #endregion decision
