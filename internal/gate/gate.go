// Package gate decides whether a distraction tick surfaces a user-facing
// intervention and whether it earns an audit-log entry. Display is reactive
// and flicker-suppressed; logging is sparser and trend-oriented. The two
// conditions are deliberately independent.
package gate

// #region imports
import (
	"fmt"
	"time"

	"github.com/officemates/antigravity/internal/classifier"
)

// #endregion

// #region gate

// Gate evaluates intervention display and audit logging for one tick.
type Gate struct {
	config Config
}

// New creates a gate with the given configuration.
func New(config Config) *Gate {
	return &Gate{config: config}
}

// Evaluate applies the display rule chain, then the independent logging rule.
// now is the tick timestamp; state is never mutated here — the caller updates
// bookkeeping from the returned decision.
func (g *Gate) Evaluate(in TickInput, book Bookkeeping, now time.Time) Decision {
	if !in.Distracted {
		// Focused ticks never display and never touch cooldown state, but a
		// distracted→focused transition still earns a log entry.
		return Decision{
			ShouldLog: book.LastStatus,
			Reason:    "not distracted",
		}
	}

	allowed, why := g.displayAllowed(in, book, now)

	message := ""
	if allowed {
		message = g.selectMessage(in)
	}

	d := Decision{
		Show:      message != "",
		Message:   message,
		ShouldLog: g.shouldLog(in, book, now),
		Reason:    why,
	}
	if allowed && message == "" {
		d.Reason = "display allowed but no message warranted"
	}
	return d
}

// #endregion gate

// #region display-rules

// displayAllowed runs the ordered display rule chain:
// transition → type change → cooldown expiry → suppress.
func (g *Gate) displayAllowed(in TickInput, book Bookkeeping, now time.Time) (bool, string) {
	if !book.LastStatus {
		return true, "status transitioned to distracted"
	}
	if in.Type != book.LastInterventionType {
		return true, fmt.Sprintf("distraction type changed to %s", in.Type)
	}
	if now.Sub(book.LastInterventionTime) >= g.config.InterventionCooldown {
		return true, "cooldown elapsed for repeated type"
	}
	return false, "suppressed: same type within cooldown"
}

// selectMessage picks the message for an allowed display, in priority order:
// classifier override → smoother refocus → escalation fallback.
func (g *Gate) selectMessage(in TickInput) string {
	switch in.EventIntervention {
	case classifier.InterventionSuggestBreak:
		return MsgTired
	case classifier.InterventionSimplifyContent:
		return MsgSimplify
	}
	if in.RawMessage {
		return MsgRefocus
	}
	if in.DistractionCount > g.config.EscalationCount {
		return MsgSuggestBreak
	}
	return ""
}

// #endregion display-rules

// #region log-rule

// shouldLog is the audit gate: log on any stable-status change, or every
// LogInterval while the same distracted status persists.
func (g *Gate) shouldLog(in TickInput, book Bookkeeping, now time.Time) bool {
	if in.Distracted != book.LastStatus {
		return true
	}
	return now.Sub(book.LastLogTime) >= g.config.LogInterval
}

// #endregion log-rule
