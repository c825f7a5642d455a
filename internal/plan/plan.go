// Package plan generates and adapts per-user focus plans. Adaptation uses an
// ordered rule table with a global cooldown so plans never oscillate.
package plan

// #region imports
import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region generate

// GenerateStats is the student-model snapshot plan generation draws on.
type GenerateStats struct {
	PreferredWorkDuration int // minutes; 0 means no history, default 25
	DistractionsToday     int
	SessionsCompleted     int
}

// Generate builds a conservative focus plan for the user. Ambition has to be
// earned by evidence: the recommendation never exceeds the goal, and heavy
// recent distraction shortens it further.
func Generate(userID string, goalMinutes int, stats GenerateStats, now time.Time) FocusPlan {
	preferred := stats.PreferredWorkDuration
	if preferred <= 0 {
		preferred = 25
	}
	if goalMinutes <= 0 {
		goalMinutes = 25
	}

	recommended := preferred
	if goalMinutes < recommended {
		recommended = goalMinutes
	}
	if stats.DistractionsToday > 10 {
		recommended -= 10
		if recommended < 10 {
			recommended = 10
		}
	}

	breakDuration := 3
	if recommended >= 25 {
		breakDuration = 5
	}

	confidence := 0.5
	if stats.SessionsCompleted > 0 {
		confidence = 0.7
	}

	return FocusPlan{
		ID:                         uuid.New().String(),
		UserID:                     userID,
		CreatedAt:                  now,
		RecommendedDurationMinutes: recommended,
		BreakIntervalMinutes:       recommended,
		BreakDurationMinutes:       breakDuration,
		Goals:                      []string{},
		Adaptations:                []Adaptation{},
		Confidence:                 confidence,
		Rationale: fmt.Sprintf("Based on %d previous sessions and %d recent distractions",
			stats.SessionsCompleted, stats.DistractionsToday),
	}
}

// GenerateAlternatives are the plan shapes considered when generating.
func GenerateAlternatives(goalMinutes int) []string {
	return []string{
		"Standard 25-minute plan",
		fmt.Sprintf("Extended %d-minute plan", goalMinutes),
		"Short 10-minute starter plan",
	}
}

// #endregion generate

// #region adapt-rules

// adaptRule pairs a named trigger predicate with the change it applies.
// Evaluated in order; at most one rule fires per call.
type adaptRule struct {
	name  string
	match func(Trigger, AdapterConfig) bool
	apply func(*FocusPlan, Trigger, AdapterConfig, time.Time) Adaptation
}

var adaptRules = []adaptRule{
	{
		name: "phone_use_shrink",
		match: func(t Trigger, _ AdapterConfig) bool {
			return t.DistractionType == signals.DistractionPhoneUse
		},
		apply: func(p *FocusPlan, _ Trigger, cfg AdapterConfig, now time.Time) Adaptation {
			old := p.RecommendedDurationMinutes
			newDuration := old - cfg.PhoneShrink
			if newDuration < cfg.PhoneFloor {
				newDuration = cfg.PhoneFloor
			}
			newBreak := newDuration
			if newBreak > 15 {
				newBreak = 15
			}
			p.RecommendedDurationMinutes = newDuration
			p.BreakIntervalMinutes = newBreak
			return Adaptation{
				Type: AdaptReduceFocusTime,
				Change: fmt.Sprintf("Reduced focus time from %dmin to %dmin due to phone use",
					old, newDuration),
				NewDuration:      newDuration,
				NewBreakInterval: newBreak,
				Timestamp:        now,
			}
		},
	},
	{
		name: "repeated_looking_away_decompose",
		match: func(t Trigger, cfg AdapterConfig) bool {
			return t.DistractionType == signals.DistractionLookingAway &&
				t.DistractionCount > cfg.LookAwayMinCount
		},
		apply: func(p *FocusPlan, _ Trigger, cfg AdapterConfig, now time.Time) Adaptation {
			old := p.RecommendedDurationMinutes
			newDuration := old - cfg.LookAwayShrink
			if newDuration < cfg.LookAwayFloor {
				newDuration = cfg.LookAwayFloor
			}
			newBreak := old / 2
			if newBreak < 10 {
				newBreak = 10
			}
			p.RecommendedDurationMinutes = newDuration
			p.BreakIntervalMinutes = newBreak
			return Adaptation{
				Type: AdaptDecomposeGoal,
				Change: fmt.Sprintf("Breaking session into smaller chunks: %dmin blocks with %dmin breaks",
					newDuration, newBreak),
				NewDuration:      newDuration,
				NewBreakInterval: newBreak,
				Timestamp:        now,
			}
		},
	},
	{
		name: "overload_simplify",
		match: func(t Trigger, _ AdapterConfig) bool {
			return t.EventType == classifier.EventCognitiveOverload
		},
		apply: func(p *FocusPlan, _ Trigger, cfg AdapterConfig, now time.Time) Adaptation {
			for i := range p.Tasks {
				if p.Tasks[i].Priority > cfg.DemoteThreshold {
					p.Tasks[i].Priority--
				}
			}
			return Adaptation{
				Type:      AdaptSimplifyTasks,
				Change:    "Breaking current goals into smaller, more manageable steps",
				Timestamp: now,
			}
		},
	},
	{
		name: "sustained_focus_extend",
		match: func(t Trigger, _ AdapterConfig) bool {
			return t.EventType == classifier.EventSustainedFocus
		},
		apply: func(p *FocusPlan, _ Trigger, cfg AdapterConfig, now time.Time) Adaptation {
			old := p.RecommendedDurationMinutes
			newDuration := old + cfg.ExtendStep
			if newDuration > cfg.ExtendCap {
				newDuration = cfg.ExtendCap
			}
			p.RecommendedDurationMinutes = newDuration
			return Adaptation{
				Type: AdaptExtendBlock,
				Change: fmt.Sprintf("Focus going well - extending from %dmin to %dmin",
					old, newDuration),
				NewDuration: newDuration,
				Timestamp:   now,
			}
		},
	},
}

// #endregion adapt-rules

// #region adapt

// Adapt applies at most one adaptation to the plan. It is a no-op while the
// most recent prior adaptation is younger than the cooldown; an unmatched
// trigger leaves the plan, its adaptation list, and the cooldown untouched.
func Adapt(p *FocusPlan, trigger Trigger, cfg AdapterConfig, now time.Time) AdaptResult {
	if n := len(p.Adaptations); n > 0 {
		if now.Sub(p.Adaptations[n-1].Timestamp) < cfg.Cooldown {
			return AdaptResult{Reason: "adaptation cooldown active"}
		}
	}

	for _, r := range adaptRules {
		if !r.match(trigger, cfg) {
			continue
		}
		a := r.apply(p, trigger, cfg, now)
		p.Adaptations = append(p.Adaptations, a)
		return AdaptResult{
			Applied:    true,
			Adaptation: &a,
			Action:     fmt.Sprintf("adapt_plan_%s", a.Type),
			Reason: fmt.Sprintf("Behavioral event '%s' triggered adaptation: %s",
				trigger.Label(), a.Change),
		}
	}

	return AdaptResult{Reason: "no adaptation rule matched"}
}

// #endregion adapt
