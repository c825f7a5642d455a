package plan

import (
	"testing"
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func basePlan(duration int) *FocusPlan {
	p := Generate("u1", duration, GenerateStats{PreferredWorkDuration: duration}, t0)
	return &p
}

func TestGenerateConservativeDefaults(t *testing.T) {
	p := Generate("u1", 25, GenerateStats{}, t0)

	if p.RecommendedDurationMinutes != 25 {
		t.Fatalf("duration = %d, want 25", p.RecommendedDurationMinutes)
	}
	if p.BreakIntervalMinutes != 25 {
		t.Fatalf("break interval = %d, want 25", p.BreakIntervalMinutes)
	}
	if p.BreakDurationMinutes != 5 {
		t.Fatalf("break duration = %d, want 5", p.BreakDurationMinutes)
	}
	if p.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5 with no completed sessions", p.Confidence)
	}
	if p.ID == "" || p.UserID != "u1" {
		t.Fatalf("plan identity not set: %+v", p)
	}
}

func TestGenerateNeverExceedsGoal(t *testing.T) {
	p := Generate("u1", 15, GenerateStats{PreferredWorkDuration: 25}, t0)
	if p.RecommendedDurationMinutes != 15 {
		t.Fatalf("duration = %d, want goal-capped 15", p.RecommendedDurationMinutes)
	}
	if p.BreakDurationMinutes != 3 {
		t.Fatalf("break duration = %d, want 3 for short plans", p.BreakDurationMinutes)
	}
}

func TestGenerateShortensUnderHeavyDistraction(t *testing.T) {
	p := Generate("u1", 25, GenerateStats{PreferredWorkDuration: 25, DistractionsToday: 11}, t0)
	if p.RecommendedDurationMinutes != 15 {
		t.Fatalf("duration = %d, want 15 after distraction penalty", p.RecommendedDurationMinutes)
	}

	floor := Generate("u1", 12, GenerateStats{PreferredWorkDuration: 12, DistractionsToday: 11}, t0)
	if floor.RecommendedDurationMinutes != 10 {
		t.Fatalf("duration = %d, want floor 10", floor.RecommendedDurationMinutes)
	}
}

func TestGenerateConfidenceWithHistory(t *testing.T) {
	p := Generate("u1", 25, GenerateStats{SessionsCompleted: 4}, t0)
	if p.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want 0.7 with session history", p.Confidence)
	}
}

func TestAdaptPhoneUse(t *testing.T) {
	p := basePlan(25)
	res := Adapt(p, Trigger{DistractionType: signals.DistractionPhoneUse}, DefaultAdapterConfig(), t0)

	if !res.Applied {
		t.Fatalf("phone use should adapt: %s", res.Reason)
	}
	if p.RecommendedDurationMinutes != 20 {
		t.Fatalf("duration = %d, want 20", p.RecommendedDurationMinutes)
	}
	if p.BreakIntervalMinutes != 15 {
		t.Fatalf("break interval = %d, want 15", p.BreakIntervalMinutes)
	}
	if len(p.Adaptations) != 1 || p.Adaptations[0].Type != AdaptReduceFocusTime {
		t.Fatalf("adaptations = %+v, want one reduce_focus_time", p.Adaptations)
	}
	if res.Action != "adapt_plan_reduce_focus_time" {
		t.Fatalf("action = %q", res.Action)
	}
}

func TestAdaptPhoneUseFloor(t *testing.T) {
	p := basePlan(12)
	Adapt(p, Trigger{DistractionType: signals.DistractionPhoneUse}, DefaultAdapterConfig(), t0)
	if p.RecommendedDurationMinutes != 10 {
		t.Fatalf("duration = %d, phone floor is 10", p.RecommendedDurationMinutes)
	}
}

func TestAdaptLookingAwayNeedsRepeatedDistractions(t *testing.T) {
	cfg := DefaultAdapterConfig()

	p := basePlan(40)
	res := Adapt(p, Trigger{DistractionType: signals.DistractionLookingAway, DistractionCount: 3}, cfg, t0)
	if res.Applied {
		t.Fatal("3 distractions should not trigger decompose (needs > 3)")
	}

	res = Adapt(p, Trigger{DistractionType: signals.DistractionLookingAway, DistractionCount: 4}, cfg, t0)
	if !res.Applied {
		t.Fatalf("4 distractions should trigger decompose: %s", res.Reason)
	}
	if p.RecommendedDurationMinutes != 30 {
		t.Fatalf("duration = %d, want 30", p.RecommendedDurationMinutes)
	}
	if p.BreakIntervalMinutes != 20 {
		t.Fatalf("break interval = %d, want half of original 40", p.BreakIntervalMinutes)
	}
	if p.Adaptations[0].Type != AdaptDecomposeGoal {
		t.Fatalf("type = %s, want decompose_goal", p.Adaptations[0].Type)
	}
}

func TestAdaptLookingAwayFloor(t *testing.T) {
	p := basePlan(20)
	Adapt(p, Trigger{DistractionType: signals.DistractionLookingAway, DistractionCount: 10}, DefaultAdapterConfig(), t0)
	if p.RecommendedDurationMinutes != 15 {
		t.Fatalf("duration = %d, looking-away floor is 15", p.RecommendedDurationMinutes)
	}
}

func TestAdaptOverloadDemotesTasks(t *testing.T) {
	p := basePlan(25)
	p.Tasks = []Task{
		{Title: "read chapter", Priority: 1},
		{Title: "outline essay", Priority: 3},
		{Title: "practice set", Priority: 4},
	}

	res := Adapt(p, Trigger{EventType: classifier.EventCognitiveOverload}, DefaultAdapterConfig(), t0)
	if !res.Applied {
		t.Fatalf("overload should adapt: %s", res.Reason)
	}
	if p.RecommendedDurationMinutes != 25 {
		t.Fatal("overload must not change duration")
	}
	if p.Tasks[0].Priority != 1 {
		t.Fatal("priority 1 task must be untouched")
	}
	if p.Tasks[1].Priority != 2 || p.Tasks[2].Priority != 3 {
		t.Fatalf("tasks above priority 2 should be demoted by one: %+v", p.Tasks)
	}
	if p.Adaptations[0].Type != AdaptSimplifyTasks {
		t.Fatalf("type = %s, want simplify_tasks", p.Adaptations[0].Type)
	}
}

func TestAdaptSustainedFocusExtends(t *testing.T) {
	p := basePlan(25)
	res := Adapt(p, Trigger{EventType: classifier.EventSustainedFocus}, DefaultAdapterConfig(), t0)
	if !res.Applied {
		t.Fatalf("sustained focus should adapt: %s", res.Reason)
	}
	if p.RecommendedDurationMinutes != 30 {
		t.Fatalf("duration = %d, want 30", p.RecommendedDurationMinutes)
	}
	if p.Adaptations[0].Type != AdaptExtendBlock {
		t.Fatalf("type = %s, want extend_block", p.Adaptations[0].Type)
	}
}

func TestAdaptExtensionCap(t *testing.T) {
	p := basePlan(43)
	Adapt(p, Trigger{EventType: classifier.EventSustainedFocus}, DefaultAdapterConfig(), t0)
	if p.RecommendedDurationMinutes != 45 {
		t.Fatalf("duration = %d, extension cap is 45", p.RecommendedDurationMinutes)
	}
}

func TestAdaptCooldownIsIdempotent(t *testing.T) {
	cfg := DefaultAdapterConfig()
	p := basePlan(25)

	first := Adapt(p, Trigger{DistractionType: signals.DistractionPhoneUse}, cfg, t0)
	if !first.Applied {
		t.Fatalf("first call should apply: %s", first.Reason)
	}

	snapshot := *p
	second := Adapt(p, Trigger{EventType: classifier.EventSustainedFocus}, cfg, t0.Add(119*time.Second))
	if second.Applied {
		t.Fatal("second call inside the 120s cooldown must be a no-op")
	}
	if p.RecommendedDurationMinutes != snapshot.RecommendedDurationMinutes ||
		len(p.Adaptations) != len(snapshot.Adaptations) {
		t.Fatalf("plan changed during cooldown: %+v", p)
	}

	third := Adapt(p, Trigger{EventType: classifier.EventSustainedFocus}, cfg, t0.Add(121*time.Second))
	if !third.Applied {
		t.Fatalf("call after cooldown should apply: %s", third.Reason)
	}
}

func TestAdaptNoMatchLeavesCooldownUntouched(t *testing.T) {
	cfg := DefaultAdapterConfig()
	p := basePlan(25)

	res := Adapt(p, Trigger{EventType: classifier.EventShallowEngagement}, cfg, t0)
	if res.Applied {
		t.Fatal("shallow engagement matches no adaptation rule")
	}
	if len(p.Adaptations) != 0 {
		t.Fatal("unmatched trigger must not append an adaptation")
	}

	// An unmatched call must not arm the cooldown either.
	next := Adapt(p, Trigger{DistractionType: signals.DistractionPhoneUse}, cfg, t0.Add(time.Second))
	if !next.Applied {
		t.Fatalf("cooldown should not be armed by unmatched triggers: %s", next.Reason)
	}
}

func TestTriggerLabel(t *testing.T) {
	if got := (Trigger{EventType: classifier.EventCognitiveOverload}).Label(); got != "cognitive_overload" {
		t.Fatalf("label = %q", got)
	}
	if got := (Trigger{DistractionType: signals.DistractionPhoneUse}).Label(); got != "phone_use" {
		t.Fatalf("label = %q", got)
	}
	// Insufficient evidence defers to the distraction type.
	tr := Trigger{EventType: classifier.EventInsufficient, DistractionType: signals.DistractionLookingAway}
	if got := tr.Label(); got != "looking_away" {
		t.Fatalf("label = %q", got)
	}
}
