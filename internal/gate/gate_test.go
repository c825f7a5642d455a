package gate

import (
	"testing"
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

var t0 = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func distractedTick() TickInput {
	return TickInput{
		Distracted: true,
		Type:       signals.DistractionLookingAway,
		RawMessage: true,
	}
}

func TestFocusedTickSuppresses(t *testing.T) {
	g := New(DefaultConfig())
	d := g.Evaluate(TickInput{Distracted: false}, Bookkeeping{}, t0)

	if d.Show || d.Message != "" {
		t.Fatalf("focused tick must not display: %+v", d)
	}
	if d.ShouldLog {
		t.Fatal("focused→focused must not log")
	}
}

func TestTransitionToFocusedLogs(t *testing.T) {
	g := New(DefaultConfig())
	d := g.Evaluate(TickInput{Distracted: false}, Bookkeeping{LastStatus: true}, t0)

	if d.Show {
		t.Fatal("focused tick must not display")
	}
	if !d.ShouldLog {
		t.Fatal("distracted→focused transition must log")
	}
}

func TestTransitionToDistractedShows(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           false,
		LastInterventionType: signals.DistractionLookingAway,
		LastInterventionTime: t0.Add(-time.Second), // cooldown would suppress
	}

	d := g.Evaluate(distractedTick(), book, t0)
	if !d.Show {
		t.Fatalf("transition must re-arm display regardless of cooldown: %+v", d)
	}
	if d.Message != MsgRefocus {
		t.Fatalf("message = %q, want refocus", d.Message)
	}
	if !d.ShouldLog {
		t.Fatal("status change must log")
	}
}

func TestRepeatWithinCooldownSuppresses(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           true,
		LastInterventionType: signals.DistractionLookingAway,
		LastInterventionTime: t0,
		LastLogTime:          t0,
	}

	d := g.Evaluate(distractedTick(), book, t0.Add(3*time.Second))
	if d.Show {
		t.Fatalf("same type within 8s must suppress: %+v", d)
	}
	if d.Message != "" {
		t.Fatalf("suppressed tick must carry no message, got %q", d.Message)
	}
	if d.ShouldLog {
		t.Fatal("persisting status under 20s must not log")
	}
}

func TestRepeatAfterCooldownShows(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           true,
		LastInterventionType: signals.DistractionLookingAway,
		LastInterventionTime: t0,
		LastLogTime:          t0,
	}

	d := g.Evaluate(distractedTick(), book, t0.Add(8*time.Second))
	if !d.Show {
		t.Fatalf("exactly 8s elapsed should re-arm display: %+v", d)
	}
}

func TestDifferentTypeBypassesCooldown(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           true,
		LastInterventionType: signals.DistractionPhoneUse,
		LastInterventionTime: t0,
	}

	in := distractedTick() // looking_away, differs from last shown
	d := g.Evaluate(in, book, t0.Add(time.Second))
	if !d.Show {
		t.Fatalf("new distraction type must bypass cooldown: %+v", d)
	}
}

func TestPersistingDistractionLogsEveryInterval(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           true,
		LastInterventionType: signals.DistractionLookingAway,
		LastInterventionTime: t0,
		LastLogTime:          t0,
	}

	d := g.Evaluate(distractedTick(), book, t0.Add(20*time.Second))
	if !d.ShouldLog {
		t.Fatal("same distracted status for 20s must log")
	}
}

func TestEscalationAfterRepeatedDistractions(t *testing.T) {
	g := New(DefaultConfig())
	in := TickInput{
		Distracted:       true,
		Type:             signals.DistractionLookingAway,
		RawMessage:       false, // no refocus message this tick
		DistractionCount: 6,
	}

	d := g.Evaluate(in, Bookkeeping{}, t0)
	if !d.Show || d.Message != MsgSuggestBreak {
		t.Fatalf("count > 5 with no other message should suggest a break: %+v", d)
	}
}

func TestEscalationDoesNotReplaceRefocus(t *testing.T) {
	g := New(DefaultConfig())
	in := distractedTick()
	in.DistractionCount = 6

	d := g.Evaluate(in, Bookkeeping{}, t0)
	if d.Message != MsgRefocus {
		t.Fatalf("escalation only fills in when nothing else was chosen, got %q", d.Message)
	}
}

func TestEventOverrideSuggestBreak(t *testing.T) {
	g := New(DefaultConfig())
	in := distractedTick()
	in.EventIntervention = classifier.InterventionSuggestBreak

	d := g.Evaluate(in, Bookkeeping{}, t0)
	if d.Message != MsgTired {
		t.Fatalf("suggest_break event should override message, got %q", d.Message)
	}
}

func TestEventOverrideSimplifyContent(t *testing.T) {
	g := New(DefaultConfig())
	in := distractedTick()
	in.EventIntervention = classifier.InterventionSimplifyContent

	d := g.Evaluate(in, Bookkeeping{}, t0)
	if d.Message != MsgSimplify {
		t.Fatalf("simplify_content event should override message, got %q", d.Message)
	}
}

func TestOverrideStillSubjectToCooldown(t *testing.T) {
	g := New(DefaultConfig())
	book := Bookkeeping{
		LastStatus:           true,
		LastInterventionType: signals.DistractionLookingAway,
		LastInterventionTime: t0,
	}
	in := distractedTick()
	in.EventIntervention = classifier.InterventionSuggestBreak

	d := g.Evaluate(in, book, t0.Add(2*time.Second))
	if d.Show {
		t.Fatalf("overrides do not punch through the cooldown: %+v", d)
	}
}

func TestAllowedButNoMessage(t *testing.T) {
	g := New(DefaultConfig())
	in := TickInput{
		Distracted:       true,
		Type:             signals.DistractionLookingAway,
		RawMessage:       false,
		DistractionCount: 1,
	}

	d := g.Evaluate(in, Bookkeeping{}, t0)
	if d.Show {
		t.Fatalf("nothing to say: display must stay quiet so the cooldown is not armed: %+v", d)
	}
}
