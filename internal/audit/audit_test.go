package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/signals"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestNewDecisionAssignsID(t *testing.T) {
	d := NewDecision("u1", "adapt_plan", nil, []string{"No change"}, "test", t0)
	if d.ID == "" {
		t.Fatal("decision must carry an id")
	}
	if d.UserID != "u1" || d.Action != "adapt_plan" {
		t.Fatalf("fields not carried: %+v", d)
	}
}

func TestMemoryRecorderRoundTrip(t *testing.T) {
	r := NewMemoryRecorder()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := NewDecision("u1", fmt.Sprintf("action-%d", i), nil, nil, "r", t0.Add(time.Duration(i)*time.Second))
		if err := r.RecordDecision(ctx, d); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := r.Decisions(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("decisions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("length = %d, want 2", len(got))
	}
	if got[0].Action != "action-1" || got[1].Action != "action-2" {
		t.Fatalf("want trailing two oldest-first, got %+v", got)
	}
}

func TestMemoryRecorderCapsPerUser(t *testing.T) {
	r := NewMemoryRecorder()
	ctx := context.Background()

	for i := 0; i < maxPerUser+50; i++ {
		_ = r.RecordDecision(ctx, NewDecision("u1", "a", nil, nil, "r", t0))
	}

	got, _ := r.Decisions(ctx, "u1", 0)
	if len(got) != maxPerUser {
		t.Fatalf("stream should cap at %d, got %d", maxPerUser, len(got))
	}
}

func TestMemoryRecorderIsolatesUsers(t *testing.T) {
	r := NewMemoryRecorder()
	ctx := context.Background()

	_ = r.RecordDecision(ctx, NewDecision("a", "x", nil, nil, "r", t0))

	got, _ := r.Decisions(ctx, "b", 10)
	if len(got) != 0 {
		t.Fatal("user streams must be independent")
	}
}

func newSQLiteRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorderDecisionRoundTrip(t *testing.T) {
	r := newSQLiteRecorder(t)
	ctx := context.Background()

	evidence := map[string]any{"distraction_type": "looking_away", "level": 0.8}
	d := NewDecision("u1", "detect_distraction", evidence,
		[]string{"Ignore momentary flicker", "Wait for pattern"},
		"Detected stable looking_away", t0)
	if err := r.RecordDecision(ctx, d); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := r.Decisions(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("decisions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("length = %d, want 1", len(got))
	}
	if got[0].ID != d.ID || got[0].Action != "detect_distraction" {
		t.Fatalf("identity not preserved: %+v", got[0])
	}
	if len(got[0].AlternativesConsidered) != 2 {
		t.Fatalf("alternatives = %v", got[0].AlternativesConsidered)
	}
	ev, ok := got[0].TriggeringEvidence.(map[string]any)
	if !ok {
		t.Fatalf("evidence type %T", got[0].TriggeringEvidence)
	}
	if ev["distraction_type"] != "looking_away" {
		t.Fatalf("evidence = %v", ev)
	}
	if !got[0].Timestamp.Equal(t0) {
		t.Fatalf("timestamp = %v, want %v", got[0].Timestamp, t0)
	}
}

func TestSQLiteRecorderDecisionOrdering(t *testing.T) {
	r := newSQLiteRecorder(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d := NewDecision("u1", fmt.Sprintf("action-%d", i), nil, nil, "r", t0.Add(time.Duration(i)*time.Second))
		if err := r.RecordDecision(ctx, d); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := r.Decisions(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("decisions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("length = %d, want 3", len(got))
	}
	if got[0].Action != "action-2" || got[2].Action != "action-4" {
		t.Fatalf("want trailing window oldest-first, got %+v", got)
	}
}

func TestSQLiteRecorderEventRoundTrip(t *testing.T) {
	r := newSQLiteRecorder(t)
	ctx := context.Background()

	ev := classifier.LearningEvent{
		Timestamp: t0,
		EventType: classifier.EventCognitiveOverload,
		Evidence: signals.Behavioral{
			FacePresent:   true,
			TimeOnContent: 180,
		},
		Confidence:       0.7,
		ShouldIntervene:  true,
		InterventionType: classifier.InterventionSimplifyContent,
	}
	if err := r.RecordEvent(ctx, "u1", ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := r.Events(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("length = %d, want 1", len(got))
	}
	if got[0].EventType != classifier.EventCognitiveOverload {
		t.Fatalf("event type = %q", got[0].EventType)
	}
	if !got[0].ShouldIntervene || got[0].InterventionType != classifier.InterventionSimplifyContent {
		t.Fatalf("intervention not preserved: %+v", got[0])
	}
	if got[0].Evidence.TimeOnContent != 180 {
		t.Fatalf("evidence = %+v", got[0].Evidence)
	}
	if got[0].Confidence != 0.7 {
		t.Fatalf("confidence = %v", got[0].Confidence)
	}
}

func TestSQLiteRecorderEmptyStreams(t *testing.T) {
	r := newSQLiteRecorder(t)
	ctx := context.Background()

	decisions, err := r.Decisions(ctx, "ghost", 10)
	if err != nil {
		t.Fatalf("decisions: %v", err)
	}
	if len(decisions) != 0 {
		t.Fatal("unknown user should have no decisions")
	}
	events, err := r.Events(ctx, "ghost", 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatal("unknown user should have no events")
	}
}
