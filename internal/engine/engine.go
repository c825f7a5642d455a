// Package engine is the top-level coordinator: it smooths raw frames,
// classifies learning events, gates interventions, adapts focus plans, and
// records every automated action in the audit stream.
package engine

// #region imports
import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/officemates/antigravity/internal/audit"
	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/gate"
	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/signals"
	"github.com/officemates/antigravity/internal/smoother"
	"github.com/officemates/antigravity/internal/student"
)

// #endregion

// #region engine-struct

// detectAlternatives are the options rejected every time a stable distraction
// is logged.
var detectAlternatives = []string{
	"Ignore momentary flicker",
	"Wait for pattern",
	"Immediate intervention",
}

// Engine coordinates one analysis pipeline over shared per-user state.
// Safe for concurrent use; ticks for the same user serialize on a per-user
// lock so bookkeeping never interleaves.
type Engine struct {
	config   Config
	smoother *smoother.Smoother
	gate     *gate.Gate
	repo     student.Repository
	recorder audit.Recorder
	log      zerolog.Logger

	locks sync.Map // userID → *sync.Mutex
}

// New creates a fully wired engine.
func New(config Config, repo student.Repository, recorder audit.Recorder, log zerolog.Logger) *Engine {
	return &Engine{
		config:   config,
		smoother: smoother.New(config.Smoother),
		gate:     gate.New(config.Gate),
		repo:     repo,
		recorder: recorder,
		log:      log,
	}
}

func (e *Engine) userLock(userID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// loadOrCreate fetches the user's model, creating a fresh one on first sight.
func (e *Engine) loadOrCreate(ctx context.Context, userID string, now time.Time) (*student.Model, error) {
	m, ok, err := e.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if !ok {
		m = student.NewModel(userID, now)
	}
	return m, nil
}

// #endregion engine-struct

// #region analyze

// AnalyzeFrame processes one behavioral frame for the user and returns the
// tick's outcome. The model is loaded, mutated, and saved under the user's
// lock; the caller only ever sees the returned snapshot.
func (e *Engine) AnalyzeFrame(ctx context.Context, userID string, b signals.Behavioral, now time.Time) (Result, error) {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	m, err := e.loadOrCreate(ctx, userID, now)
	if err != nil {
		return Result{}, err
	}

	m.StatusHistory = e.smoother.Push(m.StatusHistory, signals.FrameFromBehavioral(b))
	stable := e.smoother.Evaluate(m.StatusHistory)

	// Evidence the classifier sees: raw signals with the smoothed view folded
	// in, and engagement defaults from the model when the frame carried none.
	evidence := b
	evidence.GazeStable = !stable.Distracted
	evidence.DistractionLevel = stable.Level
	if evidence.TimeOnContent == 0 {
		evidence.TimeOnContent = m.CurrentContentTime
	}
	m.CurrentContentTime = evidence.TimeOnContent
	if evidence.InteractionCount == signals.InteractionUnreported {
		evidence.InteractionCount = m.InteractionCount
	} else {
		m.InteractionCount = evidence.InteractionCount
	}

	event := classifier.Classify(evidence, m.Events, now)
	m.AppendEvent(event)
	if err := e.recorder.RecordEvent(ctx, userID, event); err != nil {
		return Result{}, fmt.Errorf("record event: %w", err)
	}

	result := Result{
		UserID:              userID,
		DistractionDetected: stable.Distracted,
		DistractionType:     stable.Type,
		DistractionLevel:    stable.Level,
		ShouldIntervene:     event.ShouldIntervene,
		LearningEvent:       event,
	}

	if stable.Distracted {
		if err := e.distractedTick(ctx, m, stable, event, now, &result); err != nil {
			return Result{}, err
		}
	} else {
		e.focusedTick(m, now)
	}
	m.LastDistractionStatus = stable.Distracted
	result.TeachingReady = readinessFrom(m.RecentEvents(readinessWindow)).ShouldTeach
	result.FocusPlan = m.CurrentPlan

	if err := e.repo.Save(ctx, m); err != nil {
		return Result{}, fmt.Errorf("save model: %w", err)
	}

	e.log.Debug().
		Str("user_id", userID).
		Bool("distracted", stable.Distracted).
		Str("event_type", string(event.EventType)).
		Bool("intervened", result.Intervention != "").
		Msg("analyzed frame")

	return result, nil
}

// distractedTick runs the intervention gate and, on logged ticks, the plan
// adapter. Mutates the model's bookkeeping in place.
func (e *Engine) distractedTick(ctx context.Context, m *student.Model, stable smoother.StableState, event classifier.LearningEvent, now time.Time, result *Result) error {
	m.DistractionCount++

	decision := e.gate.Evaluate(gate.TickInput{
		Distracted:        true,
		Type:              stable.Type,
		RawMessage:        stable.RawMessage,
		EventIntervention: event.InterventionType,
		DistractionCount:  m.DistractionCount,
	}, gate.Bookkeeping{
		LastStatus:           m.LastDistractionStatus,
		LastInterventionType: m.LastInterventionType,
		LastInterventionTime: m.LastInterventionTime,
		LastLogTime:          m.LastLogTime,
	}, now)

	if decision.Show {
		m.LastInterventionTime = now
		m.LastInterventionType = stable.Type
		result.Intervention = decision.Message
	}

	if !decision.ShouldLog {
		return nil
	}
	m.LastLogTime = now

	detect := audit.NewDecision(m.UserID, "detect_distraction",
		map[string]any{
			"distraction_type":  string(stable.Type),
			"distraction_level": stable.Level,
			"face_ratio":        stable.FaceRatio,
		},
		detectAlternatives,
		fmt.Sprintf("Detected stable %s: %.0f%% of recent frames distracted",
			stable.Type, stable.Level*100),
		now)
	if err := e.recorder.RecordDecision(ctx, detect); err != nil {
		return fmt.Errorf("record decision: %w", err)
	}

	if m.CurrentPlan == nil {
		p := plan.Generate(m.UserID, e.config.DefaultGoalMinutes, e.stats(m), now)
		m.CurrentPlan = &p
	}

	adapted := plan.Adapt(m.CurrentPlan, plan.Trigger{
		EventType:        event.EventType,
		DistractionType:  stable.Type,
		DistractionLevel: stable.Level,
		DistractionCount: m.DistractionCount,
	}, e.config.Adapter, now)
	if !adapted.Applied {
		return nil
	}
	result.PlanAdapted = true

	adapt := audit.NewDecision(m.UserID, adapted.Action,
		adapted.Adaptation, plan.Alternatives, adapted.Reason, now)
	if err := e.recorder.RecordDecision(ctx, adapt); err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// focusedTick credits focus time and applies the gate's logging verdict, which
// fires exactly on the distracted→focused transition and resets the log clock.
func (e *Engine) focusedTick(m *student.Model, now time.Time) {
	m.TotalFocusSeconds += e.config.FrameInterval.Seconds()

	decision := e.gate.Evaluate(gate.TickInput{}, gate.Bookkeeping{
		LastStatus:  m.LastDistractionStatus,
		LastLogTime: m.LastLogTime,
	}, now)
	if decision.ShouldLog {
		m.LastLogTime = now
	}
}

func (e *Engine) stats(m *student.Model) plan.GenerateStats {
	return plan.GenerateStats{
		PreferredWorkDuration: m.PreferredWorkDuration,
		DistractionsToday:     m.DistractionCount,
		SessionsCompleted:     m.SessionsCompleted,
	}
}

// #endregion analyze

// #region plan-ops

// GenerateFocusPlan builds a fresh plan for the user, replacing any prior one,
// and records the decision.
func (e *Engine) GenerateFocusPlan(ctx context.Context, userID string, goalMinutes int, now time.Time) (plan.FocusPlan, error) {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	m, err := e.loadOrCreate(ctx, userID, now)
	if err != nil {
		return plan.FocusPlan{}, err
	}

	p := plan.Generate(userID, goalMinutes, e.stats(m), now)
	m.CurrentPlan = &p

	d := audit.NewDecision(userID, "generate_focus_plan",
		map[string]any{
			"goal_minutes":       goalMinutes,
			"distraction_count":  m.DistractionCount,
			"sessions_completed": m.SessionsCompleted,
		},
		plan.GenerateAlternatives(goalMinutes), p.Rationale, now)
	if err := e.recorder.RecordDecision(ctx, d); err != nil {
		return plan.FocusPlan{}, fmt.Errorf("record decision: %w", err)
	}

	if err := e.repo.Save(ctx, m); err != nil {
		return plan.FocusPlan{}, fmt.Errorf("save model: %w", err)
	}

	e.log.Info().
		Str("user_id", userID).
		Int("recommended_minutes", p.RecommendedDurationMinutes).
		Msg("generated focus plan")

	return p, nil
}

// AdaptPlan applies the adaptation rules against an explicit trigger, seeding
// a default plan first when the user has none.
func (e *Engine) AdaptPlan(ctx context.Context, userID string, trigger plan.Trigger, now time.Time) (plan.AdaptResult, *plan.FocusPlan, error) {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	m, err := e.loadOrCreate(ctx, userID, now)
	if err != nil {
		return plan.AdaptResult{}, nil, err
	}

	if m.CurrentPlan == nil {
		p := plan.Generate(userID, e.config.DefaultGoalMinutes, e.stats(m), now)
		m.CurrentPlan = &p
	}

	res := plan.Adapt(m.CurrentPlan, trigger, e.config.Adapter, now)
	if res.Applied {
		d := audit.NewDecision(userID, res.Action, res.Adaptation, plan.Alternatives, res.Reason, now)
		if err := e.recorder.RecordDecision(ctx, d); err != nil {
			return plan.AdaptResult{}, nil, fmt.Errorf("record decision: %w", err)
		}
	}

	if err := e.repo.Save(ctx, m); err != nil {
		return plan.AdaptResult{}, nil, fmt.Errorf("save model: %w", err)
	}

	return res, m.CurrentPlan, nil
}

// #endregion plan-ops

// #region readiness

// readinessWindow is how many trailing events inform the teaching verdict.
const readinessWindow = 5

// ShouldTeach decides whether this is a good moment to push new material,
// based on the user's recent learning events.
func (e *Engine) ShouldTeach(ctx context.Context, userID string) (Readiness, error) {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	m, ok, err := e.repo.Load(ctx, userID)
	if err != nil {
		return Readiness{}, fmt.Errorf("load model: %w", err)
	}
	if !ok {
		return Readiness{Reason: "Insufficient behavioral evidence for teaching readiness"}, nil
	}

	return readinessFrom(m.RecentEvents(readinessWindow)), nil
}

// readinessFrom derives the teaching verdict from a trailing event window.
func readinessFrom(recent []classifier.LearningEvent) Readiness {
	distractions := 0
	overload := false
	sustained := false
	recovered := false
	for _, ev := range recent {
		switch {
		case ev.EventType == classifier.EventCognitiveOverload:
			overload = true
		case ev.EventType.IsDistraction():
			distractions++
		case ev.EventType == classifier.EventSustainedFocus:
			sustained = true
		case ev.EventType == classifier.EventRecovery:
			recovered = true
		}
	}

	switch {
	case overload:
		return Readiness{Reason: "Cognitive overload detected - simplify before teaching"}
	case distractions >= 2:
		return Readiness{Reason: "Multiple distractions detected - wait for attention recovery"}
	case sustained:
		return Readiness{ShouldTeach: true, Reason: "Student showing sustained focus - optimal teaching moment"}
	case recovered:
		return Readiness{ShouldTeach: true, Reason: "Student recovered attention - reinforce with teaching"}
	}
	return Readiness{Reason: "Insufficient behavioral evidence for teaching readiness"}
}

// #endregion readiness

// #region accessors

// StudentModel returns the user's current model snapshot, or (nil, false) for
// a user never observed.
func (e *Engine) StudentModel(ctx context.Context, userID string) (*student.Model, bool, error) {
	return e.repo.Load(ctx, userID)
}

// DecisionLogs returns the user's trailing decisions, oldest first.
func (e *Engine) DecisionLogs(ctx context.Context, userID string, limit int) ([]audit.Decision, error) {
	return e.recorder.Decisions(ctx, userID, limit)
}

// LearningEvents returns the user's trailing learning events, oldest first.
func (e *Engine) LearningEvents(ctx context.Context, userID string, limit int) ([]classifier.LearningEvent, error) {
	return e.recorder.Events(ctx, userID, limit)
}

// #endregion accessors
