package replay

// #region imports
import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/officemates/antigravity/internal/engine"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: one user's
// recorded frame sequence with optional per-tick expectations.
type Fixture struct {
	Description string         `json:"description"`
	UserID      string         `json:"user_id"`
	Config      FixtureConfig  `json:"config"`
	Frames      []FixtureFrame `json:"frames"`
}

// FixtureConfig overrides engine tuning for a run. Zero values fall back to
// the engine defaults, so fixtures only state what they change.
type FixtureConfig struct {
	WindowSize                  int     `json:"window_size"`
	FaceRatioThreshold          float64 `json:"face_ratio_threshold"`
	InterventionCooldownSeconds float64 `json:"intervention_cooldown_seconds"`
	LogIntervalSeconds          float64 `json:"log_interval_seconds"`
	AdaptCooldownSeconds        float64 `json:"adapt_cooldown_seconds"`
	DefaultGoalMinutes          int     `json:"default_goal_minutes"`
}

// FixtureFrame is one recorded tick: an offset from the run's start, the raw
// signal payload as captured on the wire, and what the run should observe.
type FixtureFrame struct {
	AtSeconds float64         `json:"at_seconds"`
	Signals   json.RawMessage `json:"signals"`
	Expect    *FixtureExpect  `json:"expect,omitempty"`
}

// FixtureExpect captures the expected outcome for one tick. Only set fields
// are compared; Intervention compares exactly, including "".
type FixtureExpect struct {
	Distracted   *bool   `json:"distracted,omitempty"`
	EventType    *string `json:"event_type,omitempty"`
	Intervention *string `json:"intervention,omitempty"`
	PlanAdapted  *bool   `json:"plan_adapted,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.UserID == "" {
		f.UserID = "replay-user"
	}
	return &f, nil
}

// ToEngineConfig converts fixture overrides into a full engine configuration.
func (fc FixtureConfig) ToEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if fc.WindowSize > 0 {
		cfg.Smoother.WindowSize = fc.WindowSize
	}
	if fc.FaceRatioThreshold > 0 {
		cfg.Smoother.FaceRatioThreshold = fc.FaceRatioThreshold
	}
	if fc.InterventionCooldownSeconds > 0 {
		cfg.Gate.InterventionCooldown = time.Duration(fc.InterventionCooldownSeconds * float64(time.Second))
	}
	if fc.LogIntervalSeconds > 0 {
		cfg.Gate.LogInterval = time.Duration(fc.LogIntervalSeconds * float64(time.Second))
	}
	if fc.AdaptCooldownSeconds > 0 {
		cfg.Adapter.Cooldown = time.Duration(fc.AdaptCooldownSeconds * float64(time.Second))
	}
	if fc.DefaultGoalMinutes > 0 {
		cfg.DefaultGoalMinutes = fc.DefaultGoalMinutes
	}
	return cfg
}

// ToBehavioral decodes the frame's raw signal payload leniently.
func (ff FixtureFrame) ToBehavioral() signals.Behavioral {
	return signals.Decode(ff.Signals)
}

// #endregion fixture-loader
