package config

// #region imports
import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/officemates/antigravity/internal/engine"
)

// #endregion

// #region tuning

// Tuning is the optional YAML override file for behavior thresholds. Zero
// values keep the engine defaults, so files only state what they change.
type Tuning struct {
	Smoother struct {
		WindowSize         int     `yaml:"window_size"`
		FaceRatioThreshold float64 `yaml:"face_ratio_threshold"`
		RawMessageMinCount int     `yaml:"raw_message_min_count"`
	} `yaml:"smoother"`
	Gate struct {
		InterventionCooldownSeconds float64 `yaml:"intervention_cooldown_seconds"`
		LogIntervalSeconds          float64 `yaml:"log_interval_seconds"`
		EscalationCount             int     `yaml:"escalation_count"`
	} `yaml:"gate"`
	Adapter struct {
		CooldownSeconds float64 `yaml:"cooldown_seconds"`
		PhoneShrink     int     `yaml:"phone_shrink"`
		PhoneFloor      int     `yaml:"phone_floor"`
		LookAwayShrink  int     `yaml:"look_away_shrink"`
		LookAwayFloor   int     `yaml:"look_away_floor"`
		ExtendStep      int     `yaml:"extend_step"`
		ExtendCap       int     `yaml:"extend_cap"`
	} `yaml:"adapter"`
	Engine struct {
		DefaultGoalMinutes   int     `yaml:"default_goal_minutes"`
		FrameIntervalSeconds float64 `yaml:"frame_interval_seconds"`
	} `yaml:"engine"`
}

// LoadTuning reads the tuning file and applies it over the engine defaults.
// An empty path returns the defaults unchanged.
func LoadTuning(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning %s: %w", path, err)
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return cfg, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	t.apply(&cfg)
	return cfg, nil
}

func (t Tuning) apply(cfg *engine.Config) {
	if t.Smoother.WindowSize > 0 {
		cfg.Smoother.WindowSize = t.Smoother.WindowSize
	}
	if t.Smoother.FaceRatioThreshold > 0 {
		cfg.Smoother.FaceRatioThreshold = t.Smoother.FaceRatioThreshold
	}
	if t.Smoother.RawMessageMinCount > 0 {
		cfg.Smoother.RawMessageMinCount = t.Smoother.RawMessageMinCount
	}

	if t.Gate.InterventionCooldownSeconds > 0 {
		cfg.Gate.InterventionCooldown = seconds(t.Gate.InterventionCooldownSeconds)
	}
	if t.Gate.LogIntervalSeconds > 0 {
		cfg.Gate.LogInterval = seconds(t.Gate.LogIntervalSeconds)
	}
	if t.Gate.EscalationCount > 0 {
		cfg.Gate.EscalationCount = t.Gate.EscalationCount
	}

	if t.Adapter.CooldownSeconds > 0 {
		cfg.Adapter.Cooldown = seconds(t.Adapter.CooldownSeconds)
	}
	if t.Adapter.PhoneShrink > 0 {
		cfg.Adapter.PhoneShrink = t.Adapter.PhoneShrink
	}
	if t.Adapter.PhoneFloor > 0 {
		cfg.Adapter.PhoneFloor = t.Adapter.PhoneFloor
	}
	if t.Adapter.LookAwayShrink > 0 {
		cfg.Adapter.LookAwayShrink = t.Adapter.LookAwayShrink
	}
	if t.Adapter.LookAwayFloor > 0 {
		cfg.Adapter.LookAwayFloor = t.Adapter.LookAwayFloor
	}
	if t.Adapter.ExtendStep > 0 {
		cfg.Adapter.ExtendStep = t.Adapter.ExtendStep
	}
	if t.Adapter.ExtendCap > 0 {
		cfg.Adapter.ExtendCap = t.Adapter.ExtendCap
	}

	if t.Engine.DefaultGoalMinutes > 0 {
		cfg.DefaultGoalMinutes = t.Engine.DefaultGoalMinutes
	}
	if t.Engine.FrameIntervalSeconds > 0 {
		cfg.FrameInterval = seconds(t.Engine.FrameIntervalSeconds)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// #endregion tuning
