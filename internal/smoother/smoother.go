// Package smoother turns flickery per-frame classifications into a stable
// focus/distraction state via majority voting over a short trailing window.
package smoother

import (
	"github.com/officemates/antigravity/internal/signals"
)

// #region config

// Config holds the smoothing window parameters.
type Config struct {
	WindowSize         int     // frames retained; oldest evicted beyond this
	FaceRatioThreshold float64 // face_ratio at or above this → focused
	RawMessageMinCount int     // distracted frames needed before a raw refocus message
}

// DefaultConfig matches the ~2 s window at the extractor's sampling cadence.
func DefaultConfig() Config {
	return Config{
		WindowSize:         10,
		FaceRatioThreshold: 0.6,
		RawMessageMinCount: 3,
	}
}

// #endregion config

// #region stable-state

// StableState is the majority-vote-smoothed classification for one tick.
type StableState struct {
	Distracted       bool
	Type             signals.DistractionType
	Level            float64 // 1 - face_ratio; higher when the face is absent more
	FaceRatio        float64
	DistractedFrames int
	RawMessage       bool // enough distracted frames to justify a refocus message
}

// #endregion stable-state

// #region smoother

// Smoother evaluates bounded frame histories. It holds no per-user state;
// the history lives on the student model and is passed through.
type Smoother struct {
	config Config
}

// New creates a smoother with the given configuration.
func New(config Config) *Smoother {
	return &Smoother{config: config}
}

// Push appends a frame to the history, evicting the oldest entry once the
// window is full, and returns the updated history.
func (s *Smoother) Push(history []signals.FrameState, frame signals.FrameState) []signals.FrameState {
	history = append(history, frame)
	if len(history) > s.config.WindowSize {
		history = history[len(history)-s.config.WindowSize:]
	}
	return history
}

// Evaluate computes the stable state from the current history. Valid once at
// least one frame has been observed; an empty history reads as focused.
func (s *Smoother) Evaluate(history []signals.FrameState) StableState {
	if len(history) == 0 {
		return StableState{FaceRatio: 1.0}
	}

	faceFrames := 0
	distractedFrames := 0
	for _, fs := range history {
		if fs.FacePresent {
			faceFrames++
		}
		if fs.IsDistracted {
			distractedFrames++
		}
	}

	faceRatio := float64(faceFrames) / float64(len(history))
	st := StableState{
		FaceRatio:        faceRatio,
		Level:            1.0 - faceRatio,
		DistractedFrames: distractedFrames,
	}

	if faceRatio >= s.config.FaceRatioThreshold {
		return st
	}

	st.Distracted = true
	st.Type = signals.DistractionLookingAway
	st.RawMessage = distractedFrames >= s.config.RawMessageMinCount
	return st
}

// #endregion smoother
