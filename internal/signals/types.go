package signals

// #region distraction-type

// DistractionType labels what kind of distraction a frame or stable state shows.
type DistractionType string

const (
	DistractionNone        DistractionType = ""
	DistractionLookingAway DistractionType = "looking_away"
	DistractionPhoneUse    DistractionType = "phone_use"
)

// #endregion distraction-type

// #region behavioral

// InteractionUnreported marks a frame whose payload carried no
// interaction_count. An explicit 0 is load-bearing evidence (no interactions),
// so absence needs its own value; consumers substitute the student's last
// reported count.
const InteractionUnreported = -1

// Behavioral carries one tick's worth of raw behavioral signals from the
// external extractor. All fields are already normalized: booleans, a 0-1
// distraction level, and durations in seconds.
type Behavioral struct {
	FacePresent      bool    `json:"face_present"`
	EyesOpen         bool    `json:"eyes_open"`
	GazeStable       bool    `json:"gaze_stable"`
	DistractionLevel float64 `json:"distraction_level"`
	TimeOnContent    float64 `json:"time_on_content"`
	InteractionCount int     `json:"interaction_count"`
}

// Defaults returns the lenient baseline used when fields are absent:
// a present, attentive student with no interaction count reported yet.
// Missing evidence is never treated as evidence of distraction.
func Defaults() Behavioral {
	return Behavioral{
		FacePresent:      true,
		EyesOpen:         true,
		GazeStable:       true,
		InteractionCount: InteractionUnreported,
	}
}

// #endregion behavioral

// #region frame-state

// FrameState is the per-frame classification pushed into a student's
// status history. Ephemeral; only the trailing window is retained.
type FrameState struct {
	IsDistracted bool            `json:"is_distracted"`
	Type         DistractionType `json:"type,omitempty"`
	FacePresent  bool            `json:"face_present"`
}

// FrameFromBehavioral derives the raw single-frame state. Face absent is the
// only per-frame distraction cue; everything richer comes from smoothing.
func FrameFromBehavioral(b Behavioral) FrameState {
	fs := FrameState{FacePresent: b.FacePresent}
	if !b.FacePresent {
		fs.IsDistracted = true
		fs.Type = DistractionLookingAway
	}
	return fs
}

// #endregion frame-state
