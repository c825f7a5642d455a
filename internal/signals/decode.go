package signals

import (
	json "github.com/goccy/go-json"
)

// #region wire

// wireBehavioral uses pointers so absent fields can be told apart from
// zero values when filling defaults.
type wireBehavioral struct {
	FacePresent      *bool    `json:"face_present"`
	EyesOpen         *bool    `json:"eyes_open"`
	GazeStable       *bool    `json:"gaze_stable"`
	DistractionLevel *float64 `json:"distraction_level"`
	TimeOnContent    *float64 `json:"time_on_content"`
	InteractionCount *int     `json:"interaction_count"`
}

// #endregion wire

// #region decode

// Decode parses a behavioral-signal JSON payload, filling defaults for any
// missing field. Malformed input degrades to Defaults(); this path never
// fails, matching the classifier's tolerance for partial evidence.
func Decode(data []byte) Behavioral {
	var w wireBehavioral
	if err := json.Unmarshal(data, &w); err != nil {
		return Defaults()
	}
	return fill(w)
}

func fill(w wireBehavioral) Behavioral {
	b := Defaults()
	if w.FacePresent != nil {
		b.FacePresent = *w.FacePresent
	}
	if w.EyesOpen != nil {
		b.EyesOpen = *w.EyesOpen
	}
	if w.GazeStable != nil {
		b.GazeStable = *w.GazeStable
	}
	if w.DistractionLevel != nil {
		b.DistractionLevel = *w.DistractionLevel
	}
	if w.TimeOnContent != nil {
		b.TimeOnContent = *w.TimeOnContent
	}
	if w.InteractionCount != nil {
		b.InteractionCount = *w.InteractionCount
	}
	return b
}

// #endregion decode
