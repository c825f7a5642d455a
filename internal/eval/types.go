package eval

// #region eval-config
// EvalConfig holds the bounds the harness validates after each plan change.
type EvalConfig struct {
	MinDuration      int // minutes; reject plans shrunk below this
	MaxDuration      int // minutes; reject plans extended above this
	MinBreakInterval int // minutes; shortest allowed break interval
	MaxHistoryLen    int // frames; status history must stay within the window
	MaxEvents        int // learning events retained per model
}

// DefaultEvalConfig returns the bounds the adaptation rules promise to honor.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MinDuration:      10,
		MaxDuration:      45,
		MinBreakInterval: 3,
		MaxHistoryLen:    10,
		MaxEvents:        100,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of post-adaptation validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
