package ui

// TUI message types fed to the run model from the analysis pipeline.

// StageStartedMsg announces a new pipeline stage (scan, select, export).
type StageStartedMsg struct {
	Name string
}

// ProgressMsg carries a throttled progress update from the engine.
type ProgressMsg struct {
	Fraction float64 // 0.0 to 1.0
	Status   string
}

// SampleMsg reports one emitted full-scan sample.
type SampleMsg struct {
	Time      float64
	Sharpness float64
}

// SearchMsg mirrors the optimizer's search visualization callback.
// The all-zero value means "no active window".
type SearchMsg struct {
	WindowStart   float64
	WindowEnd     float64
	Current       float64
	BestTime      float64
	BestSharpness float64
}

// DoneMsg ends the TUI when the pipeline finishes.
type DoneMsg struct {
	Outcome string
	Err     error
}
