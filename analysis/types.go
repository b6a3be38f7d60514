package analysis

import (
	"fmt"
	"image"
)

// Algorithm selects the sharpness scoring method. The two algorithms are not
// on comparable scales: switching algorithms invalidates previously collected
// samples for direct comparison.
type Algorithm int

const (
	// FFT scores high-frequency energy density in the magnitude spectrum.
	FFT Algorithm = iota
	// Laplacian scores the variance of the Laplacian edge response.
	Laplacian
)

func (a Algorithm) String() string {
	if a == FFT {
		return "FFT"
	}
	return "Laplacian"
}

// AlgorithmFromTag maps a serialized algorithm tag to an Algorithm.
// Anything other than the literal "FFT" falls back to Laplacian.
func AlgorithmFromTag(tag string) Algorithm {
	if tag == "FFT" {
		return FFT
	}
	return Laplacian
}

// Params controls one analysis run. Read-only for the engine.
type Params struct {
	IntervalSec     float64   // spacing of the selection target grid
	SearchWindowSec float64   // half-width of the neighborhood search
	SearchStepSec   float64   // neighborhood scan resolution
	SampleStepSec   float64   // full-scan resolution
	Algorithm       Algorithm // scoring algorithm
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		IntervalSec:     3.0,
		SearchWindowSec: 0.5,
		SearchStepSec:   0.02,
		SampleStepSec:   0.1,
		Algorithm:       FFT,
	}
}

// Validate checks the parameter ranges before a run.
func (p Params) Validate() error {
	if p.IntervalSec <= 0 {
		return fmt.Errorf("interval must be positive, got %g", p.IntervalSec)
	}
	if p.SearchWindowSec < 0 {
		return fmt.Errorf("search window must not be negative, got %g", p.SearchWindowSec)
	}
	if p.SearchStepSec <= 0 {
		return fmt.Errorf("search step must be positive, got %g", p.SearchStepSec)
	}
	if p.SampleStepSec <= 0 {
		return fmt.Errorf("sample step must be positive, got %g", p.SampleStepSec)
	}
	return nil
}

// VideoInfo describes an open video. Immutable once computed at open time.
// Duration == 0 means the container metadata is unreliable.
type VideoInfo struct {
	Path       string
	Duration   float64 // seconds, 0 when unknown
	FPS        float64
	FrameCount int
	Width      int
	Height     int
}

// Valid reports whether the container metadata can be trusted.
func (v VideoInfo) Valid() bool {
	return v.FPS > 0 && v.FrameCount > 0
}

// DeriveDuration computes the duration in seconds from frame count and fps.
// Returns 0 for any non-positive input, the "unknown duration" state.
func DeriveDuration(fps float64, frameCount int) float64 {
	if fps > 0 && frameCount > 0 {
		return float64(frameCount) / fps
	}
	return 0
}

// FrameData is one scored position in the video. Sharpness < 0 is the
// internal invalid-sample sentinel and never appears in emitted collections.
// Thumbnail is only populated for optimizer results.
type FrameData struct {
	Time      float64
	Sharpness float64
	Selected  bool
	Thumbnail image.Image
}

// Outcome is the tri-state result of an engine run. Cancelled is not an
// error: the results accompanying it are a valid but incomplete subset.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// ProgressFunc receives throttled completion updates, fraction in [0,1].
type ProgressFunc func(fraction float64, status string)

// SampleFunc receives each valid sample during the sequential post-filter
// pass of a full scan. It is never invoked from a worker.
type SampleFunc func(sample FrameData)

// SearchFunc is a visualization hook for the windowed optimizer:
// window start, window end, current position, best time, best sharpness.
// An all-zero call signals "no active window".
type SearchFunc func(windowStart, windowEnd, current, bestTime, bestSharpness float64)

// Frame is one decoded frame, owned by the caller until Close.
type Frame interface {
	// Score computes the sharpness of the frame. Non-negative.
	Score(algo Algorithm) float64
	// Thumbnail scales the frame to a fixed height, preserving aspect ratio.
	Thumbnail(height int) image.Image
	// Save persists the frame as an image file.
	Save(path string) error
	Close()
}

// FrameReader is a seekable decode handle. Not safe for concurrent use:
// every worker owns its own reader for the duration of a parallel phase.
type FrameReader interface {
	// ReadFrame seeks to the given time and decodes one frame.
	// A false return means the position is unreadable, not a run error.
	ReadFrame(tSec float64) (Frame, bool)
	Close()
}

// Source is an open video that can hand out independent decode handles.
type Source interface {
	Info() VideoInfo
	NewReader() (FrameReader, error)
}
