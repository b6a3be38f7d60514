// Package state persists analysis results next to the video they belong to,
// as a versioned JSON sidecar document. Thumbnails are never persisted; they
// are regenerated from the video after loading.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/NiklasVoigt/sharpctl/analysis"
)

// Version is the current document schema version. Documents with a version
// below 1 are rejected as if no state existed.
const Version = 1

// ErrNoState signals a missing, unreadable or version-incompatible sidecar.
// Callers treat it as "no prior state", never as a crash.
var ErrNoState = errors.New("no saved analysis state")

// Point is one persisted (time, sharpness) pair.
type Point struct {
	Time      float64 `json:"time"`
	Sharpness float64 `json:"sharpness"`
}

type paramsDoc struct {
	IntervalSec     float64 `json:"interval_sec"`
	SearchWindowSec float64 `json:"search_window_sec"`
	SearchStepSec   float64 `json:"search_step_sec"`
	SampleStepSec   float64 `json:"sample_step_sec"`
	Algorithm       string  `json:"algorithm"`
}

type document struct {
	Version        int       `json:"version"`
	Params         paramsDoc `json:"params"`
	Samples        []Point   `json:"samples"`
	SelectedFrames []Point   `json:"selected_frames"`
}

// Document is the in-memory form of a loaded sidecar.
type Document struct {
	Params   analysis.Params
	Samples  []analysis.FrameData
	Selected []analysis.FrameData
}

// PathFor returns the sidecar path for a video file.
func PathFor(videoPath string) string {
	return videoPath + ".sharpctl.json"
}

// Save writes params, the dense sample signal and the selected frames to the
// video's sidecar. Only entries flagged selected are persisted in
// selected_frames; samples carry no selection flag at all.
func Save(videoPath string, params analysis.Params, samples, selected []analysis.FrameData) error {
	doc := document{
		Version: Version,
		Params: paramsDoc{
			IntervalSec:     params.IntervalSec,
			SearchWindowSec: params.SearchWindowSec,
			SearchStepSec:   params.SearchStepSec,
			SampleStepSec:   params.SampleStepSec,
			Algorithm:       params.Algorithm.String(),
		},
		Samples:        make([]Point, 0, len(samples)),
		SelectedFrames: make([]Point, 0, len(selected)),
	}
	for _, s := range samples {
		doc.Samples = append(doc.Samples, Point{Time: s.Time, Sharpness: s.Sharpness})
	}
	for _, f := range selected {
		if f.Selected {
			doc.SelectedFrames = append(doc.SelectedFrames, Point{Time: f.Time, Sharpness: f.Sharpness})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	path := PathFor(videoPath)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state %s: %w", path, err)
	}
	return nil
}

// Load reads the sidecar for a video. Loaded selected frames are marked
// selected unconditionally, regardless of how they were flagged when saved;
// thumbnail regeneration is the caller's job (analysis.Analyzer.LoadThumbnails).
func Load(videoPath string) (*Document, error) {
	data, err := os.ReadFile(PathFor(videoPath))
	if err != nil {
		return nil, ErrNoState
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrNoState
	}
	if doc.Version < 1 {
		return nil, ErrNoState
	}

	out := &Document{
		Params: analysis.Params{
			IntervalSec:     doc.Params.IntervalSec,
			SearchWindowSec: doc.Params.SearchWindowSec,
			SearchStepSec:   doc.Params.SearchStepSec,
			SampleStepSec:   doc.Params.SampleStepSec,
			Algorithm:       analysis.AlgorithmFromTag(doc.Params.Algorithm),
		},
	}
	for _, p := range doc.Samples {
		out.Samples = append(out.Samples, analysis.FrameData{Time: p.Time, Sharpness: p.Sharpness})
	}
	for _, p := range doc.SelectedFrames {
		out.Selected = append(out.Selected, analysis.FrameData{Time: p.Time, Sharpness: p.Sharpness, Selected: true})
	}
	return out, nil
}
