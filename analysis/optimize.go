package analysis

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FindOptimalFrames walks the target grid t = 0, interval, 2*interval, ...
// and for each target independently scans the clamped neighborhood
// [max(0,t-window), min(duration,t+window)] at params.SearchStepSec,
// keeping the maximum-scoring position. The comparison is strict
// greater-than, so ties resolve to the earliest scanned time in the window.
//
// Cancellation is honored at target granularity: once a window scan starts
// it runs to completion, so no partially scored target is ever emitted.
// Targets whose window yields no readable frame produce no result.
func (a *Analyzer) FindOptimalFrames(params Params, progress ProgressFunc, search SearchFunc) ([]FrameData, Outcome) {
	info := a.source.Info()
	if info.Duration <= 0 {
		return nil, Failed
	}

	targets := timeGrid(info.Duration, params.IntervalSec)
	results := make([]FrameData, len(targets))
	for i := range results {
		results[i].Sharpness = -1
	}

	runLog := a.log.WithFields(logrus.Fields{
		"run_id":    uuid.NewString(),
		"phase":     "select",
		"targets":   len(targets),
		"workers":   a.workers,
		"algorithm": params.Algorithm.String(),
	})
	runLog.Debug("starting windowed optimization")

	// Workers scan windows concurrently; the visualization callback is
	// serialized so observers never see interleaved writes.
	var searchMu sync.Mutex

	a.runUnits(len(targets), selectProgressEvery, "Finding optimal frames...", progress, nil, func(r FrameReader, i int) {
		if r == nil {
			return
		}
		target := targets[i]
		start, end := clampWindow(target, params.SearchWindowSec, info.Duration)

		bestVar := -1.0
		bestTime := target
		var best Frame

		for ts := start; ts <= end+gridEpsilon; ts += params.SearchStepSec {
			frame, ok := r.ReadFrame(ts)
			if !ok {
				continue
			}
			v := frame.Score(params.Algorithm)
			if search != nil {
				searchMu.Lock()
				search(start, end, ts, bestTime, bestVar)
				searchMu.Unlock()
			}
			if v > bestVar {
				if best != nil {
					best.Close()
				}
				bestVar = v
				bestTime = ts
				best = frame
			} else {
				frame.Close()
			}
		}

		if best != nil {
			results[i] = FrameData{
				Time:      bestTime,
				Sharpness: bestVar,
				Selected:  true,
				Thumbnail: best.Thumbnail(a.thumbHeight),
			}
			best.Close()
		}
	})

	selected := make([]FrameData, 0, len(results))
	for _, r := range results {
		if r.Sharpness >= 0 {
			selected = append(selected, r)
		}
	}

	// No window is active anymore; clear the visualization state.
	if search != nil {
		search(0, 0, 0, 0, 0)
	}
	if progress != nil && !a.cancel.cancelled() {
		progress(1.0, "Selection complete")
	}
	runLog.WithField("selected", len(selected)).Debug("windowed optimization finished")
	return selected, a.outcome()
}

// LoadThumbnails regenerates thumbnails for a reloaded selection by
// re-seeking each entry, and marks every entry selected. Thumbnails are not
// persisted, so this runs after every state load.
func (a *Analyzer) LoadThumbnails(frames []FrameData) []FrameData {
	reader, err := a.source.NewReader()
	if err != nil {
		a.log.WithError(err).Warn("could not open decode handle for thumbnails")
		for i := range frames {
			frames[i].Selected = true
		}
		return frames
	}
	defer reader.Close()

	for i := range frames {
		frames[i].Selected = true
		if frame, ok := reader.ReadFrame(frames[i].Time); ok {
			frames[i].Thumbnail = frame.Thumbnail(a.thumbHeight)
			frame.Close()
		}
	}
	return frames
}
