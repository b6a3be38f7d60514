package analysis

import "math"

// gridEpsilon absorbs float accumulation error at grid and window boundaries.
const gridEpsilon = 1e-9

// timeGrid builds the fixed target grid t = 0, step, 2*step, ... t <= duration.
// The grid always contains floor(duration/step)+1 points.
func timeGrid(duration, step float64) []float64 {
	if duration <= 0 || step <= 0 {
		return nil
	}
	n := int(math.Floor(duration/step+gridEpsilon)) + 1
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * step
	}
	return times
}

// clampWindow bounds the search neighborhood of a target time to the video.
func clampWindow(target, window, duration float64) (start, end float64) {
	start = math.Max(0, target-window)
	end = math.Min(duration, target+window)
	return start, end
}
