package analysis

import (
	"errors"
	"image"
	"math"
	"os"
)

// The fakes below stand in for the gocv-backed capture layer so the engine
// can be exercised with scripted scores and readability.

type fakeFrame struct {
	score   float64
	saveErr bool
}

func (f *fakeFrame) Score(Algorithm) float64 { return f.score }

func (f *fakeFrame) Thumbnail(height int) image.Image {
	return image.NewGray(image.Rect(0, 0, height*16/9, height))
}

func (f *fakeFrame) Save(path string) error {
	if f.saveErr {
		return errors.New("simulated write failure")
	}
	return os.WriteFile(path, []byte("frame"), 0644)
}

func (f *fakeFrame) Close() {}

// fakeSource scripts per-position scores keyed by rounded millisecond, which
// absorbs the float accumulation of the scan loops. Positions not covered by
// scores fall back to base; a nil base makes them unreadable.
type fakeSource struct {
	info       VideoInfo
	scores     map[int]float64
	unreadable map[int]bool
	saveErrs   map[int]bool
	base       func(t float64) float64
	openErr    error
}

func newFakeSource(duration float64) *fakeSource {
	return &fakeSource{
		info: VideoInfo{
			Path:       "test.mp4",
			Duration:   duration,
			FPS:        25,
			FrameCount: int(duration * 25),
			Width:      640,
			Height:     360,
		},
		scores:     map[int]float64{},
		unreadable: map[int]bool{},
		saveErrs:   map[int]bool{},
		base:       func(t float64) float64 { return t },
	}
}

func ms(t float64) int { return int(math.Round(t * 1000)) }

func (s *fakeSource) Info() VideoInfo { return s.info }

func (s *fakeSource) NewReader() (FrameReader, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &fakeReader{src: s}, nil
}

type fakeReader struct {
	src *fakeSource
}

func (r *fakeReader) ReadFrame(t float64) (Frame, bool) {
	key := ms(t)
	if r.src.unreadable[key] {
		return nil, false
	}
	score, ok := r.src.scores[key]
	if !ok {
		if r.src.base == nil {
			return nil, false
		}
		score = r.src.base(t)
	}
	return &fakeFrame{score: score, saveErr: r.src.saveErrs[key]}, true
}

func (r *fakeReader) Close() {}
