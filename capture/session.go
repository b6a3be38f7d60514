// Package capture owns the OpenCV-backed decode side of sharpctl: opening
// videos, seeking and reading frames, sharpness scoring and image output.
// A capture handle is stateful and not safe for concurrent use, so the
// long-lived session guards its own handle with a lock and hands out
// independent per-worker readers for the parallel phases.
package capture

import (
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/NiklasVoigt/sharpctl/analysis"
)

// Session is one open video. It implements analysis.Source.
type Session struct {
	mu   sync.Mutex
	cap  *gocv.VideoCapture
	info analysis.VideoInfo
	log  *logrus.Logger
}

// Open opens a video file and reads its container metadata. The derived
// duration is 0 when fps or frame count are missing, which downstream
// treats as "unknown, unreliable metadata".
func Open(path string, log *logrus.Logger) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		_ = cap.Close()
		return nil, fmt.Errorf("open video %s: capture not opened", path)
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	frameCount := int(cap.Get(gocv.VideoCaptureFrameCount))
	info := analysis.VideoInfo{
		Path:       path,
		FPS:        fps,
		FrameCount: frameCount,
		Width:      int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(cap.Get(gocv.VideoCaptureFrameHeight)),
		Duration:   analysis.DeriveDuration(fps, frameCount),
	}

	log.WithFields(logrus.Fields{
		"path":     path,
		"fps":      fps,
		"frames":   frameCount,
		"duration": info.Duration,
	}).Debug("video opened")

	return &Session{cap: cap, info: info, log: log}, nil
}

// Close releases the shared handle and resets the metadata.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = analysis.VideoInfo{}
	if s.cap == nil {
		return nil
	}
	cap := s.cap
	s.cap = nil
	return cap.Close()
}

// Info returns the metadata computed at open time.
func (s *Session) Info() analysis.VideoInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// FrameAt decodes a single frame at the given time on the shared handle.
// Meant for ad hoc reads outside a parallel phase; the parallel phases use
// per-worker readers instead.
func (s *Session) FrameAt(tSec float64) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cap == nil {
		return nil, false
	}

	mat := gocv.NewMat()
	defer mat.Close()
	s.cap.Set(gocv.VideoCapturePosMsec, tSec*1000)
	if !s.cap.Read(&mat) || mat.Empty() {
		return nil, false
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, false
	}
	return img, true
}

// NewReader opens an independent decode handle against the same path.
// Each parallel worker owns one reader; handles are never shared or handed
// off between goroutines mid-operation.
func (s *Session) NewReader() (analysis.FrameReader, error) {
	s.mu.Lock()
	path := s.info.Path
	s.mu.Unlock()
	if path == "" {
		return nil, fmt.Errorf("session is closed")
	}

	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open decode handle for %s: %w", path, err)
	}
	return &reader{cap: cap}, nil
}

type reader struct {
	cap *gocv.VideoCapture
}

func (r *reader) ReadFrame(tSec float64) (analysis.Frame, bool) {
	mat := gocv.NewMat()
	r.cap.Set(gocv.VideoCapturePosMsec, tSec*1000)
	if !r.cap.Read(&mat) || mat.Empty() {
		mat.Close()
		return nil, false
	}
	return &frame{mat: mat}, true
}

func (r *reader) Close() {
	_ = r.cap.Close()
}
