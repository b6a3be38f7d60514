package analysis

import (
	"math"
	"testing"
)

func TestDeriveDuration(t *testing.T) {
	tests := []struct {
		name       string
		fps        float64
		frameCount int
		want       float64
	}{
		{"Valid metadata", 25, 250, 10},
		{"Fractional fps", 29.97, 2997, 100},
		{"Zero fps is unknown", 0, 250, 0},
		{"Zero frame count is unknown", 25, 0, 0},
		{"Negative fps is unknown", -1, 250, 0},
		{"Both zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveDuration(tt.fps, tt.frameCount)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DeriveDuration(%g, %d) = %g, expected %g", tt.fps, tt.frameCount, got, tt.want)
			}
		})
	}
}

func TestVideoInfoValid(t *testing.T) {
	valid := VideoInfo{FPS: 25, FrameCount: 100}
	if !valid.Valid() {
		t.Error("expected info with positive fps and frame count to be valid")
	}

	for _, info := range []VideoInfo{
		{FPS: 0, FrameCount: 100},
		{FPS: 25, FrameCount: 0},
		{},
	} {
		if info.Valid() {
			t.Errorf("expected %+v to be invalid", info)
		}
	}
}

func TestAlgorithmTags(t *testing.T) {
	if FFT.String() != "FFT" {
		t.Errorf("FFT tag = %q", FFT.String())
	}
	if Laplacian.String() != "Laplacian" {
		t.Errorf("Laplacian tag = %q", Laplacian.String())
	}

	// Anything that is not the literal "FFT" maps to Laplacian.
	tests := []struct {
		tag  string
		want Algorithm
	}{
		{"FFT", FFT},
		{"Laplacian", Laplacian},
		{"fft", Laplacian},
		{"", Laplacian},
		{"unknown", Laplacian},
	}
	for _, tt := range tests {
		if got := AlgorithmFromTag(tt.tag); got != tt.want {
			t.Errorf("AlgorithmFromTag(%q) = %v, expected %v", tt.tag, got, tt.want)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"Zero interval", func(p *Params) { p.IntervalSec = 0 }},
		{"Negative interval", func(p *Params) { p.IntervalSec = -1 }},
		{"Negative window", func(p *Params) { p.SearchWindowSec = -0.1 }},
		{"Zero search step", func(p *Params) { p.SearchStepSec = 0 }},
		{"Zero sample step", func(p *Params) { p.SampleStepSec = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	// A zero search window is legal: the scan collapses to the target itself.
	p := DefaultParams()
	p.SearchWindowSec = 0
	if err := p.Validate(); err != nil {
		t.Errorf("zero search window should validate, got %v", err)
	}
}
