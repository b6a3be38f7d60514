package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		index     int
		time      float64
		sharpness float64
		ext       string
		want      string
	}{
		{0, 0, 0, "jpg", "frame_0000_t0.000_var0.00.jpg"},
		{12, 36.5, 123.456, "png", "frame_0012_t36.500_var123.46.png"},
		{3, 1.25, 9.9, "jpg", "frame_0003_t1.250_var9.90.jpg"},
		// %.2f rounds half to even.
		{1, 4.0, 30.125, "jpg", "frame_0001_t4.000_var30.12.jpg"},
		{9999, 3599.999, 0.01, "jpg", "frame_9999_t3599.999_var0.01.jpg"},
	}

	for _, tt := range tests {
		if got := exportFilename(tt.index, tt.time, tt.sharpness, tt.ext); got != tt.want {
			t.Errorf("exportFilename(%d, %g, %g, %q) = %q, expected %q",
				tt.index, tt.time, tt.sharpness, tt.ext, got, tt.want)
		}
	}
}

func TestExportWritesSelectedEntriesOnly(t *testing.T) {
	src := newFakeSource(10)
	a := NewAnalyzer(src, 2, nil)
	dir := t.TempDir()

	frames := []FrameData{
		{Time: 1.0, Sharpness: 10.5, Selected: true},
		{Time: 2.0, Sharpness: 20.25, Selected: false},
		{Time: 4.0, Sharpness: 30.126, Selected: true},
		{Time: 8.0, Sharpness: 5.0, Selected: true},
	}

	outcome := a.Export(frames, dir, "jpg", nil)
	if outcome != Completed {
		t.Fatalf("outcome = %v", outcome)
	}

	// The ordinal counts the exported subsequence, not the input slice.
	want := []string{
		"frame_0000_t1.000_var10.50.jpg",
		"frame_0001_t4.000_var30.13.jpg",
		"frame_0002_t8.000_var5.00.jpg",
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading export dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) != len(want) {
		t.Fatalf("exported %d files, expected %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("file %d = %q, expected %q", i, names[i], want[i])
		}
	}
}

func TestExportLexicographicOrderIsChronological(t *testing.T) {
	src := newFakeSource(200)
	a := NewAnalyzer(src, 4, nil)
	dir := t.TempDir()

	var frames []FrameData
	for i := 0; i < 40; i++ {
		frames = append(frames, FrameData{Time: float64(i) * 5.1, Sharpness: float64(40 - i), Selected: true})
	}
	if outcome := a.Export(frames, dir, "jpg", nil); outcome != Completed {
		t.Fatalf("outcome = %v", outcome)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading export dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for i := range sorted {
		wantPrefix := exportFilename(i, frames[i].Time, frames[i].Sharpness, "jpg")
		if sorted[i] != wantPrefix {
			t.Errorf("sorted position %d = %q, expected %q", i, sorted[i], wantPrefix)
		}
	}
}

func TestExportWriteFailureFailsRun(t *testing.T) {
	src := newFakeSource(10)
	src.saveErrs[ms(4)] = true
	a := NewAnalyzer(src, 2, nil)
	dir := t.TempDir()

	frames := []FrameData{
		{Time: 1.0, Sharpness: 1, Selected: true},
		{Time: 4.0, Sharpness: 2, Selected: true},
		{Time: 8.0, Sharpness: 3, Selected: true},
	}
	if outcome := a.Export(frames, dir, "jpg", nil); outcome != Failed {
		t.Errorf("outcome = %v, expected Failed after a write error", outcome)
	}
}

func TestExportSkipsUnreadableTimestamps(t *testing.T) {
	src := newFakeSource(10)
	src.unreadable[ms(4)] = true
	a := NewAnalyzer(src, 2, nil)
	dir := t.TempDir()

	frames := []FrameData{
		{Time: 1.0, Sharpness: 1, Selected: true},
		{Time: 4.0, Sharpness: 2, Selected: true},
	}
	if outcome := a.Export(frames, dir, "jpg", nil); outcome != Completed {
		t.Errorf("outcome = %v, an unreadable seek is a soft failure", outcome)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("exported %d files, expected 1", len(entries))
	}
}

func TestExportCancelledBeforeRun(t *testing.T) {
	src := newFakeSource(10)
	a := NewAnalyzer(src, 2, nil)
	dir := t.TempDir()

	a.Cancel()
	outcome := a.Export([]FrameData{{Time: 1, Sharpness: 1, Selected: true}}, dir, "jpg", nil)
	if outcome != Cancelled {
		t.Errorf("outcome = %v, expected Cancelled", outcome)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cancelled export wrote %d files", len(entries))
	}
}

func TestExportFailsOnClosedSession(t *testing.T) {
	src := newFakeSource(10)
	src.info = VideoInfo{}
	src.openErr = errors.New("session is closed")
	a := NewAnalyzer(src, 2, nil)
	dir := t.TempDir()

	frames := []FrameData{{Time: 1, Sharpness: 1, Selected: true}}
	if outcome := a.Export(frames, dir, "jpg", nil); outcome != Failed {
		t.Errorf("outcome = %v, expected Failed on a closed session", outcome)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("closed-session export wrote %d files", len(entries))
	}
}

func TestExportCreatesDirectory(t *testing.T) {
	src := newFakeSource(10)
	a := NewAnalyzer(src, 1, nil)
	dir := filepath.Join(t.TempDir(), "nested", "frames")

	outcome := a.Export([]FrameData{{Time: 2, Sharpness: 7, Selected: true}}, dir, "png", nil)
	if outcome != Completed {
		t.Fatalf("outcome = %v", outcome)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_0000_t2.000_var7.00.png")); err != nil {
		t.Errorf("expected exported file in created directory: %v", err)
	}
}
