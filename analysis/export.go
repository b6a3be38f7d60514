package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// exportFilename builds the artifact name for one exported frame. The
// zero-padded ordinal keeps lexicographic order chronological for up to
// 9999 entries; time and sharpness are embedded at fixed precision.
func exportFilename(index int, timeSec, sharpness float64, ext string) string {
	return fmt.Sprintf("frame_%04d_t%.3f_var%.2f.%s", index, timeSec, sharpness, ext)
}

// Export re-seeks and persists every selected entry to its own image file
// under dir. Frames are re-decoded rather than kept in memory from the
// optimizer, trading decode cost for not holding full-resolution frames for
// the whole selection set. A single write failure fails the run, but
// in-flight sibling units are allowed to finish.
func (a *Analyzer) Export(frames []FrameData, dir, ext string, progress ProgressFunc) Outcome {
	if a.source.Info().Path == "" {
		a.log.Error("export requires an open session")
		return Failed
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		a.log.WithError(err).Error("could not create export directory")
		return Failed
	}

	toExport := make([]FrameData, 0, len(frames))
	for _, fd := range frames {
		if fd.Selected {
			toExport = append(toExport, fd)
		}
	}

	runLog := a.log.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"phase":   "export",
		"frames":  len(toExport),
		"workers": a.workers,
		"dir":     dir,
	})
	runLog.Debug("starting export")

	var failed atomic.Bool
	a.runUnits(len(toExport), exportProgressEvery, "Exporting frames...", progress, failed.Load, func(r FrameReader, i int) {
		if r == nil {
			return
		}
		fd := toExport[i]
		frame, ok := r.ReadFrame(fd.Time)
		if !ok {
			return
		}
		path := filepath.Join(dir, exportFilename(i, fd.Time, fd.Sharpness, ext))
		if err := frame.Save(path); err != nil {
			runLog.WithError(err).WithField("path", path).Error("frame write failed")
			failed.Store(true)
		}
		frame.Close()
	})

	if failed.Load() {
		return Failed
	}
	if progress != nil && !a.cancel.cancelled() {
		progress(1.0, "Export complete")
	}
	runLog.Debug("export finished")
	return a.outcome()
}
