package analysis

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultThumbHeight is the pixel height of generated selection thumbnails.
const DefaultThumbHeight = 120

// Progress throttles: report every N completed units, plus the final one.
const (
	scanProgressEvery   = 10
	selectProgressEvery = 5
	exportProgressEvery = 5
)

// Analyzer runs the scan, selection and export phases against one Source.
//
// All three phases share the same cooperative cancellation flag. Reset clears
// it at the start of a new run; the phases themselves only poll it, so a
// cancel requested before a phase starts skips every unit of that phase.
type Analyzer struct {
	source      Source
	workers     int
	thumbHeight int
	cancel      cancelFlag
	log         *logrus.Logger
}

// NewAnalyzer creates an analyzer over an open source. workers <= 0 means one
// worker per CPU.
func NewAnalyzer(source Source, workers int, log *logrus.Logger) *Analyzer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{
		source:      source,
		workers:     workers,
		thumbHeight: DefaultThumbHeight,
		log:         log,
	}
}

// SetThumbHeight overrides the thumbnail height for subsequent runs.
func (a *Analyzer) SetThumbHeight(h int) {
	if h > 0 {
		a.thumbHeight = h
	}
}

// Cancel requests cooperative cancellation of the run in progress. Units
// already started run to completion; unstarted units are skipped.
func (a *Analyzer) Cancel() { a.cancel.cancel() }

// Reset clears the cancellation flag before a new run.
func (a *Analyzer) Reset() { a.cancel.reset() }

// Cancelled reports whether cancellation has been requested.
func (a *Analyzer) Cancelled() bool { return a.cancel.cancelled() }

// runUnits fans total units out over the worker pool. Units are handed out
// dynamically over a channel so expensive decodes balance across workers, and
// each worker owns an independent decode handle: the underlying capture is
// not safe to share or hand off between threads. A worker that cannot open
// its handle still drains units so its share fails soft instead of stalling
// the feed; unit receives a nil reader in that case.
//
// skip is an optional extra per-unit skip condition (the exporter's failure
// latch). Cancelled or skipped units do not count toward progress, matching
// the reported fraction to the work actually done.
func (a *Analyzer) runUnits(total, every int, status string, progress ProgressFunc, skip func() bool, unit func(r FrameReader, i int)) {
	if total <= 0 {
		return
	}
	workers := a.workers
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var completed atomic.Int64
	var progressMu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reader, err := a.source.NewReader()
			if err != nil {
				a.log.WithError(err).Warn("worker could not open decode handle")
				reader = nil
			} else {
				defer reader.Close()
			}
			for i := range jobs {
				if a.cancel.cancelled() || (skip != nil && skip()) {
					continue
				}
				unit(reader, i)
				done := completed.Add(1)
				if progress != nil && (done%int64(every) == 0 || done == int64(total)) {
					progressMu.Lock()
					progress(float64(done)/float64(total), status)
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// outcome maps the flag state at the end of a run to its tri-state result.
func (a *Analyzer) outcome() Outcome {
	if a.cancel.cancelled() {
		return Cancelled
	}
	return Completed
}

// FullScan walks the whole duration at params.SampleStepSec, scoring one
// frame per grid point in parallel, and returns the dense sharpness signal
// in grid order. Unreadable positions are dropped, not fatal. The sample
// callback fires once per emitted sample during the sequential collection
// pass, never from a worker.
func (a *Analyzer) FullScan(params Params, progress ProgressFunc, sample SampleFunc) ([]FrameData, Outcome) {
	info := a.source.Info()
	if info.Duration <= 0 {
		return nil, Failed
	}

	times := timeGrid(info.Duration, params.SampleStepSec)
	results := make([]FrameData, len(times))
	for i := range results {
		results[i].Sharpness = -1 // invalid until scored
	}

	runLog := a.log.WithFields(logrus.Fields{
		"run_id":    uuid.NewString(),
		"phase":     "scan",
		"samples":   len(times),
		"workers":   a.workers,
		"algorithm": params.Algorithm.String(),
	})
	runLog.Debug("starting full scan")

	a.runUnits(len(times), scanProgressEvery, "Analyzing video...", progress, nil, func(r FrameReader, i int) {
		if r == nil {
			return
		}
		t := times[i]
		frame, ok := r.ReadFrame(t)
		if !ok {
			return
		}
		results[i] = FrameData{Time: t, Sharpness: frame.Score(params.Algorithm)}
		frame.Close()
	})

	// Workers finish out of order, so the per-sample observer only runs in
	// this sequential pass over the slot array.
	samples := make([]FrameData, 0, len(results))
	for _, r := range results {
		if r.Sharpness >= 0 {
			samples = append(samples, r)
			if sample != nil {
				sample(r)
			}
		}
	}

	if progress != nil && !a.cancel.cancelled() {
		progress(1.0, "Analysis complete")
	}
	runLog.WithField("emitted", len(samples)).Debug("full scan finished")
	return samples, a.outcome()
}
