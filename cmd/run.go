package cmd

import (
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NiklasVoigt/sharpctl/analysis"
	"github.com/NiklasVoigt/sharpctl/state"
	"github.com/NiklasVoigt/sharpctl/types"
	"github.com/NiklasVoigt/sharpctl/ui"
	"github.com/NiklasVoigt/sharpctl/utils"
)

type RunCmd struct {
	File            string  `arg:"" name:"file" help:"Video file to process" type:"existingfile"`
	Step            float64 `help:"Full-scan sampling step in seconds" default:"0.1"`
	Interval        float64 `help:"Spacing of selection targets in seconds" default:"3.0"`
	Window          float64 `help:"Search half-width around each target in seconds" default:"0.5"`
	SearchStep      float64 `help:"Search resolution inside each window in seconds" default:"0.02"`
	Algorithm       string  `help:"Sharpness algorithm" default:"FFT" enum:"FFT,Laplacian"`
	DedupeThreshold int     `help:"Drop near-duplicate neighbors at or below this perceptual hash distance (-1 = keep all)" default:"-1"`
	Export          bool    `help:"Export the selection after picking"`
	OutDir          string  `help:"Export directory (default: <video name>_frames next to the video)"`
	Format          string  `help:"Export image format extension (jpg, png)"`
	Workers         int     `help:"Number of parallel decode workers (0 = one per CPU)" default:"0"`
	NoTUI           bool    `help:"Plain progress output instead of the interactive view"`
}

// runHooks routes engine callbacks to either the TUI or plain output.
type runHooks struct {
	stage    func(name string)
	progress analysis.ProgressFunc
	sample   analysis.SampleFunc
	search   analysis.SearchFunc
}

// pipeline runs scan, selection and optional export back to back against one
// analyzer. Sidecar state is saved after every stage that produced data, so a
// cancelled run still leaves its partial results on disk.
func (cmd *RunCmd) pipeline(a *analysis.Analyzer, params analysis.Params, outDir, format string, h runHooks) (analysis.Outcome, error) {
	h.stage("Scanning video")
	samples, outcome := a.FullScan(params, h.progress, h.sample)
	if outcome == analysis.Failed {
		return outcome, fmt.Errorf("scan failed for %s", cmd.File)
	}
	if err := state.Save(cmd.File, params, samples, nil); err != nil {
		return analysis.Failed, err
	}
	if outcome == analysis.Cancelled {
		return outcome, nil
	}

	h.stage("Selecting sharpest frames")
	selected, outcome := a.FindOptimalFrames(params, h.progress, h.search)
	if outcome == analysis.Failed {
		return outcome, fmt.Errorf("selection failed for %s", cmd.File)
	}
	if cmd.DedupeThreshold >= 0 {
		selected = analysis.DedupeSelection(selected, cmd.DedupeThreshold)
	}
	if err := state.Save(cmd.File, params, samples, selected); err != nil {
		return analysis.Failed, err
	}
	if outcome == analysis.Cancelled {
		return outcome, nil
	}

	if cmd.Export {
		h.stage("Exporting frames")
		outcome = a.Export(selected, outDir, format, h.progress)
		if outcome == analysis.Failed {
			return outcome, fmt.Errorf("export to %s failed, directory contents are indeterminate, re-run the export", outDir)
		}
	}
	return outcome, nil
}

// Run executes the full pipeline, interactively by default.
func (cmd *RunCmd) Run(appCtx *types.AppContext) error {
	cfg := appConfig(appCtx)

	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

	info := sess.Info()
	if !info.Valid() {
		return fmt.Errorf("%s has unreliable metadata (no fps/frame count), cannot analyze", cmd.File)
	}

	params := analysis.Params{
		IntervalSec:     cmd.Interval,
		SearchWindowSec: cmd.Window,
		SearchStepSec:   cmd.SearchStep,
		SampleStepSec:   cmd.Step,
		Algorithm:       analysis.AlgorithmFromTag(cmd.Algorithm),
	}
	if err := params.Validate(); err != nil {
		return err
	}

	outDir := cmd.OutDir
	if outDir == "" {
		outDir = defaultOutDir(cmd.File)
	}
	format := cmd.Format
	if format == "" {
		format = cfg.ImageFormat
	}

	workers := utils.ResolveWorkers(cmd.Workers, cfg.Workers, cmd.File)
	a := analysis.NewAnalyzer(sess, workers, appLog(appCtx))
	a.SetThumbHeight(cfg.ThumbHeight)
	a.Reset()

	if cmd.NoTUI {
		return cmd.runPlain(appCtx, a, params, outDir, format)
	}
	return cmd.runTUI(appCtx, a, params, outDir, format)
}

func (cmd *RunCmd) runTUI(appCtx *types.AppContext, a *analysis.Analyzer, params analysis.Params, outDir, format string) error {
	p := tea.NewProgram(ui.NewRunModel(appVersion(appCtx), a.Cancel))

	var outcome analysis.Outcome
	var runErr error
	go func() {
		outcome, runErr = cmd.pipeline(a, params, outDir, format, runHooks{
			stage: func(name string) {
				p.Send(ui.StageStartedMsg{Name: name})
			},
			progress: func(fraction float64, status string) {
				p.Send(ui.ProgressMsg{Fraction: fraction, Status: status})
			},
			sample: func(s analysis.FrameData) {
				p.Send(ui.SampleMsg{Time: s.Time, Sharpness: s.Sharpness})
			},
			search: func(windowStart, windowEnd, current, bestTime, bestSharpness float64) {
				p.Send(ui.SearchMsg{
					WindowStart:   windowStart,
					WindowEnd:     windowEnd,
					Current:       current,
					BestTime:      bestTime,
					BestSharpness: bestSharpness,
				})
			},
		})
		p.Send(ui.DoneMsg{Outcome: outcome.String(), Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("display error: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	if outcome == analysis.Cancelled {
		fmt.Println(ui.WarnStyle.Render("⚠️  Run cancelled, partial results saved to " + state.PathFor(cmd.File)))
		return nil
	}
	fmt.Println(ui.SuccessStyle.Render("✅ Run complete, results saved to " + state.PathFor(cmd.File)))
	return nil
}

func (cmd *RunCmd) runPlain(appCtx *types.AppContext, a *analysis.Analyzer, params analysis.Params, outDir, format string) error {
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("sharpctl %s", appVersion(appCtx))))

	// Ctrl+C requests cooperative cancellation instead of killing the
	// process; in-flight frames finish and partial state is saved.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		a.Cancel()
	}()

	var bar analysis.ProgressFunc
	outcome, err := cmd.pipeline(a, params, outDir, format, runHooks{
		stage: func(name string) {
			fmt.Println(ui.ProcessingStyle.Render(name))
			bar = barProgress(name)
		},
		progress: func(fraction float64, status string) {
			if bar != nil {
				bar(fraction, status)
			}
		},
	})
	fmt.Println()
	if err != nil {
		return err
	}
	if outcome == analysis.Cancelled {
		fmt.Println(ui.WarnStyle.Render("⚠️  Run cancelled, partial results saved to " + state.PathFor(cmd.File)))
		return nil
	}
	fmt.Println(ui.SuccessStyle.Render("✅ Run complete, results saved to " + state.PathFor(cmd.File)))
	return nil
}
