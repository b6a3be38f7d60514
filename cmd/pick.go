package cmd

import (
	"errors"
	"fmt"

	"github.com/NiklasVoigt/sharpctl/analysis"
	"github.com/NiklasVoigt/sharpctl/state"
	"github.com/NiklasVoigt/sharpctl/types"
	"github.com/NiklasVoigt/sharpctl/ui"
	"github.com/NiklasVoigt/sharpctl/utils"
)

type PickCmd struct {
	File            string  `arg:"" name:"file" help:"Video file to analyze" type:"existingfile"`
	Interval        float64 `help:"Spacing of selection targets in seconds" default:"3.0"`
	Window          float64 `help:"Search half-width around each target in seconds" default:"0.5"`
	Step            float64 `help:"Search resolution inside each window in seconds" default:"0.02"`
	Algorithm       string  `help:"Sharpness algorithm" default:"FFT" enum:"FFT,Laplacian"`
	DedupeThreshold int     `help:"Drop near-duplicate neighbors at or below this perceptual hash distance (-1 = keep all)" default:"-1"`
	Workers         int     `help:"Number of parallel decode workers (0 = one per CPU)" default:"0"`
}

// Run picks the sharpest frame near every interval target and stores the
// selection in the sidecar, keeping any previously scanned samples.
func (cmd *PickCmd) Run(appCtx *types.AppContext) error {
	cfg := appConfig(appCtx)
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("sharpctl %s", appVersion(appCtx))))

	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

	info := sess.Info()
	if !info.Valid() {
		return fmt.Errorf("%s has unreliable metadata (no fps/frame count), cannot place selection targets", cmd.File)
	}

	params := analysis.DefaultParams()
	var samples []analysis.FrameData
	if doc, err := state.Load(cmd.File); err == nil {
		params = doc.Params
		samples = doc.Samples
	} else if !errors.Is(err, state.ErrNoState) {
		return err
	}
	params.IntervalSec = cmd.Interval
	params.SearchWindowSec = cmd.Window
	params.SearchStepSec = cmd.Step
	params.Algorithm = analysis.AlgorithmFromTag(cmd.Algorithm)
	if err := params.Validate(); err != nil {
		return err
	}

	workers := utils.ResolveWorkers(cmd.Workers, cfg.Workers, cmd.File)
	a := analysis.NewAnalyzer(sess, workers, appLog(appCtx))
	a.SetThumbHeight(cfg.ThumbHeight)
	a.Reset()

	fmt.Println(ui.ProcessingStyle.Render(
		fmt.Sprintf("Picking sharpest frames every %.1fs (±%.2fs window, %d workers, %s)",
			cmd.Interval, cmd.Window, workers, params.Algorithm)))

	selected, outcome := a.FindOptimalFrames(params, barProgress("Finding optimal frames..."), nil)
	fmt.Println()
	if outcome == analysis.Failed {
		return fmt.Errorf("selection failed for %s", cmd.File)
	}

	if cmd.DedupeThreshold >= 0 {
		before := len(selected)
		selected = analysis.DedupeSelection(selected, cmd.DedupeThreshold)
		if dropped := before - len(selected); dropped > 0 {
			fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Dropped %d near-duplicate frames (distance ≤ %d)", dropped, cmd.DedupeThreshold)))
		}
	}

	if err := state.Save(cmd.File, params, samples, selected); err != nil {
		return err
	}

	for i, fd := range selected {
		fmt.Printf("  %3d. t=%8.3fs  sharpness=%10.2f\n", i+1, fd.Time, fd.Sharpness)
	}

	if outcome == analysis.Cancelled {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⚠️  Selection cancelled, %d frames saved", len(selected))))
		return nil
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %d frames selected, saved to %s", len(selected), state.PathFor(cmd.File))))
	return nil
}
