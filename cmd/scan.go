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

type ScanCmd struct {
	File      string  `arg:"" name:"file" help:"Video file to analyze" type:"existingfile"`
	Step      float64 `help:"Sampling step in seconds" default:"0.1"`
	Algorithm string  `help:"Sharpness algorithm" default:"FFT" enum:"FFT,Laplacian"`
	Workers   int     `help:"Number of parallel decode workers (0 = one per CPU)" default:"0"`
}

// Run samples sharpness across the whole video and stores the dense signal
// in the sidecar, preserving any previously picked selection.
func (cmd *ScanCmd) Run(appCtx *types.AppContext) error {
	cfg := appConfig(appCtx)
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("sharpctl %s", appVersion(appCtx))))

	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

	info := sess.Info()
	if !info.Valid() {
		return fmt.Errorf("%s has unreliable metadata (no fps/frame count), cannot scan a bounded duration", cmd.File)
	}

	// Carry forward params and selection from a previous run of the other
	// commands; the scan only owns its own step and algorithm.
	params := analysis.DefaultParams()
	var selected []analysis.FrameData
	if doc, err := state.Load(cmd.File); err == nil {
		params = doc.Params
		selected = doc.Selected
	} else if !errors.Is(err, state.ErrNoState) {
		return err
	}
	params.SampleStepSec = cmd.Step
	params.Algorithm = analysis.AlgorithmFromTag(cmd.Algorithm)
	if err := params.Validate(); err != nil {
		return err
	}

	workers := utils.ResolveWorkers(cmd.Workers, cfg.Workers, cmd.File)
	a := analysis.NewAnalyzer(sess, workers, appLog(appCtx))
	a.SetThumbHeight(cfg.ThumbHeight)
	a.Reset()

	fmt.Println(ui.ProcessingStyle.Render(
		fmt.Sprintf("Scanning %.1fs of video every %.2fs with %d workers (%s)",
			info.Duration, cmd.Step, workers, params.Algorithm)))

	samples, outcome := a.FullScan(params, barProgress("Analyzing video..."), nil)
	fmt.Println()
	if outcome == analysis.Failed {
		return fmt.Errorf("scan failed for %s", cmd.File)
	}

	if err := state.Save(cmd.File, params, samples, selected); err != nil {
		return err
	}

	if outcome == analysis.Cancelled {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⚠️  Scan cancelled, %d samples saved", len(samples))))
		return nil
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %d samples saved to %s", len(samples), state.PathFor(cmd.File))))
	return nil
}
