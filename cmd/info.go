package cmd

import (
	"errors"
	"fmt"

	"github.com/NiklasVoigt/sharpctl/state"
	"github.com/NiklasVoigt/sharpctl/types"
	"github.com/NiklasVoigt/sharpctl/ui"
)

type InfoCmd struct {
	File string `arg:"" name:"file" help:"Video file to inspect" type:"existingfile"`
}

// Run prints container metadata and a summary of any saved analysis state.
func (cmd *InfoCmd) Run(appCtx *types.AppContext) error {
	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

	info := sess.Info()
	fmt.Println(ui.HeaderStyle.Render(cmd.File))
	fmt.Printf("  Resolution:  %dx%d\n", info.Width, info.Height)
	fmt.Printf("  FPS:         %.3f\n", info.FPS)
	fmt.Printf("  Frames:      %d\n", info.FrameCount)
	if info.Valid() {
		fmt.Printf("  Duration:    %.3fs\n", info.Duration)
	} else {
		fmt.Println(ui.WarnStyle.Render("  Duration:    unknown (unreliable container metadata)"))
	}

	doc, err := state.Load(cmd.File)
	if err != nil {
		if errors.Is(err, state.ErrNoState) {
			fmt.Println(ui.InfoStyle.Render("  No saved analysis state"))
			return nil
		}
		return err
	}

	fmt.Println(ui.InfoStyle.Render("  Saved state: " + state.PathFor(cmd.File)))
	fmt.Printf("    Algorithm:   %s\n", doc.Params.Algorithm)
	fmt.Printf("    Sample step: %.3fs\n", doc.Params.SampleStepSec)
	fmt.Printf("    Interval:    %.3fs (±%.3fs window, %.3fs search step)\n",
		doc.Params.IntervalSec, doc.Params.SearchWindowSec, doc.Params.SearchStepSec)
	fmt.Printf("    Samples:     %d\n", len(doc.Samples))
	fmt.Printf("    Selected:    %d\n", len(doc.Selected))
	return nil
}
