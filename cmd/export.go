package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NiklasVoigt/sharpctl/analysis"
	"github.com/NiklasVoigt/sharpctl/state"
	"github.com/NiklasVoigt/sharpctl/types"
	"github.com/NiklasVoigt/sharpctl/ui"
	"github.com/NiklasVoigt/sharpctl/utils"
)

type ExportCmd struct {
	File    string `arg:"" name:"file" help:"Video file whose selection to export" type:"existingfile"`
	OutDir  string `help:"Output directory (default: <video name>_frames next to the video)"`
	Format  string `help:"Image format extension (jpg, png)"`
	Workers int    `help:"Number of parallel decode workers (0 = one per CPU)" default:"0"`
}

// defaultOutDir derives the export directory from the video path.
func defaultOutDir(videoPath string) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return base + "_frames"
}

// Run writes every frame of the saved selection to its own image file.
func (cmd *ExportCmd) Run(appCtx *types.AppContext) error {
	cfg := appConfig(appCtx)
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("sharpctl %s", appVersion(appCtx))))

	doc, err := state.Load(cmd.File)
	if err != nil {
		if errors.Is(err, state.ErrNoState) {
			return fmt.Errorf("no saved selection for %s, run 'sharpctl pick' first", cmd.File)
		}
		return err
	}
	if len(doc.Selected) == 0 {
		return fmt.Errorf("saved state for %s has no selected frames, run 'sharpctl pick' first", cmd.File)
	}

	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

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
	a.Reset()

	fmt.Println(ui.ProcessingStyle.Render(
		fmt.Sprintf("Exporting %d frames to %s as %s (%d workers)", len(doc.Selected), outDir, format, workers)))

	outcome := a.Export(doc.Selected, outDir, format, barProgress("Exporting frames..."))
	fmt.Println()

	switch outcome {
	case analysis.Failed:
		return fmt.Errorf("export to %s failed, directory contents are indeterminate, re-run the export", outDir)
	case analysis.Cancelled:
		fmt.Println(ui.WarnStyle.Render("⚠️  Export cancelled, partial output left in " + outDir))
		return nil
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %d frames exported to %s", len(doc.Selected), outDir)))
	return nil
}
