package cmd

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/NiklasVoigt/sharpctl/types"
	"github.com/NiklasVoigt/sharpctl/ui"
)

type GrabCmd struct {
	File   string  `arg:"" name:"file" help:"Video file to grab from" type:"existingfile"`
	Time   float64 `help:"Position in seconds" required:""`
	Output string  `short:"o" help:"Output image path (default: <video name>_t<time>.<format>)"`
}

// Run decodes a single frame at the requested position and writes it out.
// This goes through the session's shared decode handle, not the parallel
// engine: one seek does not warrant worker setup.
func (cmd *GrabCmd) Run(appCtx *types.AppContext) error {
	cfg := appConfig(appCtx)

	if cmd.Time < 0 {
		return fmt.Errorf("time must not be negative, got %g", cmd.Time)
	}

	sess, err := openSession(appCtx, cmd.File)
	if err != nil {
		return err
	}
	defer sess.Close()

	info := sess.Info()
	if info.Duration > 0 && cmd.Time > info.Duration {
		return fmt.Errorf("time %.3fs is past the end of the video (%.3fs)", cmd.Time, info.Duration)
	}

	img, ok := sess.FrameAt(cmd.Time)
	if !ok {
		return fmt.Errorf("no decodable frame at %.3fs in %s", cmd.Time, cmd.File)
	}

	out := cmd.Output
	if out == "" {
		base := strings.TrimSuffix(cmd.File, filepath.Ext(cmd.File))
		out = fmt.Sprintf("%s_t%.3f.%s", base, cmd.Time, cfg.ImageFormat)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", out, err)
	}
	defer f.Close()

	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(out), ".")) {
	case "png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	}
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", out, err)
	}

	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Frame at %.3fs saved to %s", cmd.Time, out)))
	return nil
}
