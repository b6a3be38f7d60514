package capture

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"gocv.io/x/gocv"

	"github.com/NiklasVoigt/sharpctl/analysis"
)

// frame wraps one decoded Mat. It implements analysis.Frame and must be
// closed by whoever reads it.
type frame struct {
	mat gocv.Mat
}

func (f *frame) Score(algo analysis.Algorithm) float64 {
	return Sharpness(f.mat, algo)
}

// Thumbnail scales the frame to a fixed height, preserving the source
// aspect ratio.
func (f *frame) Thumbnail(height int) image.Image {
	rows := f.mat.Rows()
	if rows == 0 || height <= 0 {
		return nil
	}
	img, err := f.mat.ToImage()
	if err != nil {
		return nil
	}
	width := height * f.mat.Cols() / rows
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}

func (f *frame) Save(path string) error {
	if ok := gocv.IMWrite(path, f.mat); !ok {
		return fmt.Errorf("write image %s", path)
	}
	return nil
}

func (f *frame) Close() {
	f.mat.Close()
}
