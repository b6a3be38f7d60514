package capture

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/NiklasVoigt/sharpctl/analysis"
)

// Sharpness scores a frame with the given algorithm. Stateless and
// deterministic; color frames are converted to grayscale first, the
// algorithms never see chrominance. The two algorithms are not on
// comparable scales.
func Sharpness(mat gocv.Mat, algo analysis.Algorithm) float64 {
	gray := gocv.NewMat()
	defer gray.Close()
	if mat.Channels() == 3 {
		gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	} else {
		mat.CopyTo(&gray)
	}

	if algo == analysis.Laplacian {
		return laplacianVariance(gray)
	}
	return fftHighFreqEnergy(gray)
}

// laplacianVariance returns the variance of the Laplacian edge response.
// More edge energy means a sharper frame.
func laplacianVariance(gray gocv.Mat) float64 {
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(lap, &mean, &stddev)

	sd := stddev.GetDoubleAt(0, 0)
	return sd * sd
}

// fftHighFreqEnergy returns the high-frequency energy density of the
// magnitude spectrum: pad to DFT-friendly dimensions, transform, recenter
// the zero frequency, suppress a central disk of radius min(cx,cy)/3 and
// sum what remains, normalized by the original pixel count.
func fftHighFreqEnergy(gray gocv.Mat) float64 {
	rows := gray.Rows()
	cols := gray.Cols()
	if rows == 0 || cols == 0 {
		return 0
	}
	m := gocv.GetOptimalDFTSize(rows)
	n := gocv.GetOptimalDFTSize(cols)

	padded := gocv.NewMat()
	defer padded.Close()
	gocv.CopyMakeBorder(gray, &padded, 0, m-rows, 0, n-cols, gocv.BorderConstant, color.RGBA{})

	realPlane := gocv.NewMat()
	defer realPlane.Close()
	padded.ConvertTo(&realPlane, gocv.MatTypeCV32F)
	imagPlane := gocv.Zeros(m, n, gocv.MatTypeCV32F)
	defer imagPlane.Close()

	complexImg := gocv.NewMat()
	defer complexImg.Close()
	gocv.Merge([]gocv.Mat{realPlane, imagPlane}, &complexImg)

	freq := gocv.NewMat()
	defer freq.Close()
	gocv.DFT(complexImg, &freq, gocv.DftForward)

	planes := gocv.Split(freq)
	defer func() {
		for i := range planes {
			planes[i].Close()
		}
	}()
	mag := gocv.NewMat()
	defer mag.Close()
	gocv.Magnitude(planes[0], planes[1], &mag)

	cx := mag.Cols() / 2
	cy := mag.Rows() / 2
	shiftQuadrants(&mag, cx, cy)

	// Binary high-pass mask: ones everywhere, a filled zero disk over the
	// recentered low frequencies.
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 0, 0, 0), mag.Rows(), mag.Cols(), gocv.MatTypeCV32F)
	defer mask.Close()
	radius := min(cx, cy) / 3
	gocv.Circle(&mask, image.Pt(cx, cy), radius, color.RGBA{}, -1)

	high := gocv.NewMat()
	defer high.Close()
	gocv.Multiply(mag, mask, &high)

	return high.Sum().Val1 / float64(rows*cols)
}

// shiftQuadrants swaps the spectrum quadrants diagonally so the zero
// frequency component sits at the geometric center.
func shiftQuadrants(mag *gocv.Mat, cx, cy int) {
	q0 := mag.Region(image.Rect(0, 0, cx, cy))
	defer q0.Close()
	q1 := mag.Region(image.Rect(cx, 0, 2*cx, cy))
	defer q1.Close()
	q2 := mag.Region(image.Rect(0, cy, cx, 2*cy))
	defer q2.Close()
	q3 := mag.Region(image.Rect(cx, cy, 2*cx, 2*cy))
	defer q3.Close()

	tmp := gocv.NewMat()
	defer tmp.Close()

	q0.CopyTo(&tmp)
	q3.CopyTo(&q0)
	tmp.CopyTo(&q3)

	q1.CopyTo(&tmp)
	q2.CopyTo(&q1)
	tmp.CopyTo(&q2)
}
