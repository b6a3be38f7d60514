package analysis

import (
	"image"
	"testing"
)

func flatThumb(value uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func gradientThumb() image.Image {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Pix[y*img.Stride+x] = uint8((x * 4) % 256)
		}
	}
	return img
}

func TestDedupeSelectionDropsIdenticalNeighbors(t *testing.T) {
	frames := []FrameData{
		{Time: 0, Sharpness: 10, Selected: true, Thumbnail: flatThumb(128)},
		{Time: 3, Sharpness: 11, Selected: true, Thumbnail: flatThumb(128)},
		{Time: 6, Sharpness: 12, Selected: true, Thumbnail: flatThumb(128)},
	}

	kept := DedupeSelection(frames, 0)
	if len(kept) != 1 {
		t.Fatalf("kept %d entries, expected 1", len(kept))
	}
	if kept[0].Time != 0 {
		t.Errorf("kept entry time = %g, expected the earliest entry", kept[0].Time)
	}
}

func TestDedupeSelectionKeepsDistinctFrames(t *testing.T) {
	frames := []FrameData{
		{Time: 0, Sharpness: 10, Selected: true, Thumbnail: flatThumb(128)},
		{Time: 3, Sharpness: 11, Selected: true, Thumbnail: gradientThumb()},
	}

	kept := DedupeSelection(frames, 0)
	if len(kept) != 2 {
		t.Fatalf("kept %d entries, expected 2", len(kept))
	}
}

func TestDedupeSelectionKeepsEntriesWithoutThumbnails(t *testing.T) {
	frames := []FrameData{
		{Time: 0, Sharpness: 10, Selected: true},
		{Time: 3, Sharpness: 11, Selected: true},
	}

	kept := DedupeSelection(frames, 10)
	if len(kept) != 2 {
		t.Fatalf("kept %d entries, expected 2", len(kept))
	}
}

func TestDedupeSelectionPreservesOrder(t *testing.T) {
	frames := []FrameData{
		{Time: 0, Thumbnail: flatThumb(0)},
		{Time: 3, Thumbnail: gradientThumb()},
		{Time: 6, Thumbnail: gradientThumb()},
		{Time: 9, Thumbnail: flatThumb(0)},
	}

	kept := DedupeSelection(frames, 0)
	for i := 1; i < len(kept); i++ {
		if kept[i].Time <= kept[i-1].Time {
			t.Fatalf("order not preserved: %g after %g", kept[i].Time, kept[i-1].Time)
		}
	}
	if len(kept) != 3 {
		t.Errorf("kept %d entries, expected 3 (one gradient duplicate dropped)", len(kept))
	}
}
