package hash

import (
	"image"
	"image/color"
	"testing"
)

// createGradientFrame creates a gradient test frame.
func createGradientFrame(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := uint8((x + y) * 255 / (width + height))
			img.Set(x, y, color.RGBA{gray, gray, gray, 255})
		}
	}
	return img
}

func TestComputeFrameHash(t *testing.T) {
	img := createGradientFrame(100, 100)

	h, err := ComputeFrameHash(img)
	if err != nil {
		t.Fatalf("ComputeFrameHash failed: %v", err)
	}

	if h.Hash == 0 {
		t.Error("Expected non-zero hash")
	}
	if h.Width != 100 || h.Height != 100 {
		t.Errorf("Expected 100x100, got %dx%d", h.Width, h.Height)
	}
}

func TestHammingDistance(t *testing.T) {
	if d := HammingDistance(0, 0); d != 0 {
		t.Errorf("Expected distance 0, got %d", d)
	}
	if d := HammingDistance(0, 1); d != 1 {
		t.Errorf("Expected distance 1, got %d", d)
	}
	if d := HammingDistance(0, ^uint64(0)); d != 64 {
		t.Errorf("Expected distance 64, got %d", d)
	}
}

func TestIsSimilar_SameFrame(t *testing.T) {
	img := createGradientFrame(100, 100)

	h1, err := ComputeFrameHash(img)
	if err != nil {
		t.Fatalf("ComputeFrameHash failed: %v", err)
	}
	h2, err := ComputeFrameHash(img)
	if err != nil {
		t.Fatalf("ComputeFrameHash failed: %v", err)
	}

	if !IsSimilar(h1, h2, 0) {
		t.Error("Expected identical frames to be similar at threshold 0")
	}
}
