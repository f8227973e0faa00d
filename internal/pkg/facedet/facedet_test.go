package facedet

import (
	"image"
	"image/color"
	"testing"
)

func frameWithSkinSquare(w, h, x0, y0, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{0, 0, 255, 255} // blue background, far from the skin band
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}
	skin := color.RGBA{224, 172, 105, 255}
	for y := y0; y < y0+size && y < h; y++ {
		for x := x0; x < x0+size && x < w; x++ {
			img.Set(x, y, skin)
		}
	}
	return img
}

func TestHeuristic_DetectsCompactSkinRegion(t *testing.T) {
	d := NewHeuristic()
	img := frameWithSkinSquare(100, 100, 40, 40, 20)

	boxes := d.DetectFaces(img)
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 face box, got %d", len(boxes))
	}
	b := boxes[0]
	if b.X != 40 || b.Y != 40 || b.Width != 20 || b.Height != 20 {
		t.Errorf("Unexpected box: %+v", b)
	}
}

func TestHeuristic_IgnoresEmptyFrame(t *testing.T) {
	d := NewHeuristic()
	img := image.NewRGBA(image.Rect(0, 0, 50, 50)) // all black

	if boxes := d.DetectFaces(img); len(boxes) != 0 {
		t.Errorf("Expected no faces on a black frame, got %d", len(boxes))
	}
}

func TestHeuristic_IgnoresTinyRegions(t *testing.T) {
	d := NewHeuristic()
	// 2x2 skin blob in a 200x200 frame is below the size floor
	img := frameWithSkinSquare(200, 200, 10, 10, 2)

	if boxes := d.DetectFaces(img); len(boxes) != 0 {
		t.Errorf("Expected tiny region to be ignored, got %d boxes", len(boxes))
	}
}

func TestNoop(t *testing.T) {
	if boxes := (Noop{}).DetectFaces(image.NewRGBA(image.Rect(0, 0, 10, 10))); boxes != nil {
		t.Errorf("Noop must never detect faces, got %v", boxes)
	}
}
