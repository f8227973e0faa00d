package imaging

import (
	"image"
	"math"
)

// EdgeMask computes a binary edge map of a grayscale plane using Sobel
// gradient magnitude against a fixed threshold. It stands in for a full
// Canny pass; the logo heuristic only needs edge density and shape.
func EdgeMask(gray *image.Gray, threshold float64) *Mask {
	bounds := gray.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	mask := NewMask(w, h)
	if w < 3 || h < 3 {
		return mask
	}

	at := func(x, y int) float64 {
		return float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			if math.Sqrt(gx*gx+gy*gy) >= threshold {
				mask.Set(x, y)
			}
		}
	}
	return mask
}
