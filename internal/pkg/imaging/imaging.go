// Package imaging holds the small pixel-level primitives the signal
// extractors are built from: HSV banding, binary masks, connected-region
// labeling, edge maps, and sharpness/brightness metrics. Everything works
// on stdlib image.Image values decoded from sampled frames.
package imaging

import "image"

// Mask is a binary per-pixel mask over a frame.
type Mask struct {
	W, H int
	Bits []bool
}

// NewMask creates an all-false mask of the given size.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// At reports whether the pixel at (x, y) is set.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.W+x]
}

// Set marks the pixel at (x, y).
func (m *Mask) Set(x, y int) {
	m.Bits[y*m.W+x] = true
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Fraction returns the set-pixel count divided by the total pixel count.
func (m *Mask) Fraction() float64 {
	if len(m.Bits) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Bits))
}

// Grayscale converts a frame to an 8-bit luma plane.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// MeanBrightness returns the average luma value of a grayscale plane,
// in [0, 255].
func MeanBrightness(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	total := 0.0
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += float64(gray.GrayAt(x, y).Y)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// LaplacianVariance computes the variance of the Laplacian-filtered
// grayscale plane. Sharp frames score high, defocused frames score low.
func LaplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	// 4-connected Laplacian kernel
	values := make([]float64, 0, (w-2)*(h-2))
	sum := 0.0
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			lap := float64(gray.GrayAt(x-1, y).Y) +
				float64(gray.GrayAt(x+1, y).Y) +
				float64(gray.GrayAt(x, y-1).Y) +
				float64(gray.GrayAt(x, y+1).Y) -
				4*center
			values = append(values, lap)
			sum += lap
		}
	}

	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}
