package imaging

import "image"

// HSV holds a pixel in hue-saturation-value form using the ranges common
// in computer vision tooling: H in [0, 180), S and V in [0, 255].
type HSV struct {
	H, S, V uint8
}

// HSVBand is an inclusive range in HSV space.
type HSVBand struct {
	MinH, MaxH uint8
	MinS, MaxS uint8
	MinV, MaxV uint8
}

// Contains reports whether p falls inside the band.
func (b HSVBand) Contains(p HSV) bool {
	return p.H >= b.MinH && p.H <= b.MaxH &&
		p.S >= b.MinS && p.S <= b.MaxS &&
		p.V >= b.MinV && p.V <= b.MaxV
}

// RGBToHSV converts 8-bit RGB to HSV with H in [0, 180).
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := rf
	if gf > maxC {
		maxC = gf
	}
	if bf > maxC {
		maxC = bf
	}
	minC := rf
	if gf < minC {
		minC = gf
	}
	if bf < minC {
		minC = bf
	}
	delta := maxC - minC

	v := maxC
	var s float64
	if maxC > 0 {
		s = delta / maxC
	}

	var h float64
	if delta > 0 {
		switch maxC {
		case rf:
			h = 60 * (gf - bf) / delta
		case gf:
			h = 120 + 60*(bf-rf)/delta
		default:
			h = 240 + 60*(rf-gf)/delta
		}
		if h < 0 {
			h += 360
		}
	}

	return HSV{
		H: uint8(h / 2), // 0..179
		S: uint8(s*255 + 0.5),
		V: uint8(v*255 + 0.5),
	}
}

// InRange builds a binary mask of pixels falling inside any of the given
// HSV bands. Multiple bands cover hue wrap-around (e.g. red at 0 and 180).
func InRange(img image.Image, bands ...HSVBand) *Mask {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	mask := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p := RGBToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			for _, band := range bands {
				if band.Contains(p) {
					mask.Set(x, y)
					break
				}
			}
		}
	}
	return mask
}
