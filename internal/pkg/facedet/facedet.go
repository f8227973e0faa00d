// Package facedet defines the face detection capability used by the blur
// requirement extractor. The contract is minimal: given a frame, return a
// set of axis-aligned bounding boxes. A production deployment would back
// this with a real detector; the default implementation is a skin-region
// geometry heuristic.
package facedet

import (
	"image"

	"videomod/internal/pkg/imaging"
)

// Box is an axis-aligned face bounding box in pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detector finds faces in a single frame.
type Detector interface {
	DetectFaces(img image.Image) []Box
}

// skin band shared with the nudity heuristic
var skinBand = imaging.HSVBand{MinH: 0, MaxH: 20, MinS: 20, MaxS: 255, MinV: 70, MaxV: 255}

// Heuristic detects face candidates as compact skin-toned regions with a
// roughly face-like aspect ratio and a minimum size relative to the frame.
type Heuristic struct {
	// MinAreaFraction is the minimum region area as a fraction of frame
	// pixels for a candidate to count as a face.
	MinAreaFraction float64
}

// NewHeuristic creates a Heuristic with the default minimum size.
func NewHeuristic() *Heuristic {
	return &Heuristic{MinAreaFraction: 0.005}
}

// DetectFaces implements Detector.
func (d *Heuristic) DetectFaces(img image.Image) []Box {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil
	}
	minArea := int(d.MinAreaFraction * float64(total))
	if minArea < 1 {
		minArea = 1
	}

	mask := imaging.InRange(img, skinBand)
	regions := imaging.FindRegions(mask)

	boxes := make([]Box, 0)
	for _, r := range regions {
		if r.Area < minArea {
			continue
		}
		ar := r.AspectRatio()
		if ar < 0.6 || ar > 1.4 {
			continue
		}
		// Compact regions only: diffuse skin areas (bodies, backgrounds)
		// fill their bounding box sparsely.
		fill := float64(r.Area) / float64(r.Bounds.Dx()*r.Bounds.Dy())
		if fill < 0.5 {
			continue
		}
		boxes = append(boxes, Box{
			X:      r.Bounds.Min.X,
			Y:      r.Bounds.Min.Y,
			Width:  r.Bounds.Dx(),
			Height: r.Bounds.Dy(),
		})
	}
	return boxes
}

// Noop is a Detector that never finds faces. Wired when face scanning is
// disabled by configuration.
type Noop struct{}

// DetectFaces implements Detector.
func (Noop) DetectFaces(image.Image) []Box { return nil }
