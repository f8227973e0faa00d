package engine

import (
	"context"
	"fmt"
	"image"

	"videomod/internal/pkg/facedet"
	"videomod/internal/pkg/imaging"

	"github.com/go-kratos/kratos/v2/log"
)

// Red bands covering hue wrap-around at 0/180 half-degrees.
var (
	redBandLow  = imaging.HSVBand{MinH: 0, MaxH: 10, MinS: 50, MaxS: 255, MinV: 50, MaxV: 255}
	redBandHigh = imaging.HSVBand{MinH: 170, MaxH: 179, MinS: 50, MaxS: 255, MinV: 50, MaxV: 255}
)

// violenceRegionFloor is the per-frame violence score above which a blur
// region is emitted.
const violenceRegionFloor = 0.5

// BlurRequirementExtractor finds regions a downstream redaction step
// should blur: faces (PII) and high-red violent content. It supplies
// evidence only and never moves the accept/reject verdict.
type BlurRequirementExtractor struct {
	faces facedet.Detector
	log   *log.Helper
}

// NewBlurRequirementExtractor creates a BlurRequirementExtractor.
func NewBlurRequirementExtractor(faces facedet.Detector, logger log.Logger) *BlurRequirementExtractor {
	return &BlurRequirementExtractor{faces: faces, log: log.NewHelper(logger)}
}

// Extract scans sampled frames for blur requirements. The config flags
// gate which scans run; they never influence the decision path.
func (e *BlurRequirementExtractor) Extract(ctx context.Context, src Source, cfg ModerationConfig) BlurSignal {
	if !cfg.BlurFaces && !cfg.BlurViolence {
		return BlurSignal{Regions: make([]BlurRegion, 0)}
	}

	frames, err := src.SampleFrames(ctx, logoSampleCount)
	if err != nil {
		e.log.Warnf("blur analysis failed: %v", err)
		return BlurSignal{Err: fmt.Sprintf("blur analysis failed: %v", err)}
	}

	regions := make([]BlurRegion, 0)
	for _, frame := range frames {
		if cfg.BlurFaces {
			if faces := e.faces.DetectFaces(frame.Image); len(faces) > 0 {
				regions = append(regions, BlurRegion{
					Timestamp: frame.Timestamp,
					Reason:    "personal identifiable information (faces)",
					Severity:  "medium",
					Faces:     faces,
				})
			}
		}
		if cfg.BlurViolence {
			if score := violenceScore(frame.Image); score > violenceRegionFloor {
				regions = append(regions, BlurRegion{
					Timestamp: frame.Timestamp,
					Reason:    "violent content",
					Severity:  "high",
					Score:     score,
				})
			}
		}
	}

	return BlurSignal{
		RequiresBlur: len(regions) > 0,
		Regions:      regions,
		TotalRegions: len(regions),
	}
}

// violenceScore is the red-band pixel fraction scaled by 5, capped at 1.
func violenceScore(img image.Image) float64 {
	mask := imaging.InRange(img, redBandLow, redBandHigh)
	return BoundScore(mask.Fraction() * 5).Float()
}
