package engine

import (
	"context"
	"fmt"

	"videomod/internal/pkg/imaging"

	"github.com/go-kratos/kratos/v2/log"
)

// Quality thresholds on the averaged metrics.
const (
	blurrySharpnessFloor = 100
	darkBrightnessFloor  = 50
	brightBrightnessCap  = 200
)

// TechnicalQualityExtractor rates focus sharpness (Laplacian variance)
// and exposure across up to 10 evenly spaced frames.
type TechnicalQualityExtractor struct {
	log *log.Helper
}

// NewTechnicalQualityExtractor creates a TechnicalQualityExtractor.
func NewTechnicalQualityExtractor(logger log.Logger) *TechnicalQualityExtractor {
	return &TechnicalQualityExtractor{log: log.NewHelper(logger)}
}

// Extract computes averaged sharpness and brightness metrics.
func (e *TechnicalQualityExtractor) Extract(ctx context.Context, src Source) QualitySignal {
	frames, err := src.SampleFrames(ctx, textSampleCount)
	if err != nil {
		e.log.Warnf("technical analysis failed: %v", err)
		return QualitySignal{Err: fmt.Sprintf("technical analysis failed: %v", err)}
	}

	sharpnessSum := 0.0
	brightnessSum := 0.0
	for _, frame := range frames {
		gray := imaging.Grayscale(frame.Image)
		sharpnessSum += imaging.LaplacianVariance(gray)
		brightnessSum += imaging.MeanBrightness(gray)
	}

	avgSharpness := 0.0
	avgBrightness := 0.0
	if len(frames) > 0 {
		avgSharpness = sharpnessSum / float64(len(frames))
		avgBrightness = brightnessSum / float64(len(frames))
	}

	return QualitySignal{
		SharpnessScore:  avgSharpness,
		BrightnessScore: avgBrightness,
		QualityRating:   rateQuality(avgSharpness),
		IsBlurry:        avgSharpness < blurrySharpnessFloor,
		IsTooDark:       avgBrightness < darkBrightnessFloor,
		IsTooBright:     avgBrightness > brightBrightnessCap,
	}
}

// rateQuality is a 4-band function of averaged sharpness.
func rateQuality(sharpness float64) string {
	switch {
	case sharpness < 50:
		return "poor"
	case sharpness < 150:
		return "fair"
	case sharpness < 300:
		return "good"
	default:
		return "excellent"
	}
}
