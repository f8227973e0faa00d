package engine

import (
	"context"
	"fmt"
	"image"

	"videomod/internal/pkg/imaging"

	"github.com/go-kratos/kratos/v2/log"
)

// Skin-tone band in HSV (H in half-degrees, S/V in [0,255]).
var skinBand = imaging.HSVBand{MinH: 0, MaxH: 20, MinS: 20, MaxS: 255, MinV: 70, MaxV: 255}

// largeSkinRegionArea is the minimum connected-region size, in pixels,
// that counts as a "large" skin region.
const largeSkinRegionArea = 1000

// detectionEvidenceFloor is the per-frame score above which a detection
// is recorded as evidence.
const detectionEvidenceFloor = 0.3

// NudityExtractor scores frames on skin-tone area and large connected
// skin regions. The overall score is the worst observed frame: a single
// explicit frame is enough to flag a video.
type NudityExtractor struct {
	log *log.Helper
}

// NewNudityExtractor creates a NudityExtractor.
func NewNudityExtractor(logger log.Logger) *NudityExtractor {
	return &NudityExtractor{log: log.NewHelper(logger)}
}

// Extract analyzes sampled frames for nudity content.
func (e *NudityExtractor) Extract(ctx context.Context, src Source, cfg ModerationConfig) NuditySignal {
	frames, err := src.SampleFrames(ctx, visualSampleCount)
	if err != nil {
		e.log.Warnf("nudity analysis failed: %v", err)
		return NuditySignal{Err: fmt.Sprintf("nudity analysis failed: %v", err)}
	}

	signal := NuditySignal{
		Category:         "none",
		Detections:       make([]Detection, 0),
		FramesAnalyzed:   len(frames),
		SensitivityLevel: cfg.NuditySensitivity,
	}

	maxScore := 0.0
	for _, frame := range frames {
		score := skinContentScore(frame.Image)
		if score > detectionEvidenceFloor {
			signal.Detections = append(signal.Detections, Detection{
				Timestamp:   frame.Timestamp,
				Score:       score,
				FrameNumber: frame.Index,
			})
		}
		if score > maxScore {
			maxScore = score
		}
	}

	signal.Score = BoundScore(maxScore)
	signal.Category = categorizeNudity(signal.Score)
	return signal
}

// skinContentScore scores a single frame in [0, 1]: skin-pixel fraction
// scaled by 2, plus a bonus of 0.1 per large connected skin region capped
// at 0.3.
func skinContentScore(img image.Image) float64 {
	mask := imaging.InRange(img, skinBand)
	skinFraction := mask.Fraction()

	largeRegions := 0
	for _, r := range imaging.FindRegions(mask) {
		if r.Area > largeSkinRegionArea {
			largeRegions++
		}
	}

	base := skinFraction * 2
	if base > 1.0 {
		base = 1.0
	}
	bonus := float64(largeRegions) * 0.1
	if bonus > 0.3 {
		bonus = 0.3
	}
	return BoundScore(base + bonus).Float()
}

// categorizeNudity maps the overall score to a category by fixed cut points.
func categorizeNudity(score Score) string {
	switch {
	case score < 0.3:
		return "none"
	case score < 0.5:
		return "suggestive"
	case score < 0.7:
		return "partial"
	default:
		return "explicit"
	}
}
