package engine

import (
	"time"

	"videomod/internal/pkg/facedet"
)

// Detection is a timestamped per-frame finding used as signal evidence.
type Detection struct {
	Timestamp   float64 `json:"timestamp"`
	Score       float64 `json:"score"`
	FrameNumber int     `json:"frame_number"`
}

// NuditySignal is the nudity extractor output.
type NuditySignal struct {
	Score            Score       `json:"overall_score"`
	Category         string      `json:"category"`
	Detections       []Detection `json:"detections"`
	FramesAnalyzed   int         `json:"frames_analyzed"`
	SensitivityLevel Sensitivity `json:"sensitivity_level"`
	Err              string      `json:"error,omitempty"`
}

// Failed reports whether the extractor failed; a failed signal carries no
// score and contributes nothing to the verdict.
func (s NuditySignal) Failed() bool { return s.Err != "" }

// AudioAnalysis is the music-likeness sub-result of the copyright signal.
type AudioAnalysis struct {
	Score    Score   `json:"score"`
	Duration float64 `json:"duration,omitempty"`
	HasMusic bool    `json:"has_music"`
	Reason   string  `json:"reason,omitempty"`
}

// VisualAnalysis is the logo/watermark sub-result of the copyright signal.
type VisualAnalysis struct {
	Score          Score `json:"score"`
	LogoDetections int   `json:"logo_detections"`
	FramesAnalyzed int   `json:"frames_analyzed"`
}

// KnownMatch records a sampled frame whose perceptual hash matched the
// known-content index. Evidence only; it never moves the score.
type KnownMatch struct {
	Timestamp float64 `json:"timestamp"`
	Label     string  `json:"label"`
	Distance  int     `json:"distance"`
}

// CopyrightSignal is the copyright extractor output. The overall score is
// the maximum of the audio and visual sub-scores.
type CopyrightSignal struct {
	Score            Score          `json:"overall_score"`
	Audio            AudioAnalysis  `json:"audio_analysis"`
	Visual           VisualAnalysis `json:"visual_analysis"`
	PotentialSources []string       `json:"potential_sources"`
	KnownMatches     []KnownMatch   `json:"known_matches,omitempty"`
	Err              string         `json:"error,omitempty"`
}

func (s CopyrightSignal) Failed() bool { return s.Err != "" }

// FraudSignal is the fraud extractor output.
type FraudSignal struct {
	Score         Score    `json:"score"`
	Indicators    []string `json:"indicators"`
	ExtractedText string   `json:"extracted_text"`
	FraudTypes    []string `json:"fraud_types"`
	Err           string   `json:"error,omitempty"`
}

func (s FraudSignal) Failed() bool { return s.Err != "" }

// BlurRegion marks a timestamped area that a downstream redaction step
// should blur.
type BlurRegion struct {
	Timestamp float64       `json:"timestamp"`
	Reason    string        `json:"reason"`
	Severity  string        `json:"severity"`
	Faces     []facedet.Box `json:"regions,omitempty"`
	Score     float64       `json:"score,omitempty"`
}

// BlurSignal is the blur requirement extractor output. Evidence only; it
// never affects the accept/reject decision.
type BlurSignal struct {
	RequiresBlur bool         `json:"requires_blur"`
	Regions      []BlurRegion `json:"blur_regions"`
	TotalRegions int          `json:"total_regions"`
	Err          string       `json:"error,omitempty"`
}

func (s BlurSignal) Failed() bool { return s.Err != "" }

// QualitySignal is the technical quality extractor output.
type QualitySignal struct {
	SharpnessScore  float64 `json:"blur_score"`
	BrightnessScore float64 `json:"brightness_score"`
	QualityRating   string  `json:"quality_rating"`
	IsBlurry        bool    `json:"is_blurry"`
	IsTooDark       bool    `json:"is_too_dark"`
	IsTooBright     bool    `json:"is_too_bright"`
	Err             string  `json:"error,omitempty"`
}

func (s QualitySignal) Failed() bool { return s.Err != "" }

// FileInfo describes the analyzed file.
type FileInfo struct {
	Filename   string  `json:"filename"`
	Duration   float64 `json:"duration"`
	FPS        float64 `json:"fps"`
	Resolution string  `json:"resolution"`
	FileSize   int64   `json:"file_size"`
	FileHash   string  `json:"file_hash"`
	Format     string  `json:"format"`
}

// AnalysisDetails bundles the raw per-extractor signals for one analyzed
// video, serialized under stable field names.
type AnalysisDetails struct {
	FileInfo  *FileInfo       `json:"file_info,omitempty"`
	Nudity    NuditySignal    `json:"nudity_analysis"`
	Copyright CopyrightSignal `json:"copyright_analysis"`
	Fraud     FraudSignal     `json:"fraud_analysis"`
	Blur      BlurSignal      `json:"blur_analysis"`
	Quality   QualitySignal   `json:"technical_analysis"`
	Timestamp time.Time       `json:"timestamp"`
}
