package engine

import (
	"context"

	"videomod/internal/pkg/video"
)

// Sample counts per extractor family. Sampling cost is bounded by these
// regardless of video length.
const (
	visualSampleCount = 30 // nudity
	logoSampleCount   = 20 // copyright visual, blur regions
	textSampleCount   = 10 // fraud text, technical quality
)

// Source is the decoded-video boundary the extractors consume. The real
// implementation is video.File; tests substitute synthetic frames.
type Source interface {
	Metadata() *video.Metadata
	SampleFrames(ctx context.Context, n int) ([]video.Frame, error)
	AudioSamples(ctx context.Context) ([]float64, error)
	Close() error
}

// Opener opens a video path into a Source.
type Opener func(ctx context.Context, path string) (Source, error)

// DefaultOpener opens sources with ffmpeg/ffprobe.
func DefaultOpener(ctx context.Context, path string) (Source, error) {
	return video.Open(ctx, path)
}
