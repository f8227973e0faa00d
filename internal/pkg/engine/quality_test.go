package engine

import (
	"context"
	"image/color"
	"testing"

	"videomod/internal/pkg/video"

	"github.com/go-kratos/kratos/v2/log"
)

func TestQualitySharpBalancedFrames(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(checkerboardFrame(64, 64), 10),
	}
	ext := NewTechnicalQualityExtractor(log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src)
	if sig.Failed() {
		t.Fatalf("unexpected failure: %s", sig.Err)
	}
	if sig.QualityRating != "excellent" {
		t.Errorf("rating = %s, want excellent (sharpness %f)", sig.QualityRating, sig.SharpnessScore)
	}
	if sig.IsBlurry || sig.IsTooDark || sig.IsTooBright {
		t.Errorf("flags set on sharp balanced frames: %+v", sig)
	}
	if sig.BrightnessScore < 100 || sig.BrightnessScore > 155 {
		t.Errorf("brightness = %f, want near 127", sig.BrightnessScore)
	}
}

func TestQualityUniformDarkFrames(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(solidFrame(color.RGBA{10, 10, 10, 255}, 64, 64), 10),
	}
	ext := NewTechnicalQualityExtractor(log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src)
	if !sig.IsBlurry {
		t.Error("zero-variance frames not flagged blurry")
	}
	if !sig.IsTooDark {
		t.Errorf("brightness %f not flagged dark", sig.BrightnessScore)
	}
	if sig.QualityRating != "poor" {
		t.Errorf("rating = %s, want poor", sig.QualityRating)
	}
}

func TestQualityOverexposedFrames(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(solidFrame(color.RGBA{250, 250, 250, 255}, 64, 64), 10),
	}
	ext := NewTechnicalQualityExtractor(log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src)
	if !sig.IsTooBright {
		t.Errorf("brightness %f not flagged overexposed", sig.BrightnessScore)
	}
	if sig.IsTooDark {
		t.Error("overexposed frames flagged dark")
	}
}

func TestRateQuality(t *testing.T) {
	cases := []struct {
		sharpness float64
		want      string
	}{
		{0, "poor"},
		{49, "poor"},
		{50, "fair"},
		{149, "fair"},
		{150, "good"},
		{299, "good"},
		{300, "excellent"},
		{5000, "excellent"},
	}
	for _, tc := range cases {
		if got := rateQuality(tc.sharpness); got != tc.want {
			t.Errorf("rateQuality(%f) = %s, want %s", tc.sharpness, got, tc.want)
		}
	}
}
