package engine

import (
	"context"
	"image/color"
	"testing"

	"videomod/internal/pkg/video"

	"github.com/go-kratos/kratos/v2/log"
)

func TestSkinContentScoreNeutralFrames(t *testing.T) {
	for _, tc := range []struct {
		name string
		c    color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}},
		{"white", color.RGBA{255, 255, 255, 255}},
		{"blue", color.RGBA{0, 0, 255, 255}},
	} {
		if got := skinContentScore(solidFrame(tc.c, 64, 64)); got != 0 {
			t.Errorf("%s frame score = %f, want 0", tc.name, got)
		}
	}
}

func TestSkinContentScoreSkinFrame(t *testing.T) {
	got := skinContentScore(skinFrame(64, 64))
	if got != 1.0 {
		t.Errorf("full-skin frame score = %f, want 1.0", got)
	}
}

func TestNudityExtractorCleanVideo(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(solidFrame(color.RGBA{0, 0, 0, 255}, 64, 64), 30),
	}
	ext := NewNudityExtractor(log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src, DefaultConfig())
	if sig.Failed() {
		t.Fatalf("unexpected failure: %s", sig.Err)
	}
	if sig.Score != 0 {
		t.Errorf("score = %f, want 0", sig.Score.Float())
	}
	if sig.Category != "none" {
		t.Errorf("category = %s, want none", sig.Category)
	}
	if len(sig.Detections) != 0 {
		t.Errorf("detections = %d, want 0", len(sig.Detections))
	}
	if sig.FramesAnalyzed != 30 {
		t.Errorf("frames analyzed = %d, want 30", sig.FramesAnalyzed)
	}
}

func TestNudityExtractorMaxFramePolicy(t *testing.T) {
	// One explicit frame among clean ones drives the overall score.
	frames := repeatFrames(solidFrame(color.RGBA{0, 0, 0, 255}, 64, 64), 30)
	frames[15] = skinFrame(64, 64)
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: frames,
	}
	ext := NewNudityExtractor(log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src, DefaultConfig())
	if sig.Score != 1.0 {
		t.Errorf("score = %f, want 1.0 from the single explicit frame", sig.Score.Float())
	}
	if sig.Category != "explicit" {
		t.Errorf("category = %s, want explicit", sig.Category)
	}
	if len(sig.Detections) != 1 {
		t.Fatalf("detections = %d, want 1", len(sig.Detections))
	}
	if sig.Detections[0].FrameNumber != 15 {
		t.Errorf("detection frame = %d, want 15", sig.Detections[0].FrameNumber)
	}
}

func TestCategorizeNudity(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "none"},
		{0.29, "none"},
		{0.3, "suggestive"},
		{0.49, "suggestive"},
		{0.5, "partial"},
		{0.69, "partial"},
		{0.7, "explicit"},
		{1.0, "explicit"},
	}
	for _, tc := range cases {
		if got := categorizeNudity(Score(tc.score)); got != tc.want {
			t.Errorf("categorizeNudity(%.2f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
