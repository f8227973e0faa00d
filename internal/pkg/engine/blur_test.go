package engine

import (
	"context"
	"image/color"
	"testing"

	"videomod/internal/pkg/facedet"
	"videomod/internal/pkg/video"

	"github.com/go-kratos/kratos/v2/log"
)

func TestBlurDetectsViolentRedFrames(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(solidFrame(color.RGBA{200, 20, 20, 255}, 64, 64), 20),
	}
	ext := NewBlurRequirementExtractor(facedet.Noop{}, log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src, DefaultConfig())
	if sig.Failed() {
		t.Fatalf("unexpected failure: %s", sig.Err)
	}
	if !sig.RequiresBlur {
		t.Fatal("all-red frames did not require blur")
	}
	if sig.TotalRegions != len(sig.Regions) {
		t.Errorf("total = %d, regions = %d", sig.TotalRegions, len(sig.Regions))
	}
	for _, r := range sig.Regions {
		if r.Reason != "violent content" || r.Severity != "high" {
			t.Errorf("region = %+v, want violent content / high", r)
		}
		if r.Score <= violenceRegionFloor {
			t.Errorf("region score %f not above floor", r.Score)
		}
	}
}

func TestBlurCleanFrames(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(checkerboardFrame(64, 64), 20),
	}
	ext := NewBlurRequirementExtractor(facedet.NewHeuristic(), log.NewStdLogger(testWriter{}))

	sig := ext.Extract(context.Background(), src, DefaultConfig())
	if sig.RequiresBlur || len(sig.Regions) != 0 {
		t.Errorf("clean frames produced blur regions: %+v", sig.Regions)
	}
}

func TestBlurDisabledByConfig(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(solidFrame(color.RGBA{200, 20, 20, 255}, 64, 64), 20),
	}
	ext := NewBlurRequirementExtractor(facedet.NewHeuristic(), log.NewStdLogger(testWriter{}))

	cfg := DefaultConfig()
	cfg.BlurFaces = false
	cfg.BlurViolence = false

	sig := ext.Extract(context.Background(), src, cfg)
	if sig.RequiresBlur || len(sig.Regions) != 0 {
		t.Errorf("disabled config still produced regions: %+v", sig.Regions)
	}
}

func TestBlurFacesUseDetector(t *testing.T) {
	src := &fakeSource{
		meta:   video.Metadata{FPS: 30, FrameCount: 300, Width: 64, Height: 64},
		frames: repeatFrames(skinFrame(64, 64), 20),
	}
	ext := NewBlurRequirementExtractor(facedet.NewHeuristic(), log.NewStdLogger(testWriter{}))

	cfg := DefaultConfig()
	cfg.BlurViolence = false

	sig := ext.Extract(context.Background(), src, cfg)
	if !sig.RequiresBlur {
		t.Fatal("skin-dominated frames produced no face regions")
	}
	for _, r := range sig.Regions {
		if r.Reason != "personal identifiable information (faces)" {
			t.Errorf("region reason = %q", r.Reason)
		}
		if len(r.Faces) == 0 {
			t.Error("face region carries no bounding boxes")
		}
	}
}
