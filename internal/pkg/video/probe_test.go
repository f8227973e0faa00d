package video

import (
	"encoding/json"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"bad/x", 0},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.in); got != tt.want {
			t.Errorf("parseFrameRate(%q) = %f; want %f", tt.in, got, tt.want)
		}
	}

	// NTSC rate
	if got := parseFrameRate("30000/1001"); got < 29.9 || got > 30.0 {
		t.Errorf("parseFrameRate(30000/1001) = %f; want ~29.97", got)
	}
}

func TestMetadataFromProbe(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "video", "width": 1280, "height": 720,
			 "avg_frame_rate": "30/1", "nb_frames": "300", "duration": "10.0"},
			{"codec_type": "audio"}
		],
		"format": {"duration": "10.000000"}
	}`
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	meta, err := metadataFromProbe(&out)
	if err != nil {
		t.Fatalf("metadataFromProbe: %v", err)
	}
	if meta.Width != 1280 || meta.Height != 720 {
		t.Errorf("got %dx%d, want 1280x720", meta.Width, meta.Height)
	}
	if meta.FrameCount != 300 {
		t.Errorf("got %d frames, want 300", meta.FrameCount)
	}
	if meta.FPS != 30 {
		t.Errorf("got fps %f, want 30", meta.FPS)
	}
	if !meta.HasAudio {
		t.Error("expected HasAudio")
	}
}

func TestMetadataFromProbe_FrameCountFallback(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "video", "width": 640, "height": 480,
			 "avg_frame_rate": "25/1"}
		],
		"format": {"duration": "4.0"}
	}`
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	meta, err := metadataFromProbe(&out)
	if err != nil {
		t.Fatalf("metadataFromProbe: %v", err)
	}
	if meta.FrameCount != 100 {
		t.Errorf("got %d frames, want duration*fps = 100", meta.FrameCount)
	}
	if meta.HasAudio {
		t.Error("expected no audio")
	}
}

func TestMetadataFromProbe_NoVideoStream(t *testing.T) {
	raw := `{"streams": [{"codec_type": "audio"}], "format": {"duration": "4.0"}}`
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := metadataFromProbe(&out); err == nil {
		t.Error("expected error for missing video stream")
	}
}

func TestSampleIndices(t *testing.T) {
	// 300 frames, 30 samples: every 10th frame
	indices := SampleIndices(300, 30)
	if len(indices) != 30 {
		t.Fatalf("got %d indices, want 30", len(indices))
	}
	if indices[0] != 0 || indices[1] != 10 || indices[29] != 290 {
		t.Errorf("unexpected indices: %v", indices[:3])
	}

	// Fewer frames than samples: every frame
	indices = SampleIndices(5, 30)
	if len(indices) != 5 {
		t.Fatalf("got %d indices, want 5", len(indices))
	}

	if SampleIndices(0, 30) != nil {
		t.Error("expected nil for empty video")
	}
}
