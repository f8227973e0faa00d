package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata describes a decodable video source.
type Metadata struct {
	Duration   float64 // seconds
	FPS        float64
	FrameCount int
	Width      int
	Height     int
	HasAudio   bool
}

// ffprobe JSON output shapes (only the fields we read).
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe inspects a video file with ffprobe and returns its metadata.
func Probe(ctx context.Context, path string) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return metadataFromProbe(&out)
}

func metadataFromProbe(out *probeOutput) (*Metadata, error) {
	meta := &Metadata{}

	var videoStream *probeStream
	for i := range out.Streams {
		switch out.Streams[i].CodecType {
		case "video":
			if videoStream == nil {
				videoStream = &out.Streams[i]
			}
		case "audio":
			meta.HasAudio = true
		}
	}
	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	meta.Width = videoStream.Width
	meta.Height = videoStream.Height
	meta.FPS = parseFrameRate(videoStream.AvgFrameRate)

	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		meta.Duration = d
	} else if d, err := strconv.ParseFloat(videoStream.Duration, 64); err == nil {
		meta.Duration = d
	}

	if n, err := strconv.Atoi(videoStream.NbFrames); err == nil && n > 0 {
		meta.FrameCount = n
	} else if meta.FPS > 0 && meta.Duration > 0 {
		meta.FrameCount = int(math.Round(meta.Duration * meta.FPS))
	}

	if meta.FrameCount <= 0 {
		return nil, fmt.Errorf("video has no decodable frames")
	}
	return meta, nil
}

// parseFrameRate parses ffprobe rational frame rates like "30000/1001".
func parseFrameRate(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	if !found {
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
