package video

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
)

// AudioSampleRate is the rate audio is resampled to before analysis.
const AudioSampleRate = 22050

// AudioSamples extracts the audio track as a mono sample array in
// [-1, 1]. Stereo channels are averaged by the decoder. A source with no
// audio track returns (nil, nil); that is a valid, non-error state.
func (f *File) AudioSamples(ctx context.Context) ([]float64, error) {
	if !f.meta.HasAudio {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-i", f.path,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", AudioSampleRate),
		"-f", "f32le",
		"pipe:1",
	)

	raw, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}

	samples := make([]float64, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i : i+4])
		samples = append(samples, float64(math.Float32frombits(bits)))
	}
	return samples, nil
}
