// Package video opens uploaded files and yields evenly spaced frame
// samples and decoded audio without ever holding a full video in memory.
// Decoding is delegated to ffmpeg/ffprobe subprocesses; each sampling
// call is bounded by the requested sample count, so per-extractor cost is
// independent of video length.
package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrSourceUnreadable indicates the video cannot be opened at all.
	ErrSourceUnreadable = errors.New("video source unreadable")
	// ErrUnsupportedFormat indicates a container type outside the accepted set.
	ErrUnsupportedFormat = errors.New("unsupported video format")
)

// supportedExtensions lists the accepted container types.
var supportedExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".wmv":  true,
	".mkv":  true,
	".flv":  true,
	".webm": true,
}

// Frame is a single decoded frame paired with its position in the video.
type Frame struct {
	Index     int
	Timestamp float64 // seconds, Index / FPS
	Image     image.Image
}

// File is an opened video source. It owns no OS resources between calls;
// every sampling operation runs a bounded ffmpeg subprocess that is fully
// reaped before returning, so Close is deterministic by construction.
type File struct {
	path string
	meta *Metadata
}

// Open probes a video file and returns a handle for sampling.
func Open(ctx context.Context, path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	meta, err := Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return &File{path: path, meta: meta}, nil
}

// Metadata returns the probed source metadata.
func (f *File) Metadata() *Metadata {
	return f.meta
}

// Close releases the handle.
func (f *File) Close() error {
	return nil
}

// SampleIndices computes the evenly spaced frame indices for a target
// sample count: interval = max(1, total/n), indices 0, interval, ...
func SampleIndices(totalFrames, n int) []int {
	if totalFrames <= 0 || n <= 0 {
		return nil
	}
	interval := totalFrames / n
	if interval < 1 {
		interval = 1
	}
	indices := make([]int, 0, n+1)
	for i := 0; i < totalFrames; i += interval {
		indices = append(indices, i)
	}
	return indices
}

// SampleFrames decodes up to n evenly spaced frames. Individual frames
// that fail to decode are skipped; only a total decode failure is an error.
func (f *File) SampleFrames(ctx context.Context, n int) ([]Frame, error) {
	indices := SampleIndices(f.meta.FrameCount, n)
	if len(indices) == 0 {
		return nil, nil
	}

	interval := f.meta.FrameCount / n
	if interval < 1 {
		interval = 1
	}

	// One decode pass selecting every interval-th frame, raw RGBA out.
	selectExpr := fmt.Sprintf("select=not(mod(n\\,%d))", interval)
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-i", f.path,
		"-vf", selectExpr,
		"-vsync", "0",
		"-frames:v", fmt.Sprintf("%d", len(indices)),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to pipe ffmpeg output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	frameSize := f.meta.Width * f.meta.Height * 4
	frames := make([]Frame, 0, len(indices))
	fps := f.meta.FPS
	if fps <= 0 {
		fps = 1
	}

	for _, idx := range indices {
		buf := make([]byte, frameSize)
		if _, err := io.ReadFull(stdout, buf); err != nil {
			// Short stream: remaining samples failed to decode, skip them.
			break
		}
		img := &image.RGBA{
			Pix:    buf,
			Stride: f.meta.Width * 4,
			Rect:   image.Rect(0, 0, f.meta.Width, f.meta.Height),
		}
		frames = append(frames, Frame{
			Index:     idx,
			Timestamp: float64(idx) / fps,
			Image:     img,
		})
	}

	// Drain and reap; a non-zero exit after partial output is not fatal.
	io.Copy(io.Discard, stdout)
	if err := cmd.Wait(); err != nil && len(frames) == 0 {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %w", err)
	}
	return frames, nil
}
