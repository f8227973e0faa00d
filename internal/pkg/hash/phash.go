package hash

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// FrameHash is the perceptual hash of a single video frame.
type FrameHash struct {
	Hash   uint64
	Width  int
	Height int
}

// ComputeFrameHash computes the DCT-based perceptual hash of a frame.
func ComputeFrameHash(img image.Image) (*FrameHash, error) {
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to compute frame pHash: %w", err)
	}
	return &FrameHash{
		Hash:   h.GetHash(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// HammingDistance calculates the number of differing bits between two
// 64-bit hashes. 0 means identical frames.
func HammingDistance(h1, h2 uint64) int {
	xor := h1 ^ h2
	count := 0
	for xor != 0 {
		count++
		xor &= xor - 1
	}
	return count
}

// IsSimilar reports whether two frame hashes are within threshold bits of
// each other. Distances up to ~10 usually mean the same content with minor
// edits (scaling, recompression, overlays).
func IsSimilar(h1, h2 *FrameHash, threshold int) bool {
	return HammingDistance(h1.Hash, h2.Hash) <= threshold
}

// String returns a hex string representation of the hash.
func (h *FrameHash) String() string {
	return fmt.Sprintf("%016x", h.Hash)
}
