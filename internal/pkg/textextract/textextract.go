// Package textextract defines the on-screen-text extraction capability
// consumed by the fraud extractor. Contract: given a frame, return zero or
// more text strings. No OCR engine ships with the pipeline; the default is
// a no-op and deployments wire an HTTP OCR service instead.
package textextract

import (
	"context"
	"image"
)

// Extractor pulls visible text out of a single frame.
type Extractor interface {
	ExtractText(ctx context.Context, img image.Image) ([]string, error)
}

// Noop is an Extractor that returns no text. It keeps the fraud signal
// wired (score 0) when no text engine is configured.
type Noop struct{}

// ExtractText implements Extractor.
func (Noop) ExtractText(context.Context, image.Image) ([]string, error) {
	return nil, nil
}
