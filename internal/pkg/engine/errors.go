package engine

import (
	"errors"

	"videomod/internal/pkg/video"
)

var (
	// ErrSourceUnreadable indicates the video could not be opened at all.
	// Analysis aborts; no partial Decision is produced.
	ErrSourceUnreadable = video.ErrSourceUnreadable
	// ErrUnsupportedFormat indicates a container type outside the accepted set.
	ErrUnsupportedFormat = video.ErrUnsupportedFormat
	// ErrInvalidConfig indicates a ModerationConfig field outside its
	// accepted enumeration or range.
	ErrInvalidConfig = errors.New("invalid moderation config")
)
