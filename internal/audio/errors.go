package audio

import "errors"

// ErrSegmentationFailed indicates ffmpeg failed during audio segmentation
// or produced no chunks. The tool's stderr, when available, is attached
// to the wrapping error for diagnostics.
var ErrSegmentationFailed = errors.New("audio segmentation failed")
