package transcribe

import "errors"

// ErrSegmenterUnavailable indicates the input exceeds the single-call
// size limit and no transcoding tool is available to split it. The job
// aborts before any speech-to-text call is made.
var ErrSegmenterUnavailable = errors.New("input exceeds size limit and ffmpeg is not available for segmentation")
