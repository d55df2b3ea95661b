// Package text provides pure text-slicing helpers for destinations
// with per-block size limits.
package text

// DefaultMaxBlockLength is the Notion paragraph content limit in characters.
const DefaultMaxBlockLength = 2000

// Split partitions s into contiguous slices of at most maxLen characters.
// Every slice except possibly the last has exactly maxLen characters, and
// the concatenation of the result reproduces s exactly. Slicing happens at
// rune boundaries so multi-byte text is never cut mid-character; no word
// awareness.
//
// maxLen <= 0 is normalized to DefaultMaxBlockLength.
func Split(s string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxBlockLength
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return []string{s}
	}

	chunks := make([]string, 0, (len(runes)+maxLen-1)/maxLen)
	for i := 0; i < len(runes); i += maxLen {
		end := min(i+maxLen, len(runes))
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
