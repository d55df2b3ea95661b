package text_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KYO678/MeetingSummarizer/internal/text"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   []string
	}{
		{name: "empty string", input: "", maxLen: 5, want: []string{""}},
		{name: "shorter than limit", input: "abc", maxLen: 5, want: []string{"abc"}},
		{name: "exactly the limit", input: "abcde", maxLen: 5, want: []string{"abcde"}},
		{name: "one over the limit", input: "abcdef", maxLen: 5, want: []string{"abcde", "f"}},
		{name: "exact multiple", input: "abcdefghij", maxLen: 5, want: []string{"abcde", "fghij"}},
		{name: "limit of one", input: "abc", maxLen: 1, want: []string{"a", "b", "c"}},
		{name: "zero limit uses default", input: "abc", maxLen: 0, want: []string{"abc"}},
		{name: "japanese at character boundaries", input: "議事録を作成します", maxLen: 4, want: []string{"議事録を", "作成しま", "す"}},
		{name: "japanese limit of one", input: "会議", maxLen: 1, want: []string{"会", "議"}},
		{name: "mixed ascii and japanese", input: "minutes議事録", maxLen: 8, want: []string{"minutes議", "事録"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := text.Split(tt.input, tt.maxLen)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slice %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Concatenation identity, exact per-slice character counts, valid UTF-8
// per slice, and ceil(chars/maxLen) count must hold for arbitrary inputs.
func TestSplitProperties(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		name   string
		input  string
		maxLen int
	}{
		{name: "long transcript", input: strings.Repeat("meeting notes ", 500), maxLen: 2000},
		{name: "5000 chars at 2000", input: strings.Repeat("x", 5000), maxLen: 2000},
		{name: "prime sizes", input: strings.Repeat("y", 101), maxLen: 7},
		{name: "single char slices", input: "hello world", maxLen: 1},
		{name: "japanese transcript", input: strings.Repeat("次回の議題と決定事項。", 450), maxLen: 2000},
		{name: "japanese prime sizes", input: strings.Repeat("議", 101), maxLen: 7},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := text.Split(tt.input, tt.maxLen)

			chars := utf8.RuneCountInString(tt.input)
			wantCount := (chars + tt.maxLen - 1) / tt.maxLen
			if len(got) != wantCount {
				t.Errorf("slice count = %d, want %d", len(got), wantCount)
			}
			for i, slice := range got[:len(got)-1] {
				if n := utf8.RuneCountInString(slice); n != tt.maxLen {
					t.Errorf("slice %d has %d characters, want exactly %d", i, n, tt.maxLen)
				}
			}
			if last := got[len(got)-1]; utf8.RuneCountInString(last) > tt.maxLen {
				t.Errorf("last slice has %d characters, exceeds %d", utf8.RuneCountInString(last), tt.maxLen)
			}
			for i, slice := range got {
				if !utf8.ValidString(slice) {
					t.Errorf("slice %d is not valid UTF-8: %q", i, slice)
				}
			}
			if joined := strings.Join(got, ""); joined != tt.input {
				t.Errorf("concatenation does not reproduce the input (len %d vs %d)", len(joined), len(tt.input))
			}
		})
	}
}

func TestSplitFiveThousandAtDefault(t *testing.T) {
	t.Parallel()

	got := text.Split(strings.Repeat("a", 5000), text.DefaultMaxBlockLength)
	if len(got) != 3 {
		t.Fatalf("expected 3 slices for 5000 chars at 2000, got %d", len(got))
	}
	if len(got[0]) != 2000 || len(got[1]) != 2000 || len(got[2]) != 1000 {
		t.Errorf("slice lengths = %d,%d,%d, want 2000,2000,1000",
			len(got[0]), len(got[1]), len(got[2]))
	}
}
