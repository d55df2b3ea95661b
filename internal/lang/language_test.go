package lang_test

import (
	"errors"
	"testing"

	"github.com/KYO678/MeetingSummarizer/internal/lang"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"empty means auto-detect", "", false},
		{"base code", "ja", false},
		{"uppercase", "EN", false},
		{"locale", "pt-BR", false},
		{"underscore locale", "pt_BR", false},
		{"unknown code", "xx", true},
		{"unknown locale base", "xx-XX", true},
		{"not a code", "japanese", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := lang.Validate(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, lang.ErrInvalid) {
				t.Errorf("Validate(%q) = %v, want ErrInvalid", tt.code, err)
			}
		})
	}
}

func TestBaseCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"pt-BR", "pt"},
		{"zh_CN", "zh"},
		{"en", "en"},
		{"JA", "ja"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := lang.BaseCode(tt.code); got != tt.want {
			t.Errorf("BaseCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
