// Package lang validates audio language codes before they reach the
// transcription API.
package lang

import (
	"fmt"
	"strings"
)

// validLanguages contains ISO 639-1 language codes supported by OpenAI's
// transcription API. Not exhaustive; covers the common languages.
var validLanguages = map[string]bool{
	"af": true, "ar": true, "bg": true, "bn": true, "ca": true,
	"cs": true, "da": true, "de": true, "el": true, "en": true,
	"es": true, "et": true, "fa": true, "fi": true, "fr": true,
	"he": true, "hi": true, "hr": true, "hu": true, "id": true,
	"it": true, "ja": true, "ko": true, "lt": true, "lv": true,
	"ms": true, "nl": true, "no": true, "pl": true, "pt": true,
	"ro": true, "ru": true, "sk": true, "sl": true, "sr": true,
	"sv": true, "sw": true, "ta": true, "th": true, "tl": true,
	"tr": true, "uk": true, "ur": true, "vi": true, "zh": true,
}

// Normalize lowercases a code and unifies the locale separator.
// "pt_BR", "PT-BR", "pt-br" all become "pt-br".
func Normalize(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "_", "-"))
}

// Validate checks a language code. Accepts ISO 639-1 codes ("en", "ja")
// and locales ("pt-BR"); an empty code means auto-detect and is valid.
func Validate(code string) error {
	if code == "" {
		return nil
	}
	if !validLanguages[BaseCode(code)] {
		return fmt.Errorf("invalid language code %q (use ISO 639-1 codes like 'en', 'ja', 'pt-BR'): %w",
			code, ErrInvalid)
	}
	return nil
}

// BaseCode extracts the base language from a locale. The transcription
// API only accepts base codes, not regional variants.
func BaseCode(code string) string {
	normalized := Normalize(code)
	if idx := strings.Index(normalized, "-"); idx != -1 {
		return normalized[:idx]
	}
	return normalized
}
