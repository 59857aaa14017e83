package domain

import "unicode/utf8"

// Character limits applied to narration.
const (
	// MaxSpeechChars is the longest text sent to the speech synthesizer.
	MaxSpeechChars = 5000
	// MaxAudioTextChars is the longest text_content kept on an AudioFile.
	MaxAudioTextChars = 1000
)

// TruncateRunes returns the first n characters of s.
// Characters are counted as runes, so multi-byte text is never split mid-character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
