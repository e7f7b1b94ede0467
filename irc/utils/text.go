// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package utils

import (
	"strings"
	"unicode/utf8"
)

// WordWrap wraps the given text into a series of lines that don't exceed
// byteLimit bytes. Lines break after spaces and hyphens where possible and
// at every newline; a word longer than a whole line is split. Carriage
// returns are dropped and multi-byte characters are never split.
func WordWrap(text string, byteLimit int) (lines []string) {
	var line, word strings.Builder
	flushWord := func() {
		line.WriteString(word.String())
		word.Reset()
	}

	for _, char := range text {
		if char == '\r' {
			continue
		} else if char == '\n' {
			flushWord()
			lines = append(lines, line.String())
			line.Reset()
			continue
		}

		charLen := utf8.RuneLen(char)
		for byteLimit < line.Len()+word.Len()+charLen {
			if line.Len() != 0 {
				// time to wrap to the next line; the word moves with us
				lines = append(lines, line.String())
				line.Reset()
			} else if word.Len() != 0 {
				// this word takes up the whole line... just split it
				lines = append(lines, word.String())
				word.Reset()
			} else {
				// byteLimit is smaller than one character
				return
			}
		}

		word.WriteRune(char)
		if char == ' ' || char == '-' {
			// natural word boundary
			flushWord()
		}
	}

	flushWord()
	if line.Len() != 0 {
		lines = append(lines, line.String())
	}
	return
}
