// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package utils

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

const (
	monteCristo = `Both the count and Baptistin had told the truth when they announced to Morcerf the proposed visit of the major, which had served Monte Cristo as a pretext for declining Albert's invitation. Seven o'clock had just struck, and M. Bertuccio, according to the command which had been given him, had two hours before left for Auteuil, when a cab stopped at the door, and after depositing its occupant at the gate, immediately hurried away, as if ashamed of its employment. The visitor was about fifty-two years of age, dressed in one of the green surtouts, ornamented with black frogs, which have so long maintained their popularity all over Europe.`
)

func TestWordWrap(t *testing.T) {
	lineLen := 120
	lines := WordWrap(monteCristo, lineLen)
	if len(lines) < 5 {
		t.Errorf("expected at least 5 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len(line) > lineLen {
			t.Errorf("line length %d exceeds maximum of %d", len(line), lineLen)
		}
	}
	if joined := strings.Join(lines, ""); joined != monteCristo {
		t.Errorf("text incorrectly split into lines: %q", lines)
	}
}

func TestWordWrapCases(t *testing.T) {
	cases := []struct {
		text     string
		limit    int
		expected []string
	}{
		{"hello world", 20, []string{"hello world"}},
		{"hello world", 6, []string{"hello ", "world"}},
		{"well-known fact", 6, []string{"well-", "known ", "fact"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"one\r\ntwo\n\nthree", 20, []string{"one", "two", "", "three"}},
		{"", 10, nil},
	}
	for _, c := range cases {
		if lines := WordWrap(c.text, c.limit); !reflect.DeepEqual(lines, c.expected) {
			t.Errorf("wrapping %q at %d: expected %q, got %q", c.text, c.limit, c.expected, lines)
		}
	}
}

func TestWordWrapUTF8(t *testing.T) {
	text := strings.Repeat("é", 10) // 2 bytes each
	lines := WordWrap(text, 5)
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %q", lines)
	}
	for _, line := range lines {
		if !utf8.ValidString(line) || len(line) > 5 {
			t.Errorf("bad line %q", line)
		}
	}

	if lines := WordWrap("é", 1); len(lines) != 0 {
		t.Errorf("nothing fits in a single byte, got %q", lines)
	}
}
