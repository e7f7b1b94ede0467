// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

/*
LineReader splits a byte stream into IRC records. A record ends at the first
\r or \n; the pair \r\n therefore produces an empty record, and empty records
are never returned. The buffer is allocated once at maxLen bytes: a record
whose content does not fit in maxLen-2 bytes is discarded up to its
terminator and reported as ErrLineTooLong, after which reading resumes with
the next record. The cap leaves room for a CR-LF whichever terminator the
record actually ends with, so a bare-LF record of maxLen-1 bytes is rejected
too. An overlong record cut off by EOF is reported the same way and none of
it is returned.
*/
type LineReader struct {
	conn   io.Reader
	maxLen int

	buf        []byte
	start      int // start of read but unconsumed data
	end        int // end of valid data
	searchFrom int // start of data not yet searched for a terminator
	eof        bool
	discarding bool // inside an overlong record, dropping bytes until its terminator
}

// NewLineReader returns a reader enforcing maxLen, which counts a two-byte
// terminator.
func NewLineReader(conn io.Reader, maxLen int) *LineReader {
	if maxLen < 3 {
		maxLen = MaxLineLen
	}
	return &LineReader{
		conn:   conn,
		maxLen: maxLen,
	}
}

// ReadLine blocks until a full record is available and returns it with the
// terminator stripped. A partial record followed by EOF is returned as a
// final record; the call after that returns io.EOF.
func (lr *LineReader) ReadLine() (string, error) {
	if lr.buf == nil {
		lr.buf = make([]byte, lr.maxLen)
	}
	limit := lr.maxLen - 2

	for {
		if idx := bytes.IndexAny(lr.buf[lr.searchFrom:lr.end], "\r\n"); idx != -1 {
			pos := lr.searchFrom + idx
			line := lr.buf[lr.start:pos]
			lr.start = pos + 1
			lr.searchFrom = lr.start
			if lr.discarding {
				// the rest of the overlong record goes with it
				lr.discarding = false
				lr.start, lr.end, lr.searchFrom = 0, 0, 0
				return "", ErrLineTooLong
			}
			if len(line) == 0 {
				continue
			}
			if len(line) > limit {
				return "", ErrLineTooLong
			}
			return decodeLine(line), nil
		}
		lr.searchFrom = lr.end

		if lr.end-lr.start > limit {
			// overlong: drop what we have and skip ahead to the terminator
			lr.discarding = true
			lr.start, lr.end, lr.searchFrom = 0, 0, 0
		}

		if lr.eof {
			if lr.discarding {
				// the rest of the overlong record goes with it
				lr.discarding = false
				lr.start, lr.end, lr.searchFrom = 0, 0, 0
				return "", ErrLineTooLong
			}
			if lr.start < lr.end {
				line := lr.buf[lr.start:lr.end]
				lr.start = lr.end
				lr.searchFrom = lr.end
				return decodeLine(line), nil
			}
			return "", io.EOF
		}

		if lr.start != 0 {
			// slide remaining data back to the front of the buffer
			copy(lr.buf, lr.buf[lr.start:lr.end])
			lr.end -= lr.start
			lr.searchFrom -= lr.start
			lr.start = 0
		}

		n, err := lr.conn.Read(lr.buf[lr.end:])
		lr.end += n
		if err == io.EOF {
			lr.eof = true
		} else if err != nil {
			return "", err
		}
	}
}

// decodeLine interprets raw as UTF-8, replacing invalid sequences with U+FFFD.
func decodeLine(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(decoded)
}
