// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/relaybot/relaybot/irc/logger"
)

// Writer serializes outgoing lines onto a connection. Each Send is a single
// Write under a mutex, so the read loop and the relay pump can share it.
type Writer struct {
	sync.Mutex

	conn   IRCConn
	logger *logger.Manager
}

// NewWriter returns a Writer for conn.
func NewWriter(conn IRCConn, logger *logger.Manager) *Writer {
	return &Writer{
		conn:   conn,
		logger: logger,
	}
}

// Send writes out. Lines longer than MaxLineLen are not truncated: the call
// fails with ErrLineTooLong and nothing is written.
func (w *Writer) Send(out Outbound) error {
	line := out.Line()
	if len(line) > MaxLineLen {
		return fmt.Errorf("%w: %s is %d bytes", ErrLineTooLong, out.Command, len(line))
	}

	if w.logger.IsLoggingRawIO() {
		w.logger.Debug("useroutput", strings.TrimSuffix(string(line), "\r\n"))
	}

	w.Lock()
	defer w.Unlock()
	return w.conn.Write(line)
}

// SendCommand is shorthand for sending a line with positional params only.
func (w *Writer) SendCommand(command string, params ...string) error {
	return w.Send(NewOutbound(command, params...))
}

// SendTrailing is shorthand for sending a line ending in a trailing param.
func (w *Writer) SendTrailing(command string, trailing string, params ...string) error {
	return w.Send(NewOutboundTrailing(command, trailing, params...))
}
