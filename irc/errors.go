// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import "errors"

// Protocol Errors
var (
	// ErrLineTooLong is returned by LineReader when a record exceeds the line
	// limit, and by Writer when a serialized line would.
	ErrLineTooLong = errors.New("line exceeds the maximum length")
	// ErrMalformedLine is returned by ParseLine for records without a command.
	ErrMalformedLine = errors.New("malformed line")
)

// Runtime Errors
var (
	errRelayQueueFull  = errors.New("relay queue is full")
	errRelaySendQ      = errors.New("relay item exceeds the maximum sendq")
	errRelayEmptyText  = errors.New("relay text is empty")
	errRelayNoTarget   = errors.New("relay item has no target and no channels are configured")
	errConnectionEnded = errors.New("connection closed by the server")
)

// Config Errors
var (
	ErrNicknameMissing     = errors.New("nickname missing")
	ErrNicknameInvalid     = errors.New("nickname contains forbidden characters")
	ErrServerMissing       = errors.New("server missing")
	ErrPortInvalid         = errors.New("port must be between 1 and 65535")
	ErrChannelInvalid      = errors.New("channel names must not be empty or contain spaces or commas")
	ErrWebsocketURLInvalid = errors.New("server-websocket must be a ws:// URL")
	ErrRelayListenMissing  = errors.New("relay is enabled but relay.listen is empty")
	ErrDisplayColorInvalid = errors.New("display.color must be auto, always or never")
)
