// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

var (
	crlf = []byte{'\r', '\n'}

	// IRCv3 websocket subprotocols; we only speak text
	wsSubprotocols = []string{"text.ircv3.net"}
)

// IRCConn abstracts away the distinction between a TCP stream
// and a websocket. It doesn't expose Read because websockets are
// message-oriented, not stream-oriented.
type IRCConn interface {
	// ReadLine returns the next record without its terminator.
	ReadLine() (line string, err error)
	// Write writes one complete line, including its CR-LF.
	Write([]byte) error
	RemoteAddr() string
	Close() error
}

// IRCStreamConn is an IRCConn over a regular stream connection.
type IRCStreamConn struct {
	conn   net.Conn
	reader *LineReader
}

func NewIRCStreamConn(conn net.Conn) *IRCStreamConn {
	return &IRCStreamConn{
		conn:   conn,
		reader: NewLineReader(conn, MaxLineLen),
	}
}

func (cc *IRCStreamConn) ReadLine() (string, error) {
	return cc.reader.ReadLine()
}

func (cc *IRCStreamConn) Write(buf []byte) (err error) {
	_, err = cc.conn.Write(buf)
	return
}

func (cc *IRCStreamConn) RemoteAddr() string {
	return cc.conn.RemoteAddr().String()
}

func (cc *IRCStreamConn) Close() error {
	return cc.conn.Close()
}

// IRCWSConn is an IRCConn over a websocket; each text frame is one record.
type IRCWSConn struct {
	conn *websocket.Conn
}

func NewIRCWSConn(conn *websocket.Conn) *IRCWSConn {
	return &IRCWSConn{conn: conn}
}

func (wc *IRCWSConn) ReadLine() (string, error) {
	for {
		messageType, line, err := wc.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		// binary frames and empty messages are skipped
		if messageType != websocket.TextMessage {
			continue
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			continue
		}
		if len(line) > MaxLineLen-len(crlf) {
			return "", ErrLineTooLong
		}
		return decodeLine(line), nil
	}
}

func (wc *IRCWSConn) Write(buf []byte) error {
	buf = bytes.TrimSuffix(buf, crlf)
	// there's not much we can do about this;
	// silently drop the message
	if !utf8.Valid(buf) {
		return nil
	}
	return wc.conn.WriteMessage(websocket.TextMessage, buf)
}

func (wc *IRCWSConn) RemoteAddr() string {
	return wc.conn.RemoteAddr().String()
}

func (wc *IRCWSConn) Close() error {
	return wc.conn.Close()
}

// dialIRC opens a connection to the configured server: a websocket when
// server-websocket is set, plain TCP otherwise.
func dialIRC(ctx context.Context, config *Config) (IRCConn, error) {
	if config.ServerWebsocket != "" {
		dialer := websocket.Dialer{
			HandshakeTimeout: defaultDialTimeout,
			Subprotocols:     wsSubprotocols,
		}
		conn, _, err := dialer.DialContext(ctx, config.ServerWebsocket, nil)
		if err != nil {
			return nil, err
		}
		return NewIRCWSConn(conn), nil
	}

	dialer := net.Dialer{
		Timeout:   defaultDialTimeout,
		KeepAlive: config.keepAlive,
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(config.Server, strconv.Itoa(config.Port)))
	if err != nil {
		return nil, err
	}
	return NewIRCStreamConn(conn), nil
}
