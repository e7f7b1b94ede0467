// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestIRCStreamConn(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := NewIRCStreamConn(client)
	defer conn.Close()

	go func() {
		server.Write([]byte("PING :one\r\nPING :two\n"))
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		server.Write(buf[:n])
	}()

	for _, expected := range []string{"PING :one", "PING :two"} {
		if line, err := conn.ReadLine(); err != nil || line != expected {
			t.Fatalf("expected %q, got %q, %v", expected, line, err)
		}
	}
	if err := conn.Write([]byte("PONG :two\r\n")); err != nil {
		t.Fatal(err)
	}
	if line, err := conn.ReadLine(); err != nil || line != "PONG :two" {
		t.Errorf("expected the echoed line, got %q, %v", line, err)
	}
	if conn.RemoteAddr() == "" {
		t.Errorf("expected a remote address")
	}
}

// newWSServer starts a websocket endpoint that hands each connection to handle.
func newWSServer(t *testing.T, handle func(*websocket.Conn)) *httptest.Server {
	upgrader := websocket.Upgrader{Subprotocols: wsSubprotocols}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		handle(conn)
	}))
}

func TestIRCWSConn(t *testing.T) {
	received := make(chan string, 1)
	server := newWSServer(t, func(conn *websocket.Conn) {
		if conn.Subprotocol() != "text.ircv3.net" {
			t.Errorf("unexpected subprotocol %q", conn.Subprotocol())
		}
		conn.WriteMessage(websocket.BinaryMessage, []byte("ignored"))
		conn.WriteMessage(websocket.TextMessage, []byte(""))
		conn.WriteMessage(websocket.TextMessage, []byte(":irc.example.net 001 Nick :Welcome\r\n"))
		conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("x", MaxLineLen)))
		conn.WriteMessage(websocket.TextMessage, []byte("PRIVMSG #a :caf\xe9"))
		_, msg, err := conn.ReadMessage()
		if err == nil {
			received <- string(msg)
		}
		// wait for the client to go away
		conn.ReadMessage()
	})
	defer server.Close()

	config, err := ParseConfig([]byte("nickname: Nick\nserver-websocket: ws" + strings.TrimPrefix(server.URL, "http")))
	if err != nil {
		t.Fatal(err)
	}
	conn, err := dialIRC(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, ok := conn.(*IRCWSConn); !ok {
		t.Fatalf("expected a websocket connection, got %T", conn)
	}

	if line, err := conn.ReadLine(); err != nil || line != ":irc.example.net 001 Nick :Welcome" {
		t.Errorf("unexpected first line %q, %v", line, err)
	}
	if _, err := conn.ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Errorf("expected ErrLineTooLong, got %v", err)
	}
	if line, err := conn.ReadLine(); err != nil || line != "PRIVMSG #a :caf\uFFFD" {
		t.Errorf("expected lossy decoding, got %q, %v", line, err)
	}

	// invalid UTF-8 is dropped, valid lines go out as one frame without CR-LF
	if err := conn.Write([]byte("PRIVMSG #a :\xff\r\n")); err != nil {
		t.Errorf("invalid UTF-8 should be dropped silently, got %v", err)
	}
	if err := conn.Write([]byte("NICK Nick\r\n")); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-received:
		if msg != "NICK Nick" {
			t.Errorf("expected NICK Nick, got %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server never received a frame")
	}
}

func TestDialTCP(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			conn.Write([]byte("PING :hi\r\n"))
			conn.Close()
		}
	}()

	config := testBotConfig(t, listener.Addr().(*net.TCPAddr).Port)
	conn, err := dialIRC(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if line, err := conn.ReadLine(); err != nil || line != "PING :hi" {
		t.Errorf("unexpected line %q, %v", line, err)
	}
}
