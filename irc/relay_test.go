// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

func TestRelayEnqueueLimits(t *testing.T) {
	relay := NewRelay(2, 20, []string{"#a"}, quietLogger())

	if err := relay.Enqueue("", "   "); err != errRelayEmptyText {
		t.Errorf("expected errRelayEmptyText, got %v", err)
	}
	if err := relay.Enqueue("#a", strings.Repeat("x", 30)); err != errRelaySendQ {
		t.Errorf("expected errRelaySendQ, got %v", err)
	}
	if err := relay.Enqueue("", "0123456789"); err != nil {
		t.Fatal(err)
	}
	if err := relay.Enqueue("", "0123456789"); err != nil {
		t.Fatal(err)
	}
	if err := relay.Enqueue("", "x"); err != errRelaySendQ {
		t.Errorf("expected errRelaySendQ once the byte budget is used, got %v", err)
	}
	if relay.Len() != 2 {
		t.Errorf("expected 2 queued items, got %d", relay.Len())
	}

	relay = NewRelay(1, 1000, []string{"#a"}, quietLogger())
	relay.Enqueue("", "one")
	if err := relay.Enqueue("", "two"); err != errRelayQueueFull {
		t.Errorf("expected errRelayQueueFull, got %v", err)
	}

	relay = NewRelay(1, 1000, nil, quietLogger())
	if err := relay.Enqueue("", "nowhere to go"); err != errRelayNoTarget {
		t.Errorf("expected errRelayNoTarget, got %v", err)
	}
	if err := relay.Enqueue("#x", "explicit target"); err != nil {
		t.Errorf("an explicit target must be accepted without channels, got %v", err)
	}
}

func TestParseRelayLine(t *testing.T) {
	tests := []struct {
		line     string
		expected RelayItem
	}{
		{"hello world", RelayItem{Text: "hello world"}},
		{"#chan hello world", RelayItem{Target: "#chan", Text: "hello world"}},
		{"&local hi", RelayItem{Target: "&local", Text: "hi"}},
		{"#lonely", RelayItem{Text: "#lonely"}},
		{"  #chan  spaced", RelayItem{Target: "#chan", Text: " spaced"}},
	}
	for _, test := range tests {
		if item := parseRelayLine(test.line); item != test.expected {
			t.Errorf("parsing %q: expected %#v, got %#v", test.line, test.expected, item)
		}
	}
}

func TestRelayWrapsAndSanitizes(t *testing.T) {
	conn := new(mockConn)
	writer := NewWriter(conn, quietLogger())
	relay := NewRelay(4, 4096, []string{"#a"}, quietLogger())

	if err := relay.send(writer, RelayItem{Text: "two\r\nlines\x00\n\n"}); err != nil {
		t.Fatal(err)
	}
	assertWrites(t, conn, []string{"PRIVMSG #a :two\r\n", "PRIVMSG #a :lines\r\n"})

	conn = new(mockConn)
	writer = NewWriter(conn, quietLogger())
	if err := relay.send(writer, RelayItem{Target: "#b", Text: strings.Repeat("y", 1000)}); err != nil {
		t.Fatalf("long relay text must be wrapped, got %v", err)
	}
	writes := conn.Writes()
	if len(writes) != 3 || len(writes[0]) != MaxLineLen || len(writes[1]) != MaxLineLen {
		t.Errorf("expected two full-length lines and a remainder, got %q", writes)
	}
	var total int
	for _, line := range writes {
		total += len(line) - len("PRIVMSG #b :\r\n")
	}
	if total != 1000 {
		t.Errorf("expected all 1000 bytes to be sent, got %d", total)
	}

	// a target leaving no room for text is an error, not a silent drop
	conn = new(mockConn)
	writer = NewWriter(conn, quietLogger())
	err := relay.send(writer, RelayItem{Target: "#" + strings.Repeat("c", 500), Text: "hello"})
	if !errors.Is(err, ErrLineTooLong) {
		t.Errorf("expected ErrLineTooLong for an oversized target, got %v", err)
	}
	if len(conn.Writes()) != 0 {
		t.Errorf("nothing should be written for an oversized target, got %q", conn.Writes())
	}
}

func TestRelayPumpWaitsForRegistration(t *testing.T) {
	conn := new(mockConn)
	writer := NewWriter(conn, quietLogger())
	session := NewSession("Nick")
	relay := NewRelay(4, 4096, []string{"#a"}, quietLogger())
	relay.Enqueue("", "first")

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		relay.pump(session, writer, done)
		close(finished)
	}()

	time.Sleep(20 * time.Millisecond)
	if len(conn.Writes()) != 0 {
		t.Fatalf("pump wrote before registration: %q", conn.Writes())
	}
	session.setState(StateRegistered)

	deadline := time.Now().Add(5 * time.Second)
	for len(conn.Writes()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assertWrites(t, conn, []string{"PRIVMSG #a :first\r\n"})

	close(done)
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("pump did not stop")
	}
}

func TestRelayPumpKeepsItemOnWriteFailure(t *testing.T) {
	conn := &mockConn{failErr: errors.New("broken pipe")}
	writer := NewWriter(conn, quietLogger())
	session := NewSession("Nick")
	session.setState(StateRegistered)
	relay := NewRelay(4, 4096, []string{"#a"}, quietLogger())
	relay.Enqueue("", "keep me")

	// the pump gives up on the broken connection and returns by itself
	finished := make(chan struct{})
	go func() {
		relay.pump(session, writer, make(chan struct{}))
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("pump did not return after a write failure")
	}
	if relay.Len() != 1 {
		t.Errorf("expected the item to be requeued, got %d items", relay.Len())
	}
}

func TestRelayServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	relay := NewRelay(4, 4096, []string{"#a"}, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- relay.Serve(ctx, listener) }()

	conn, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	fmt.Fprintf(conn, "#b deploy finished\r\n\r\n%s\nplain\n", strings.Repeat("z", maxRelayInputLen+10))

	// the overlong line is answered with an error
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, "ERROR ") {
		t.Errorf("expected an ERROR reply, got %q", reply)
	}

	deadline := time.Now().Add(5 * time.Second)
	for relay.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	first, second := <-relay.items, <-relay.items
	if first != (RelayItem{Target: "#b", Text: "deploy finished"}) || second != (RelayItem{Text: "plain"}) {
		t.Errorf("unexpected items %#v %#v", first, second)
	}

	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
