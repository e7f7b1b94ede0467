// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircutils"

	"github.com/relaybot/relaybot/irc/logger"
	"github.com/relaybot/relaybot/irc/utils"
)

// RelayItem is one line an external producer wants said in a channel.
type RelayItem struct {
	Target string // empty for every configured channel
	Text   string
}

func (item RelayItem) size() int {
	return len(item.Target) + len(item.Text)
}

// Relay queues externally produced lines and sends them as PRIVMSG once
// a connection is registered. Text too long for one line is wrapped. The queue outlives individual connections;
// items wait in it across reconnects.
type Relay struct {
	sync.Mutex
	queuedBytes int

	items    chan RelayItem
	maxSendQ int
	channels []string
	logger   *logger.Manager
}

// NewRelay returns a relay holding at most queueLength items and
// maxSendQ bytes of text. channels are the default targets.
func NewRelay(queueLength, maxSendQ int, channels []string, logger *logger.Manager) *Relay {
	return &Relay{
		items:    make(chan RelayItem, queueLength),
		maxSendQ: maxSendQ,
		channels: append([]string(nil), channels...),
		logger:   logger,
	}
}

// Enqueue adds a line to the queue without blocking.
func (relay *Relay) Enqueue(target, text string) error {
	item := RelayItem{Target: target, Text: text}
	if strings.TrimSpace(text) == "" {
		return errRelayEmptyText
	}
	if target == "" && len(relay.channels) == 0 {
		return errRelayNoTarget
	}

	relay.Lock()
	defer relay.Unlock()
	if relay.queuedBytes+item.size() > relay.maxSendQ {
		return errRelaySendQ
	}
	select {
	case relay.items <- item:
		relay.queuedBytes += item.size()
		return nil
	default:
		return errRelayQueueFull
	}
}

// Len returns the number of queued items.
func (relay *Relay) Len() int {
	return len(relay.items)
}

func (relay *Relay) dequeued(item RelayItem) {
	relay.Lock()
	relay.queuedBytes -= item.size()
	relay.Unlock()
}

// pump sends queued items through writer after session registers, until
// done is closed. It runs alongside the read loop for one connection.
func (relay *Relay) pump(session *Session, writer *Writer, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-session.RegisteredChan():
	}

	for {
		select {
		case <-done:
			return
		case item := <-relay.items:
			relay.dequeued(item)
			if err := relay.send(writer, item); err != nil {
				relay.logger.Warning("relay", "could not send relay item", err.Error())
				if !errors.Is(err, ErrLineTooLong) {
					// the connection is going away; keep the item for the next one
					if err := relay.Enqueue(item.Target, item.Text); err != nil {
						relay.logger.Warning("relay", "dropped item", err.Error())
					}
					return
				}
			}
		}
	}
}

func (relay *Relay) send(writer *Writer, item RelayItem) error {
	targets := relay.channels
	if item.Target != "" {
		targets = []string{item.Target}
	}
	for _, target := range targets {
		// PRIVMSG <target> :<text>\r\n
		budget := MaxLineLen - len(CmdPrivmsg) - len(target) - 5
		if budget < utf8.UTFMax {
			return fmt.Errorf("%w: no room for text to %s", ErrLineTooLong, target)
		}
		for _, line := range utils.WordWrap(item.Text, budget) {
			line = strings.TrimRight(ircutils.SanitizeText(line, budget), " ")
			if line == "" {
				continue
			}
			if err := writer.SendTrailing(CmdPrivmsg, line, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseRelayLine splits an intake line into target and text. A line whose
// first word is a channel name is addressed to that channel.
func parseRelayLine(line string) RelayItem {
	line = strings.TrimLeft(line, " ")
	if len(line) != 0 && strings.IndexByte("#&+!", line[0]) != -1 {
		if space := strings.IndexByte(line, ' '); space != -1 {
			return RelayItem{Target: line[:space], Text: line[space+1:]}
		}
	}
	return RelayItem{Text: line}
}

// Serve accepts intake connections on listener until ctx is done.
// Each connection sends lines of the form "[#channel ]text".
func (relay *Relay) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.handleIntake(ctx, conn)
		}()
	}
}

func (relay *Relay) handleIntake(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	remote := conn.RemoteAddr().String()
	relay.logger.Debug("relay", "intake connection from", remote)
	reader := NewLineReader(conn, maxRelayInputLen)
	for {
		line, err := reader.ReadLine()
		if err == io.EOF {
			return
		} else if errors.Is(err, ErrLineTooLong) {
			relay.logger.Warning("relay", remote, "intake line too long")
			fmt.Fprintf(conn, "ERROR %s\r\n", err.Error())
			continue
		} else if err != nil {
			relay.logger.Debug("relay", remote, err.Error())
			return
		}
		item := parseRelayLine(line)
		if err := relay.Enqueue(item.Target, item.Text); err != nil {
			relay.logger.Warning("relay", remote, "dropped item", err.Error())
			fmt.Fprintf(conn, "ERROR %s\r\n", err.Error())
		}
	}
}
