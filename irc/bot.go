// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/relaybot/relaybot/irc/logger"
)

// Bot owns the connection to the IRC server: it connects, runs the read
// loop until the connection fails, and reconnects from scratch after
// a fixed delay. Nothing but the configuration survives a reconnect.
type Bot struct {
	config *Config
	logger *logger.Manager
	sink   Sink
	relay  *Relay // may be nil

	dial func(ctx context.Context) (IRCConn, error)

	// OnRegistered, if set, is called each time a connection registers.
	OnRegistered func(nick string)
}

// NewBot returns a bot for config. relay may be nil.
func NewBot(config *Config, logger *logger.Manager, sink Sink, relay *Relay) *Bot {
	bot := &Bot{
		config: config,
		logger: logger,
		sink:   sink,
		relay:  relay,
	}
	bot.dial = func(ctx context.Context) (IRCConn, error) {
		return dialIRC(ctx, config)
	}
	return bot
}

// Run connects and reconnects until ctx is done, then returns nil.
func (bot *Bot) Run(ctx context.Context) error {
	for {
		err := bot.runConnection(ctx)
		if ctx.Err() != nil {
			return nil
		}
		bot.logger.Warning("connect", "connection to", bot.config.Address(), "lost", err.Error())
		bot.diagnostic(fmt.Sprintf("disconnected: %s; reconnecting in %v", err.Error(), bot.config.ReconnectDelay))

		timer := time.NewTimer(bot.config.ReconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// runConnection runs one full connection lifecycle and returns why it ended.
func (bot *Bot) runConnection(ctx context.Context) (err error) {
	bot.logger.Info("connect", "connecting to", bot.config.Address())
	conn, err := bot.dial(ctx)
	if err != nil {
		return fmt.Errorf("could not connect: %w", err)
	}
	bot.logger.Info("connect", "connected to", conn.RemoteAddr())

	session := NewSession(bot.config.Nickname)
	writer := NewWriter(conn, bot.logger)
	dispatcher := NewDispatcher(bot.config.DispatchConfig(), session, writer, bot.sink, bot.logger)
	dispatcher.OnRegistered = bot.OnRegistered

	done := make(chan struct{})
	var wg sync.WaitGroup

	// on shutdown, say goodbye and give the server a moment to close the link
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		if err := writer.SendTrailing(CmdQuit, Ver); err != nil {
			bot.logger.Debug("connect", "could not send QUIT", err.Error())
		}
		select {
		case <-done:
		case <-time.After(quitTimeout):
		}
		conn.Close()
	}()

	if bot.relay != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.relay.pump(session, writer, done)
		}()
	}

	err = dispatcher.Start()
	if err == nil {
		err = bot.readLoop(conn, dispatcher)
	}

	close(done)
	conn.Close()
	wg.Wait()
	return err
}

// readLoop frames, parses and dispatches records until the connection fails.
// Framing and parse errors are reported and skipped.
func (bot *Bot) readLoop(conn IRCConn, dispatcher *Dispatcher) error {
	for {
		line, err := conn.ReadLine()
		if errors.Is(err, ErrLineTooLong) {
			bot.logger.Warning("parse", "discarded overlong line from server")
			bot.diagnostic("discarded overlong line from server")
			continue
		} else if err == io.EOF {
			return errConnectionEnded
		} else if err != nil {
			return err
		}

		if bot.logger.IsLoggingRawIO() {
			bot.logger.Debug("userinput", line)
		}

		msg, err := ParseLine(line)
		if err != nil {
			bot.logger.Warning("parse", err.Error(), line)
			bot.diagnostic(fmt.Sprintf("could not parse line %q: %s", line, err.Error()))
			continue
		}

		if err := dispatcher.Dispatch(&msg); err != nil {
			if errors.Is(err, ErrLineTooLong) {
				bot.logger.Error("parse", "reply to", msg.Command, err.Error())
				continue
			}
			return err
		}
	}
}

func (bot *Bot) diagnostic(text string) {
	bot.sink.Display(Event{
		Kind: EventDiagnostic,
		Text: text,
	})
}
