// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"errors"
	"fmt"
	"strings"
)

// 001 <nick> :<text>
// the server tells us which nickname it actually registered
func welcomeHandler(d *Dispatcher, msg *Message) error {
	if nick := msg.Param(0); nick != "" && nick != "*" {
		d.session.SetNick(nick)
	}
	return rawHandler(d, msg)
}

// 375
func motdStartHandler(d *Dispatcher, msg *Message) error {
	return nil
}

// 372 <nick> :- <text>
func motdHandler(d *Dispatcher, msg *Message) error {
	params := msg.AllParams()
	d.sink.Display(Event{
		Kind:    EventMOTD,
		Source:  SourceNick(msg.Source),
		Command: msg.Command,
		Text:    params[len(params)-1],
	})
	return nil
}

// 376 / 422
// either ends the handshake: join the configured channels
func endOfMotdHandler(d *Dispatcher, msg *Message) error {
	for _, channel := range d.config.Channels {
		if err := d.writer.SendTrailing(CmdJoin, channel); err != nil {
			if errors.Is(err, ErrLineTooLong) {
				d.logger.Error("registration", "cannot join", channel, err.Error())
				continue
			}
			return err
		}
	}
	d.session.setState(StateRegistered)
	nick := d.session.Nick()
	d.logger.Info("registration", "registered as", nick)
	if d.OnRegistered != nil {
		d.OnRegistered(nick)
	}
	return nil
}

// 433 * <nick> :Nickname is already in use
func nickInUseHandler(d *Dispatcher, msg *Message) error {
	nick := d.session.bumpNick()
	d.logger.Info("registration", "nickname in use, retrying as", nick)
	return d.writer.SendCommand(CmdNick, nick)
}

// PING [<token>]
func pingHandler(d *Dispatcher, msg *Message) error {
	params := msg.AllParams()
	if len(params) == 0 {
		return d.writer.SendCommand(CmdPong)
	}
	return d.writer.SendTrailing(CmdPong, params[0])
}

// PRIVMSG <target> :<text>
func privmsgHandler(d *Dispatcher, msg *Message) error {
	params := msg.AllParams()
	d.sink.Display(Event{
		Kind:    EventPrivmsg,
		Target:  params[0],
		Source:  SourceNick(msg.Source),
		Command: msg.Command,
		Text:    params[1],
	})
	return nil
}

// NOTICE <target> :<text>
// before registration servers address notices to *
func noticeHandler(d *Dispatcher, msg *Message) error {
	params := msg.AllParams()
	kind := EventNotice
	if params[0] == "*" {
		kind = EventServerNotice
	}
	d.sink.Display(Event{
		Kind:    kind,
		Target:  params[0],
		Source:  SourceNick(msg.Source),
		Command: msg.Command,
		Text:    params[1],
	})
	return nil
}

// NICK <newnick>
func nickHandler(d *Dispatcher, msg *Message) error {
	if d.session.IsNick(SourceNick(msg.Source)) {
		d.session.SetNick(msg.Param(0))
	}
	return rawHandler(d, msg)
}

// JOIN <channel>
func joinHandler(d *Dispatcher, msg *Message) error {
	if d.session.IsNick(SourceNick(msg.Source)) {
		for _, channel := range strings.Split(msg.Param(0), ",") {
			d.session.addChannel(channel)
		}
	}
	return rawHandler(d, msg)
}

// PART <channel>[,<channel>] [:<reason>]
func partHandler(d *Dispatcher, msg *Message) error {
	if d.session.IsNick(SourceNick(msg.Source)) {
		for _, channel := range strings.Split(msg.Param(0), ",") {
			d.session.removeChannel(channel)
		}
	}
	return rawHandler(d, msg)
}

// KICK <channel> <nick> [:<reason>]
func kickHandler(d *Dispatcher, msg *Message) error {
	if d.session.IsNick(msg.Param(1)) {
		d.session.removeChannel(msg.Param(0))
	}
	return rawHandler(d, msg)
}

// ERROR :<reason>
// the server is about to close the link
func errorHandler(d *Dispatcher, msg *Message) error {
	reason := msg.Param(0)
	d.logger.Warning("connect", "server sent ERROR", reason)
	d.sink.Display(Event{
		Kind:    EventDiagnostic,
		Source:  SourceNick(msg.Source),
		Command: msg.Command,
		Text:    fmt.Sprintf("server error: %s", reason),
	})
	return nil
}

// everything without dedicated handling
func rawHandler(d *Dispatcher, msg *Message) error {
	d.sink.Display(Event{
		Kind:    EventRaw,
		Source:  SourceNick(msg.Source),
		Command: msg.Command,
		Params:  msg.AllParams(),
	})
	return nil
}
