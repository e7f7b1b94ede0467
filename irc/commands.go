// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"strings"

	"github.com/relaybot/relaybot/irc/logger"
)

// Command represents a command received from the server that we react to.
type Command struct {
	handler func(d *Dispatcher, msg *Message) error
	// preRegOnly commands are only acted on while awaiting the welcome;
	// afterwards they are treated like any unknown command
	preRegOnly bool
	minParams  int
	maxParams  int // 0 for no limit
}

// Commands holds every command with dedicated handling; everything else
// goes to rawHandler. Parameter counts include the trailing parameter.
var Commands map[string]Command

func init() {
	Commands = map[string]Command{
		RPL_WELCOME: {
			handler:   welcomeHandler,
			minParams: 1,
		},
		RPL_MOTD: {
			handler:   motdHandler,
			minParams: 1,
		},
		RPL_MOTDSTART: {
			handler: motdStartHandler,
		},
		RPL_ENDOFMOTD: {
			handler:    endOfMotdHandler,
			preRegOnly: true,
		},
		ERR_NOMOTD: {
			handler:    endOfMotdHandler,
			preRegOnly: true,
		},
		ERR_NICKNAMEINUSE: {
			handler:    nickInUseHandler,
			preRegOnly: true,
		},
		CmdError: {
			handler: errorHandler,
		},
		CmdJoin: {
			handler:   joinHandler,
			minParams: 1,
		},
		CmdKick: {
			handler:   kickHandler,
			minParams: 2,
		},
		CmdNick: {
			handler:   nickHandler,
			minParams: 1,
		},
		CmdNotice: {
			handler:   noticeHandler,
			minParams: 2,
			maxParams: 2,
		},
		CmdPart: {
			handler:   partHandler,
			minParams: 1,
		},
		CmdPing: {
			handler:   pingHandler,
			maxParams: 1,
		},
		CmdPrivmsg: {
			handler:   privmsgHandler,
			minParams: 2,
			maxParams: 2,
		},
	}
}

// DispatchConfig is the part of the configuration the dispatcher needs.
type DispatchConfig struct {
	Nickname string
	Username string
	Realname string
	Password string
	Channels []string
}

// Dispatcher reacts to parsed messages for one connection: it replies
// through the Writer, updates the Session, and reports to the Sink.
type Dispatcher struct {
	config  DispatchConfig
	session *Session
	writer  *Writer
	sink    Sink
	logger  *logger.Manager

	// OnRegistered, if set, is called once the handshake completes.
	OnRegistered func(nick string)
}

// NewDispatcher returns a dispatcher for a fresh connection.
func NewDispatcher(config DispatchConfig, session *Session, writer *Writer, sink Sink, logger *logger.Manager) *Dispatcher {
	return &Dispatcher{
		config:  config,
		session: session,
		writer:  writer,
		sink:    sink,
		logger:  logger,
	}
}

// Start begins the registration handshake. USER is sent here and never
// again on this connection.
func (d *Dispatcher) Start() error {
	if d.config.Password != "" {
		if err := d.writer.SendCommand(CmdPass, d.config.Password); err != nil {
			return err
		}
	}
	if err := d.writer.SendCommand(CmdNick, d.session.Nick()); err != nil {
		return err
	}
	if err := d.writer.SendTrailing(CmdUser, d.config.Realname, d.config.Username, "0", "*"); err != nil {
		return err
	}
	d.session.setState(StateAwaitingWelcome)
	return nil
}

// Dispatch runs the handler for msg. The returned error is a write error
// from replying; protocol conditions are never errors.
func (d *Dispatcher) Dispatch(msg *Message) error {
	cmd, exists := Commands[strings.ToUpper(msg.Command)]
	if !exists || !cmd.usable(d.session, msg) {
		return rawHandler(d, msg)
	}
	return cmd.handler(d, msg)
}

func (cmd *Command) usable(session *Session, msg *Message) bool {
	if cmd.preRegOnly && session.State() != StateAwaitingWelcome {
		return false
	}
	count := len(msg.Params)
	if msg.HasTrailing {
		count++
	}
	if count < cmd.minParams {
		return false
	}
	if cmd.maxParams != 0 && count > cmd.maxParams {
		return false
	}
	return true
}
