// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import "time"

const (
	// MaxLineLen is the protocol limit for one line, including the CR-LF.
	MaxLineLen = 512

	// relay intake lines are not bound by the IRC limit; they are
	// sanitized down to it before being sent
	maxRelayInputLen = 4096

	defaultReconnectDelay = 10 * time.Second
	defaultKeepAlive      = 30 * time.Second
	defaultDialTimeout    = 30 * time.Second
	quitTimeout           = 3 * time.Second
)

// Numerics and verbs handled by the dispatcher.
const (
	RPL_WELCOME       = "001"
	RPL_MOTD          = "372"
	RPL_MOTDSTART     = "375"
	RPL_ENDOFMOTD     = "376"
	ERR_NOMOTD        = "422"
	ERR_NICKNAMEINUSE = "433"

	CmdError   = "ERROR"
	CmdJoin    = "JOIN"
	CmdKick    = "KICK"
	CmdNick    = "NICK"
	CmdNotice  = "NOTICE"
	CmdPart    = "PART"
	CmdPass    = "PASS"
	CmdPing    = "PING"
	CmdPong    = "PONG"
	CmdPrivmsg = "PRIVMSG"
	CmdQuit    = "QUIT"
	CmdUser    = "USER"
)
