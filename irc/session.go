// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"sort"
	"strings"
	"sync"
)

// SessionState is the registration state of a connection.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateAwaitingWelcome
	StateRegistered
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitingWelcome:
		return "awaiting-welcome"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// Session is the state of a single connection. It is created with the
// configured nickname and discarded when the connection drops; the read
// loop and the relay pump both read it, so all access is locked.
type Session struct {
	sync.Mutex

	nickname string
	state    SessionState
	channels map[string]bool

	// closed when the session becomes registered
	registeredC    chan struct{}
	registeredOnce sync.Once
}

// NewSession returns a session in StateConnecting.
func NewSession(nickname string) *Session {
	return &Session{
		nickname:    nickname,
		channels:    make(map[string]bool),
		registeredC: make(chan struct{}),
	}
}

// Nick returns the current nickname.
func (session *Session) Nick() string {
	session.Lock()
	defer session.Unlock()
	return session.nickname
}

// SetNick replaces the current nickname.
func (session *Session) SetNick(nick string) {
	session.Lock()
	defer session.Unlock()
	session.nickname = nick
}

// bumpNick appends an underscore to the nickname and returns the result.
func (session *Session) bumpNick() string {
	session.Lock()
	defer session.Unlock()
	session.nickname += "_"
	return session.nickname
}

// IsNick reports whether nick is our current nickname (ASCII case-insensitive).
func (session *Session) IsNick(nick string) bool {
	return strings.EqualFold(nick, session.Nick())
}

// State returns the registration state.
func (session *Session) State() SessionState {
	session.Lock()
	defer session.Unlock()
	return session.state
}

func (session *Session) setState(state SessionState) {
	session.Lock()
	session.state = state
	session.Unlock()
	if state == StateRegistered {
		session.registeredOnce.Do(func() { close(session.registeredC) })
	}
}

// Registered reports whether the registration handshake has completed.
func (session *Session) Registered() bool {
	return session.State() == StateRegistered
}

// RegisteredChan returns a channel that is closed once the session registers.
func (session *Session) RegisteredChan() <-chan struct{} {
	return session.registeredC
}

func (session *Session) addChannel(name string) {
	session.Lock()
	defer session.Unlock()
	session.channels[strings.ToLower(name)] = true
}

func (session *Session) removeChannel(name string) {
	session.Lock()
	defer session.Unlock()
	delete(session.channels, strings.ToLower(name))
}

// Channels returns the joined channels, sorted.
func (session *Session) Channels() (result []string) {
	session.Lock()
	defer session.Unlock()
	for name := range session.channels {
		result = append(result, name)
	}
	sort.Strings(result)
	return
}

// InChannel reports whether the server confirmed our join to name.
func (session *Session) InChannel(name string) bool {
	session.Lock()
	defer session.Unlock()
	return session.channels[strings.ToLower(name)]
}
