// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"fmt"
	"strings"

	"github.com/ergochat/irc-go/ircutils"
)

// Source is the origin of a message: either the server we're connected to
// or another client on the network.
type Source interface {
	// Short returns the name used when displaying the source.
	Short() string
	// String returns the source as it appears on the wire.
	String() string
}

// ServerName is a source that is a server hostname.
type ServerName string

func (s ServerName) Short() string  { return string(s) }
func (s ServerName) String() string { return string(s) }

// ClientIdentity is a source of the form nick!user@host.
type ClientIdentity struct {
	Nick string
	User string
	Host string
}

func (c ClientIdentity) Short() string { return c.Nick }

func (c ClientIdentity) String() string {
	return fmt.Sprintf("%s!%s@%s", c.Nick, c.User, c.Host)
}

// parseSource classifies a source token. Only tokens with a '!' followed
// later by an '@' are client identities.
func parseSource(token string) Source {
	bang := strings.IndexByte(token, '!')
	if bang == -1 || strings.IndexByte(token[bang+1:], '@') == -1 {
		return ServerName(token)
	}
	uh := ircutils.ParseUserhost(token)
	return ClientIdentity{Nick: uh.Nick, User: uh.User, Host: uh.Host}
}

// SourceNick returns the short form of src, or "" for a nil source.
func SourceNick(src Source) string {
	if src == nil {
		return ""
	}
	return src.Short()
}

// Message is one parsed incoming line.
type Message struct {
	Source      Source
	Command     string
	Params      []string
	Trailing    string
	HasTrailing bool
}

// AllParams returns the positional parameters followed by the trailing
// parameter, if there is one.
func (msg *Message) AllParams() []string {
	if !msg.HasTrailing {
		return msg.Params
	}
	result := make([]string, 0, len(msg.Params)+1)
	result = append(result, msg.Params...)
	return append(result, msg.Trailing)
}

// Param returns the i'th parameter (counting the trailing one), or "".
func (msg *Message) Param(i int) string {
	if i < len(msg.Params) {
		return msg.Params[i]
	}
	if i == len(msg.Params) && msg.HasTrailing {
		return msg.Trailing
	}
	return ""
}

// ParseLine parses a single record (without its terminator).
//
// The grammar is `[':' source ' '] command [' ' param]* [' :' trailing]`.
// The first " :" after the command opens the trailing parameter, which runs
// verbatim to the end of the record. Runs of spaces between tokens are
// treated as one separator. Nothing beyond the presence of a command is
// validated.
func ParseLine(line string) (msg Message, err error) {
	if strings.HasPrefix(line, ":") {
		end := strings.IndexByte(line, ' ')
		if end == -1 {
			return msg, fmt.Errorf("%w: source without command", ErrMalformedLine)
		}
		if end == 1 {
			return msg, fmt.Errorf("%w: empty source", ErrMalformedLine)
		}
		msg.Source = parseSource(line[1:end])
		line = line[end+1:]
	}

	line = strings.TrimLeft(line, " ")
	end := strings.IndexByte(line, ' ')
	if end == -1 {
		msg.Command = line
		line = ""
	} else {
		msg.Command = line[:end]
		line = line[end:]
	}
	if msg.Command == "" {
		return msg, fmt.Errorf("%w: missing command", ErrMalformedLine)
	}

	// line is now empty or starts with a space
	if idx := strings.Index(line, " :"); idx != -1 {
		msg.Trailing = line[idx+2:]
		msg.HasTrailing = true
		line = line[:idx]
	}
	for len(line) > 0 {
		line = strings.TrimLeft(line, " ")
		if line == "" {
			break
		}
		end := strings.IndexByte(line, ' ')
		if end == -1 {
			msg.Params = append(msg.Params, line)
			break
		}
		msg.Params = append(msg.Params, line[:end])
		line = line[end:]
	}
	return msg, nil
}

// Outbound is a line to be written to the server. It is always built fresh
// and never shares storage with a parsed Message.
type Outbound struct {
	Source      string // empty for no source
	Command     string
	Params      []string
	Trailing    string
	HasTrailing bool
}

// NewOutbound returns an Outbound with only positional parameters.
func NewOutbound(command string, params ...string) Outbound {
	return Outbound{
		Command: command,
		Params:  append([]string(nil), params...),
	}
}

// NewOutboundTrailing returns an Outbound whose last parameter is trailing.
func NewOutboundTrailing(command string, trailing string, params ...string) Outbound {
	out := NewOutbound(command, params...)
	out.Trailing = trailing
	out.HasTrailing = true
	return out
}

// Line serializes out in wire format, including the CR-LF.
func (out *Outbound) Line() []byte {
	var buf strings.Builder
	if out.Source != "" {
		buf.WriteByte(':')
		buf.WriteString(out.Source)
		buf.WriteByte(' ')
	}
	buf.WriteString(out.Command)
	for _, param := range out.Params {
		buf.WriteByte(' ')
		buf.WriteString(param)
	}
	if out.HasTrailing {
		buf.WriteString(" :")
		buf.WriteString(out.Trailing)
	}
	buf.WriteString("\r\n")
	return []byte(buf.String())
}
