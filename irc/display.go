// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ergochat/irc-go/ircfmt"
	"golang.org/x/term"

	"github.com/relaybot/relaybot/irc/logger"
)

// EventKind says which dispatcher branch produced an Event.
type EventKind int

const (
	EventRaw EventKind = iota
	EventMOTD
	EventNotice
	EventServerNotice
	EventPrivmsg
	EventDiagnostic
)

// Event is something the dispatcher wants shown or relayed.
type Event struct {
	Kind    EventKind
	Target  string // channel or nick for NOTICE/PRIVMSG
	Source  string // short source: nick or server name
	Command string
	Params  []string
	Text    string
}

// String renders the event as a plain display line.
func (e Event) String() string {
	switch e.Kind {
	case EventMOTD, EventDiagnostic:
		return e.Text
	case EventServerNotice:
		return "NOTICE: " + e.Text
	case EventNotice:
		return fmt.Sprintf("%s %s NOTICE: %s", e.Target, e.Source, e.Text)
	case EventPrivmsg:
		return fmt.Sprintf("%s %s: %s", e.Target, e.Source, e.Text)
	default:
		return fmt.Sprintf("%s, %s, [%s]", e.Source, e.Command, strings.Join(e.Params, ", "))
	}
}

// Sink receives display events. Implementations must be safe for
// concurrent use; the read loop and the connection manager both emit.
type Sink interface {
	Display(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Display(e Event) { f(e) }

// MultiSink fans events out to several sinks.
type MultiSink []Sink

func (m MultiSink) Display(e Event) {
	for _, sink := range m {
		sink.Display(e)
	}
}

// LogSink writes events to the log under type "display".
type LogSink struct {
	Logger *logger.Manager
}

func (s LogSink) Display(e Event) {
	if e.Kind == EventDiagnostic {
		s.Logger.Warning("display", e.String())
	} else {
		s.Logger.Info("display", e.String())
	}
}

// ANSI foreground colors used for the prefix and body of each event kind.
const (
	ansiReset = "\x1b[0m"

	fgRed          = 1
	fgYellow       = 3
	fgMagenta      = 5
	fgCyan         = 6
	fgBrightRed    = 9
	fgBrightYellow = 11
)

func ansiFg(color int) string {
	if color < 8 {
		return fmt.Sprintf("\x1b[3%dm", color)
	}
	return fmt.Sprintf("\x1b[9%dm", color-8)
}

// IRC color codes (0-15) to ANSI SGR foreground parameters.
var ircToANSI = [16]string{"97", "30", "34", "32", "91", "31", "35", "33", "93", "92", "36", "96", "94", "95", "90", "37"}

// TerminalSink writes events as colored lines. IRC formatting codes in
// message text become ANSI escapes when color is on and are stripped
// otherwise.
type TerminalSink struct {
	sync.Mutex
	out   io.Writer
	color bool
}

// NewTerminalSink returns a sink writing to out. colorMode is "always",
// "never", or "auto" (color only if out is a terminal).
func NewTerminalSink(out io.Writer, colorMode string) *TerminalSink {
	color := false
	switch colorMode {
	case "always":
		color = true
	case "never":
	default:
		if f, ok := out.(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		}
	}
	return &TerminalSink{out: out, color: color}
}

func (s *TerminalSink) Display(e Event) {
	var prefix, body string
	prefixColor, bodyColor := fgCyan, fgCyan
	switch e.Kind {
	case EventMOTD:
		body, bodyColor = e.Text, fgMagenta
	case EventServerNotice:
		prefix, prefixColor = "NOTICE: ", fgRed
		body, bodyColor = e.Text, fgYellow
	case EventNotice:
		prefix, prefixColor = fmt.Sprintf("%s %s NOTICE: ", e.Target, e.Source), fgBrightRed
		body, bodyColor = e.Text, fgBrightYellow
	case EventPrivmsg:
		prefix, prefixColor = fmt.Sprintf("%s %s: ", e.Target, e.Source), fgBrightRed
		body, bodyColor = e.Text, fgBrightYellow
	case EventDiagnostic:
		prefix, prefixColor = "*** ", fgRed
		body, bodyColor = e.Text, fgRed
	default:
		body = e.String()
	}

	var buf strings.Builder
	if s.color {
		if prefix != "" {
			buf.WriteString(ansiFg(prefixColor))
			buf.WriteString(prefix)
		}
		buf.WriteString(ansiFg(bodyColor))
		buf.WriteString(formatANSI(body, ansiFg(bodyColor)))
		buf.WriteString(ansiReset)
	} else {
		buf.WriteString(prefix)
		buf.WriteString(ircfmt.Strip(body))
	}
	buf.WriteByte('\n')

	s.Lock()
	defer s.Unlock()
	io.WriteString(s.out, buf.String())
}

// formatANSI converts IRC formatting codes in text to ANSI escapes;
// unformatted runs are drawn in the base color.
func formatANSI(text, base string) string {
	chunks := ircfmt.Split(text)
	var buf strings.Builder
	for _, chunk := range chunks {
		if !chunk.IsFormatted() {
			buf.WriteString(base)
			buf.WriteString(chunk.Content)
			continue
		}
		var sgr []string
		if chunk.Bold {
			sgr = append(sgr, "1")
		}
		if chunk.Italic {
			sgr = append(sgr, "3")
		}
		if chunk.Underline {
			sgr = append(sgr, "4")
		}
		if chunk.ReverseColor {
			sgr = append(sgr, "7")
		}
		if chunk.Strikethrough {
			sgr = append(sgr, "9")
		}
		if chunk.ForegroundColor.IsSet && chunk.ForegroundColor.Value < 16 {
			sgr = append(sgr, ircToANSI[chunk.ForegroundColor.Value])
		}
		buf.WriteString(ansiReset)
		buf.WriteString(base)
		if len(sgr) != 0 {
			buf.WriteString("\x1b[" + strings.Join(sgr, ";") + "m")
		}
		buf.WriteString(chunk.Content)
		buf.WriteString(ansiReset)
	}
	return buf.String()
}
