//go:build plan9

// Copyright (c) 2020 Shivaram Lingamneni
// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package utils

import (
	"os"
	"syscall"
)

var (
	// ExitSignals are the signals the bot quits on.
	// (no SIGQUIT on plan9)
	ExitSignals = []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}

	// no SIGHUP on plan9
	RehashSignals []os.Signal
)
