//go:build windows

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
	ExitSignals = []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}

	// no SIGHUP on windows
	RehashSignals []os.Signal
)
