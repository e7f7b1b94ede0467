//go:build !(windows || plan9)

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
		syscall.SIGQUIT,
	}

	// RehashSignals make the bot reload its logging configuration.
	RehashSignals = []os.Signal{
		syscall.SIGHUP,
	}
)
