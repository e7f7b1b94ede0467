//go:build !(plan9 || solaris)

// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package flock

import (
	"errors"

	"github.com/gofrs/flock"
)

var (
	CouldntAcquire = errors.New("Couldn't acquire flock (is another relaybot running with this config?)")
)

// TryAcquireFlock takes an exclusive lock on path without blocking.
// An empty path means no locking was configured.
func TryAcquireFlock(path string) (fl Flocker, err error) {
	if path == "" {
		return &noopFlocker{}, nil
	}
	f := flock.New(path)
	success, err := f.TryLock()
	if err != nil {
		return nil, err
	} else if !success {
		return nil, CouldntAcquire
	}
	return f, nil
}
