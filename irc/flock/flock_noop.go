//go:build plan9 || solaris

// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package flock

// TryAcquireFlock takes no lock on platforms gofrs/flock does not support.
func TryAcquireFlock(path string) (fl Flocker, err error) {
	return &noopFlocker{}, nil
}
