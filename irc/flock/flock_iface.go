// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package flock

// Flocker is held for the lifetime of the process. *flock.Flock does not
// implement sync.Locker because its Unlock returns an error.
type Flocker interface {
	Unlock() error
}

type noopFlocker struct{}

func (n *noopFlocker) Unlock() error {
	return nil
}
