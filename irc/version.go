// Copyright (c) 2020 Shivaram Lingamneni
// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import "fmt"

const (
	// SemVer is the semantic version of relaybot.
	SemVer = "0.3.0-unreleased"
)

var (
	// Ver is the full version of relaybot, used in QUIT messages and --version.
	Ver = fmt.Sprintf("relaybot-%s", SemVer)
	// Commit is the full git hash, if available
	Commit string
)

// initialize version strings (these are set in package main via linker flags)
func SetVersionString(version, commit string) {
	Commit = commit
	if version != "" {
		Ver = fmt.Sprintf("relaybot-%s", version)
	} else if len(Commit) == 40 {
		Ver = fmt.Sprintf("relaybot-%s-%s", SemVer, Commit[:16])
	}
}
