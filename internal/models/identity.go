package models

import "strings"

// Identity is a GitHub login. Using a named type keeps the bot check in one
// place instead of re-implementing the match at every ingestion point.
type Identity string

// botFragments are matched case-insensitively as substrings of the login.
var botFragments = []string{
	"[bot]",
	"dependabot",
	"renovate",
	"github-actions",
	"codecov",
	"copilot",
	"snyk",
}

// IsBot reports whether the identity looks like an automation account.
// Bot identities are excluded from every count, tally and reviewer set.
func (i Identity) IsBot() bool {
	login := strings.ToLower(string(i))
	for _, fragment := range botFragments {
		if strings.Contains(login, fragment) {
			return true
		}
	}
	return false
}

// String returns the raw login.
func (i Identity) String() string {
	return string(i)
}
