package models

import (
	"regexp"
	"strings"
)

// TokenUsername is the username that tells twine the password field holds an API token
const TokenUsername = "__token__"

// TargetDefinition describes a package index that credentials can be generated for
type TargetDefinition struct {
	Name            string         `json:"name" example:"pypi"`
	RepositoryURL   string         `json:"repository" example:"https://upload.pypi.org/legacy/"`
	VerificationURL string         `json:"verificationUrl" example:"https://pypi.org/simple/"`
	TokenPattern    *regexp.Regexp `json:"-"`
}

// TokenLooksValid reports whether token matches the expected token shape for the target
func (t TargetDefinition) TokenLooksValid(token string) bool {
	if t.TokenPattern == nil {
		return true
	}
	return t.TokenPattern.MatchString(token)
}

var tokenPattern = regexp.MustCompile(`^pypi-[a-zA-Z0-9]{32}`)

// DefaultTargets is the reference table of supported indexes, in reference order.
// It is never mutated after package initialisation.
var DefaultTargets = []TargetDefinition{
	{
		Name:            "pypi",
		RepositoryURL:   "https://upload.pypi.org/legacy/",
		VerificationURL: "https://pypi.org/simple/",
		TokenPattern:    tokenPattern,
	},
	{
		Name:            "testpypi",
		RepositoryURL:   "https://test.pypi.org/legacy/",
		VerificationURL: "https://test.pypi.org/simple/",
		TokenPattern:    tokenPattern,
	},
}

// LookupTarget returns the reference definition for name
func LookupTarget(name string) (TargetDefinition, bool) {
	for _, t := range DefaultTargets {
		if t.Name == name {
			return t, true
		}
	}
	return TargetDefinition{}, false
}

// CredentialSet maps target names to API tokens. Missing or blank entries mean
// the target is not configured.
type CredentialSet map[string]string

// NewCredentialSet builds a set from the two default targets' tokens
func NewCredentialSet(pypiToken, testpypiToken string) CredentialSet {
	return CredentialSet{
		"pypi":     pypiToken,
		"testpypi": testpypiToken,
	}
}

// Token returns the stripped token for name and whether it is present
func (c CredentialSet) Token(name string) (string, bool) {
	token := strings.TrimSpace(c[name])
	return token, token != ""
}

// HasAny reports whether at least one reference target has a token
func (c CredentialSet) HasAny() bool {
	for _, t := range DefaultTargets {
		if _, ok := c.Token(t.Name); ok {
			return true
		}
	}
	return false
}

// Configured returns the reference targets that have a token, in reference order
func (c CredentialSet) Configured() []TargetDefinition {
	var targets []TargetDefinition
	for _, t := range DefaultTargets {
		if _, ok := c.Token(t.Name); ok {
			targets = append(targets, t)
		}
	}
	return targets
}
