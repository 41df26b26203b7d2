// Package pypirc renders, writes and checks .pypirc credential files.
package pypirc

import (
	"strings"

	"pypircgen/pkg/models"
)

const (
	// HeaderSection is the section that declares which index sections are active
	HeaderSection = "distutils"
	// IndexServersKey lists the active index sections, whitespace separated
	IndexServersKey = "index-servers"
)

// Build renders the .pypirc contents for every target in tokens that has a
// non-blank token. Targets are emitted in reference order and their
// repository URL always comes from the reference table.
func Build(tokens models.CredentialSet) string {
	configured := tokens.Configured()

	var b strings.Builder
	b.WriteString("[" + HeaderSection + "]\n")
	b.WriteString(IndexServersKey + " =\n")
	for _, t := range configured {
		b.WriteString("    " + t.Name + "\n")
	}

	for _, t := range configured {
		token, _ := tokens.Token(t.Name)
		b.WriteString("\n")
		b.WriteString("[" + t.Name + "]\n")
		b.WriteString("repository = " + t.RepositoryURL + "\n")
		b.WriteString("username = " + models.TokenUsername + "\n")
		b.WriteString("password = " + token + "\n")
	}

	return b.String()
}
