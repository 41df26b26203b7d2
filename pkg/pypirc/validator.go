package pypirc

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"pypircgen/pkg/models"
)

// Emit receives report items in the order they are produced
type Emit func(models.ReportItem)

// Validator reads a credential file back and checks it against the reference table
type Validator struct {
	fs     afero.Fs
	prober *Prober
	lookup func(name string) (models.TargetDefinition, bool)
}

// NewValidator creates a validator on fs. A nil prober disables live checks.
func NewValidator(fs afero.Fs, prober *Prober) *Validator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Validator{fs: fs, prober: prober, lookup: models.LookupTarget}
}

// Load parses a .pypirc file the way Python's configparser reads it:
// indented continuation lines, case-insensitive keys, no inline comments.
func Load(data []byte) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, foldContinuations(data))
}

// foldContinuations joins indented lines onto the preceding key line so that
// multi-line values such as index-servers reach the parser as one line.
// Full-line comments are dropped, including indented ones inside a value.
func foldContinuations(data []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isComment(trimmed) {
			continue
		}
		indented := len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
		if indented && trimmed != "" && len(out) > 0 && isKeyLine(out[len(out)-1]) {
			out[len(out)-1] += " " + trimmed
			continue
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n"))
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";")
}

// isKeyLine reports whether line starts a key, with either delimiter
// configparser accepts
func isKeyLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isComment(trimmed) || strings.HasPrefix(trimmed, "[") {
		return false
	}
	return strings.ContainsAny(trimmed, "=:")
}

// Validate checks the file at path and emits every finding through emit.
// Structural problems with the header stop the check; problems with one
// target never stop checks of the others.
func (v *Validator) Validate(ctx context.Context, path string, emit Emit) {
	exists, err := afero.Exists(v.fs, path)
	if err != nil || !exists {
		emit(models.ReportItem{Severity: models.SeverityError, Message: ".pypirc file not found in your home directory."})
		emit(models.ReportItem{Severity: models.SeverityInfo, Message: fmt.Sprintf("Expected at: %s", path)})
		return
	}
	emit(models.ReportItem{Severity: models.SeveritySuccess, Message: fmt.Sprintf("Found .pypirc at: %s", path)})

	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		emit(models.ReportItem{Severity: models.SeverityError, Message: fmt.Sprintf("Failed to read %s: %v", path, err)})
		return
	}
	cfg, err := Load(data)
	if err != nil {
		emit(models.ReportItem{Severity: models.SeverityError, Message: fmt.Sprintf("Failed to parse %s: %v", path, err)})
		return
	}

	header, err := cfg.GetSection(HeaderSection)
	if err != nil || !header.HasKey(IndexServersKey) {
		emit(models.ReportItem{Severity: models.SeverityWarning, Message: fmt.Sprintf("Missing [%s] section or %s list.", HeaderSection, IndexServersKey)})
		return
	}

	servers := strings.Fields(header.Key(IndexServersKey).String())
	if len(servers) == 0 {
		emit(models.ReportItem{Severity: models.SeverityWarning, Message: fmt.Sprintf("No repositories listed under %s.", IndexServersKey)})
		return
	}

	emit(models.ReportItem{Severity: models.SeverityInfo, Message: "Repositories configured:"})
	for _, server := range servers {
		v.checkServer(ctx, cfg, server, emit)
	}

	emit(models.ReportItem{Severity: models.SeveritySuccess, Message: "Auth config check complete."})
}

func (v *Validator) checkServer(ctx context.Context, cfg *ini.File, server string, emit Emit) {
	emit(models.ReportItem{Severity: models.SeverityInfo, Target: server, Message: fmt.Sprintf("Checking [%s]", server)})

	section, err := cfg.GetSection(server)
	if err != nil {
		emit(models.ReportItem{Severity: models.SeverityError, Target: server, Message: fmt.Sprintf("Section [%s] missing.", server)})
		return
	}

	repoURL := section.Key("repository").String()
	user := section.Key("username").String()
	password := section.Key("password").String()

	def, known := v.lookup(server)
	if repoURL == "" || !known || repoURL != def.RepositoryURL {
		expected := def.RepositoryURL
		if !known {
			expected = "<no reference URL for this repository>"
		}
		emit(models.ReportItem{Severity: models.SeverityError, Target: server, Message: fmt.Sprintf("Incorrect or missing 'repository' URL. Expected: %s", expected)})
	}

	if user != models.TokenUsername {
		emit(models.ReportItem{Severity: models.SeverityWarning, Target: server, Message: fmt.Sprintf("username is not '%s': %s", models.TokenUsername, user)})
	}

	if password == "" {
		emit(models.ReportItem{Severity: models.SeverityWarning, Target: server, Message: fmt.Sprintf("No password/token provided for %s", server)})
	} else if known && !def.TokenLooksValid(password) {
		emit(models.ReportItem{Severity: models.SeverityWarning, Target: server, Message: "Password does not match expected token format."})
	}

	if v.prober == nil {
		return
	}
	url, ok := v.prober.VerificationURL(server, user, password)
	if !ok {
		return
	}
	emit(models.ReportItem{Severity: models.SeverityInfo, Target: server, Probe: true, Message: fmt.Sprintf("Attempting to connect to %s", url)})
	outcome := v.prober.Probe(ctx, server, user, password)
	emit(models.ReportItem{Severity: outcome.Severity, Target: server, Probe: true, Message: outcome.Message})
}
