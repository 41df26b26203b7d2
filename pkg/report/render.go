// Package report renders configuration check results for terminals and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"pypircgen/pkg/models"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(name), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", name)
	}
}

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
)

func symbol(severity models.Severity) string {
	switch severity {
	case models.SeveritySuccess:
		return "✅"
	case models.SeverityError:
		return "❌"
	case models.SeverityWarning:
		return "⚠️"
	default:
		return "•"
	}
}

// Line formats a single item as one coloured line of text. Items for a
// target are indented under their "Checking" line.
func Line(item models.ReportItem) string {
	indent := ""
	if item.Target != "" {
		indent = "  "
		if item.Severity != models.SeverityInfo || item.Probe {
			indent = "     "
		}
	}
	text := fmt.Sprintf("%s%s %s", indent, symbol(item.Severity), item.Message)

	switch item.Severity {
	case models.SeveritySuccess:
		return successColor.Sprint(text)
	case models.SeverityError:
		return errorColor.Sprint(text)
	case models.SeverityWarning:
		return warnColor.Sprint(text)
	default:
		return infoColor.Sprint(text)
	}
}

// WriteItem writes one item as text. It is used for incremental output.
func WriteItem(w io.Writer, item models.ReportItem) error {
	_, err := fmt.Fprintln(w, Line(item))
	return err
}

// Render writes the whole report in format
func Render(w io.Writer, r *models.ValidationReport, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, item := range r.Items {
			if err := WriteItem(w, item); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", r.Count(models.SeverityError), r.Count(models.SeverityWarning))
		return err
	}
}
