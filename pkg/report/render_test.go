package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pypircgen/pkg/models"
)

func sampleReport() *models.ValidationReport {
	r := &models.ValidationReport{Path: "/home/user/.pypirc"}
	r.Add(models.ReportItem{Severity: models.SeveritySuccess, Message: "Found .pypirc at: /home/user/.pypirc"})
	r.Add(models.ReportItem{Severity: models.SeverityInfo, Target: "pypi", Message: "Checking [pypi]"})
	r.Add(models.ReportItem{Severity: models.SeverityWarning, Target: "pypi", Message: "Password does not match expected token format."})
	r.Add(models.ReportItem{Severity: models.SeverityError, Target: "pypi", Probe: true, Message: "Failed to authenticate with pypi: HTTP 403"})
	return r
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender_Text(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "✅ Found .pypirc at: /home/user/.pypirc\n")
	assert.Contains(t, out, "  • Checking [pypi]\n")
	assert.Contains(t, out, "     ❌ Failed to authenticate with pypi: HTTP 403\n")
	assert.Contains(t, out, "1 error(s), 1 warning(s)")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatJSON))

	var decoded models.ValidationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Items, 4)
	assert.True(t, decoded.Items[3].Probe)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatYAML))

	var decoded models.ValidationReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/home/user/.pypirc", decoded.Path)
	assert.Equal(t, models.SeverityWarning, decoded.Items[2].Severity)
}
