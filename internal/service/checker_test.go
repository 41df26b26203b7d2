package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypircgen/pkg/models"
	"pypircgen/pkg/pypirc"
)

func newTestServices(t *testing.T, prober *pypirc.Prober) (*Generator, *Checker, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writer := pypirc.NewWriter(fs, func() (string, error) { return "/home/user", nil }, "")
	generator := NewGenerator(writer, nil)
	return generator, NewChecker(generator, fs, prober, nil), fs
}

func TestChecker_MissingFile(t *testing.T) {
	_, checker, _ := newTestServices(t, nil)

	report := checker.Run(context.Background(), CheckOptions{})

	assert.Equal(t, "/home/user/.pypirc", report.Path)
	assert.Equal(t, 1, report.Count(models.SeverityError))
	assert.True(t, report.HasErrors())
}

func TestChecker_StreamsItemsInOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<title>Simple Index</title>"))
	}))
	defer ts.Close()
	prober := pypirc.NewProberWithClient(ts.Client(), func(name string) (models.TargetDefinition, bool) {
		return models.TargetDefinition{Name: name, VerificationURL: ts.URL}, true
	})

	generator, checker, _ := newTestServices(t, prober)
	_, err := generator.Generate(context.Background(), "test", models.NewCredentialSet(validToken, validToken))
	require.NoError(t, err)

	var items []models.ReportItem
	for item := range checker.Start(context.Background(), CheckOptions{}) {
		items = append(items, item)
	}

	require.NotEmpty(t, items)
	assert.Equal(t, models.SeveritySuccess, items[0].Severity)
	assert.Contains(t, items[0].Message, "/home/user/.pypirc")
	assert.Equal(t, "Auth config check complete.", items[len(items)-1].Message)

	var probeSuccesses int
	for _, item := range items {
		assert.NotEqual(t, models.SeverityError, item.Severity, item.Message)
		if item.Probe && item.Severity == models.SeveritySuccess {
			probeSuccesses++
		}
	}
	assert.Equal(t, 2, probeSuccesses)
}

func TestChecker_SkipProbe(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer ts.Close()
	prober := pypirc.NewProberWithClient(ts.Client(), func(name string) (models.TargetDefinition, bool) {
		return models.TargetDefinition{Name: name, VerificationURL: ts.URL}, true
	})

	generator, checker, _ := newTestServices(t, prober)
	_, err := generator.Generate(context.Background(), "test", models.NewCredentialSet(validToken, ""))
	require.NoError(t, err)

	report := checker.Run(context.Background(), CheckOptions{SkipProbe: true})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, report.Count(models.SeverityError))
	assert.Equal(t, 0, report.Count(models.SeverityWarning))
}
