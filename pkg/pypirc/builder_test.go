package pypirc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pypircgen/pkg/models"
)

const validToken = "pypi-abcdefghijklmnopqrstuvwxyzABCDEF"

func TestBuild_SingleTarget(t *testing.T) {
	out := Build(models.NewCredentialSet(validToken, ""))

	expected := "[distutils]\n" +
		"index-servers =\n" +
		"    pypi\n" +
		"\n" +
		"[pypi]\n" +
		"repository = https://upload.pypi.org/legacy/\n" +
		"username = __token__\n" +
		"password = " + validToken + "\n"
	assert.Equal(t, expected, out)
	assert.NotContains(t, out, "testpypi")
}

func TestBuild_BothTargetsInReferenceOrder(t *testing.T) {
	tokens := models.CredentialSet{
		"testpypi": "  test-token  ",
		"pypi":     "prod-token",
	}

	out := Build(tokens)

	pypiIdx := strings.Index(out, "[pypi]")
	testIdx := strings.Index(out, "[testpypi]")
	assert.Greater(t, pypiIdx, 0)
	assert.Greater(t, testIdx, pypiIdx)
	assert.Contains(t, out, "index-servers =\n    pypi\n    testpypi\n")
	assert.Contains(t, out, "password = test-token\n")
	assert.Contains(t, out, "repository = https://test.pypi.org/legacy/\n")
	assert.Equal(t, 2, strings.Count(out, "username = __token__"))
}

func TestBuild_WhitespaceTokensAreAbsent(t *testing.T) {
	out := Build(models.NewCredentialSet("   ", "\t\n"))
	assert.Equal(t, "[distutils]\nindex-servers =\n", out)
}

func TestBuild_IgnoresUnknownTargets(t *testing.T) {
	out := Build(models.CredentialSet{"pypi": "tok", "private": "other"})
	assert.NotContains(t, out, "private")
	assert.Equal(t, 1, strings.Count(out, "username = "))
}

func TestBuild_OneTokenAlwaysOneSection(t *testing.T) {
	for _, target := range models.DefaultTargets {
		t.Run(target.Name, func(t *testing.T) {
			out := Build(models.CredentialSet{target.Name: "some-token"})
			// header plus one target section
			assert.Equal(t, 2, strings.Count(out, "\n["))
			assert.Contains(t, out, "username = "+models.TokenUsername+"\n")
			assert.Contains(t, out, "repository = "+target.RepositoryURL+"\n")
		})
	}
}
