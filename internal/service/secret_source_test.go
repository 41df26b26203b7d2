package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

var secretKeys = map[string]string{"pypi": "pypi", "testpypi": "testpypi"}

func TestSecretTokenSource_Tokens(t *testing.T) {
	fakeK8sClient := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "pypi-credentials", Namespace: "ci"},
		Data: map[string][]byte{
			"pypi": []byte(validToken),
		},
	})

	source := NewSecretTokenSource(fakeK8sClient, "default", secretKeys, nil)
	tokens, err := source.Tokens(context.Background(), "ci/pypi-credentials")
	require.NoError(t, err)

	token, ok := tokens.Token("pypi")
	assert.True(t, ok)
	assert.Equal(t, validToken, token)
	_, ok = tokens.Token("testpypi")
	assert.False(t, ok)
}

func TestSecretTokenSource_DefaultNamespace(t *testing.T) {
	fakeK8sClient := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "creds", Namespace: "default"},
		Data: map[string][]byte{
			"test-token": []byte("tok"),
		},
	})

	source := NewSecretTokenSource(fakeK8sClient, "", map[string]string{"testpypi": "test-token"}, nil)
	tokens, err := source.Tokens(context.Background(), "creds")
	require.NoError(t, err)
	assert.Equal(t, "tok", tokens["testpypi"])
}

func TestSecretTokenSource_Errors(t *testing.T) {
	source := NewSecretTokenSource(fake.NewSimpleClientset(), "default", secretKeys, nil)

	_, err := source.Tokens(context.Background(), "missing")
	assert.Error(t, err)
	_, err = source.Tokens(context.Background(), "ns/")
	assert.Error(t, err)

	_, err = NewSecretTokenSource(nil, "default", secretKeys, nil).Tokens(context.Background(), "creds")
	assert.ErrorContains(t, err, "kubernetes client is not configured")
}
