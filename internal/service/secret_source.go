package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"pypircgen/pkg/models"
)

// SecretTokenSource reads API tokens from a Kubernetes Secret
type SecretTokenSource struct {
	k8sClient        kubernetes.Interface
	defaultNamespace string
	keys             map[string]string
	logger           *slog.Logger
}

// NewSecretTokenSource creates a token source. keys maps target names to the
// secret data keys holding their tokens.
func NewSecretTokenSource(k8sClient kubernetes.Interface, defaultNamespace string, keys map[string]string, logger *slog.Logger) *SecretTokenSource {
	if defaultNamespace == "" {
		defaultNamespace = "default"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SecretTokenSource{
		k8sClient:        k8sClient,
		defaultNamespace: defaultNamespace,
		keys:             keys,
		logger:           logger,
	}
}

// Tokens loads the credential set from ref, written as "name" or "namespace/name".
// Keys absent from the secret leave the target unconfigured.
func (s *SecretTokenSource) Tokens(ctx context.Context, ref string) (models.CredentialSet, error) {
	if s.k8sClient == nil {
		return nil, fmt.Errorf("kubernetes client is not configured to read secret %s", ref)
	}

	namespace, name := s.defaultNamespace, ref
	if ns, n, ok := strings.Cut(ref, "/"); ok {
		namespace, name = ns, n
	}
	if name == "" {
		return nil, fmt.Errorf("invalid secret reference %q", ref)
	}

	secret, err := s.k8sClient.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
	}

	tokens := models.CredentialSet{}
	for target, key := range s.keys {
		if value, ok := secret.Data[key]; ok {
			tokens[target] = string(value)
		} else if value, ok := secret.StringData[key]; ok {
			tokens[target] = value
		}
	}

	s.logger.InfoContext(ctx, "loaded tokens from secret", "namespace", namespace, "name", name, "targets", len(tokens))
	return tokens, nil
}
