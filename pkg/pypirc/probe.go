package pypirc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pypircgen/pkg/models"
)

const (
	// DefaultProbeTimeout bounds a single verification request
	DefaultProbeTimeout = 10 * time.Second

	// IndexMarker is expected in the body of a simple index page
	IndexMarker = "Simple Index"

	maxProbeBody = 1 << 20
)

// Outcome is the classified result of a single probe
type Outcome struct {
	Severity   models.Severity
	Message    string
	StatusCode int
}

// Prober verifies credentials by reading a target's simple index with Basic auth
type Prober struct {
	httpClient *http.Client
	lookup     func(name string) (models.TargetDefinition, bool)
}

// NewProber creates a prober whose requests time out after timeout
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return NewProberWithClient(client, models.LookupTarget)
}

// NewProberWithClient creates a prober with a custom client and target lookup
func NewProberWithClient(client *http.Client, lookup func(string) (models.TargetDefinition, bool)) *Prober {
	if lookup == nil {
		lookup = models.LookupTarget
	}
	return &Prober{httpClient: client, lookup: lookup}
}

// VerificationURL returns the URL probed for target, if the target should be
// probed with these credentials at all
func (p *Prober) VerificationURL(target, username, token string) (string, bool) {
	if token == "" || username != models.TokenUsername {
		return "", false
	}
	def, ok := p.lookup(target)
	if !ok || def.VerificationURL == "" {
		return "", false
	}
	return def.VerificationURL, true
}

// Probe issues exactly one authenticated GET for target. Callers check
// VerificationURL first; an ineligible target yields an info outcome.
func (p *Prober) Probe(ctx context.Context, target, username, token string) Outcome {
	url, ok := p.VerificationURL(target, username, token)
	if !ok {
		return Outcome{Severity: models.SeverityInfo, Message: fmt.Sprintf("Skipped live check for %s", target)}
	}

	ctx, span := otel.Tracer("pypircgen/pypirc").Start(ctx, "pypirc.probe")
	defer span.End()
	span.SetAttributes(
		attribute.String("pypirc.target", target),
		attribute.String("http.url", url),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{Severity: models.SeverityError, Message: fmt.Sprintf("Failed to connect to %s: %v", target, err)}
	}
	req.SetBasicAuth(username, token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{Severity: models.SeverityError, Message: fmt.Sprintf("Failed to connect to %s: %v", target, err)}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return Outcome{
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("Failed to authenticate with %s: HTTP %d", target, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("Failed to read response from %s: %v", target, err),
			StatusCode: resp.StatusCode,
		}
	}

	if strings.Contains(string(body), IndexMarker) {
		return Outcome{
			Severity:   models.SeveritySuccess,
			Message:    fmt.Sprintf("Successfully authenticated and connected to %s", target),
			StatusCode: resp.StatusCode,
		}
	}
	return Outcome{
		Severity:   models.SeverityWarning,
		Message:    fmt.Sprintf("Connected to %s, but did not find '%s'", target, IndexMarker),
		StatusCode: resp.StatusCode,
	}
}
