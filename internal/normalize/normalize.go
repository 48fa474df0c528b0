// Package normalize converts raw claim documents from every supported
// source format into the canonical model.Claim. One conversion routine per
// format; all of them are pure apart from FHIR reference resolution.
package normalize

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/model"
	"github.com/Fadil369/Nphies-pro/pkg/fhirstore"
)

// ConversionError reports a structurally required field that was absent or
// malformed for the detected format.
type ConversionError struct {
	Field  string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed on %q: %s", e.Field, e.Reason)
}

// convErr builds a ConversionError for a field.
func convErr(field, format string, args ...any) error {
	return &ConversionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// convertFunc converts one raw document of a known format.
type convertFunc func(ctx context.Context, raw map[string]any) (*model.Claim, error)

// Normalizer converts detected raw documents into canonical claims.
//
// Parse policy: a value that is present but malformed always fails with a
// ConversionError; a value that is absent and optional takes the documented
// per-format default. Nothing silently wraps to the epoch on a parse error.
type Normalizer struct {
	resolver fhirstore.Resolver
	now      func() time.Time
	byKind   map[model.FormatKind]convertFunc
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// New creates a Normalizer. The resolver is only used by the FHIR path and
// may be nil when FHIR inputs are not expected.
func New(resolver fhirstore.Resolver, opts ...Option) *Normalizer {
	n := &Normalizer{
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.byKind = map[model.FormatKind]convertFunc{
		model.FormatFhirR4: n.fromFhir,
		model.FormatHl7v2:  n.fromHl7v2,
		model.FormatSbs:    n.fromSbs,
		model.FormatCustom: n.fromCustom,
	}
	return n
}

// Normalize converts raw into a canonical claim for the given format kind.
func (n *Normalizer) Normalize(ctx context.Context, raw map[string]any, kind model.FormatKind) (*model.Claim, error) {
	convert, ok := n.byKind[kind]
	if !ok {
		return nil, eris.Errorf("normalize: unsupported format %q", kind)
	}

	claim, err := convert(ctx, raw)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("normalize: claim converted",
		zap.String("format", string(kind)),
		zap.String("claim_id", claim.ID),
		zap.Int("items", len(claim.Items)),
	)
	return claim, nil
}
