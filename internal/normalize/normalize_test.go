package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

func TestNormalizeUnsupportedKind(t *testing.T) {
	n := New(nil)
	_, err := n.Normalize(context.Background(), map[string]any{}, model.FormatKind("edifact"))
	assert.Error(t, err)
}

// Normalizing the same input twice must yield structurally identical claims.
func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		doc  func() map[string]any
		kind model.FormatKind
	}{
		{"sbs", sbsClaimDoc, model.FormatSbs},
		{"hl7v2", hl7ClaimDoc, model.FormatHl7v2},
		{"fhir", fhirClaimDoc, model.FormatFhirR4},
		{"custom", customClaimDoc, model.FormatCustom},
		{"custom without id", func() map[string]any {
			doc := customClaimDoc()
			delete(doc, "id")
			return doc
		}, model.FormatCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mockResolver{}
			resolver.On("Resolve", mock.Anything, "Patient/p-100").Return(fhirPatientResource(), nil)
			resolver.On("Resolve", mock.Anything, "Practitioner/dr-7").Return(fhirPractitionerResource(), nil)

			n := New(resolver, WithClock(testClock()))

			first, err := n.Normalize(context.Background(), tt.doc(), tt.kind)
			require.NoError(t, err)
			second, err := n.Normalize(context.Background(), tt.doc(), tt.kind)
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestConversionErrorMessage(t *testing.T) {
	err := &ConversionError{Field: "patient.birthDate", Reason: "unparsable date"}
	assert.Contains(t, err.Error(), "patient.birthDate")
	assert.Contains(t, err.Error(), "unparsable date")
}
