package pipeline

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Fadil369/Nphies-pro/internal/features"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
)

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) Score(ctx context.Context, v features.Vector) (scorer.Prediction, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(scorer.Prediction), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, ref string) (map[string]any, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func testClock() func() time.Time {
	return func() time.Time { return fixedNow }
}

func fhirClaimDoc() map[string]any {
	return map[string]any{
		"resourceType": "Claim",
		"id":           "claim-001",
		"meta": map[string]any{
			"versionId": "1",
			"tag": []any{
				map[string]any{"system": "http://brainsait.com/tenant-id", "code": "tenant-a"},
			},
		},
		"identifier": []any{
			map[string]any{"value": "CLM-2024-001"},
		},
		"patient":  map[string]any{"reference": "Patient/p-100"},
		"provider": map[string]any{"reference": "Practitioner/dr-7"},
		"total":    map[string]any{"value": 12000.0},
		"billablePeriod": map[string]any{
			"start": "2024-05-01",
			"end":   "2024-05-03",
		},
		"diagnosis": []any{
			map[string]any{
				"type": []any{
					map[string]any{"coding": []any{map[string]any{"code": "principal"}}},
				},
				"diagnosisCodeableConcept": map[string]any{
					"coding": []any{
						map[string]any{"code": "J45.0", "system": "ICD-10", "display": "Asthma"},
					},
				},
			},
		},
		"item": []any{
			map[string]any{
				"productOrService": map[string]any{
					"coding": []any{
						map[string]any{"code": "83600-00-10", "system": "SBS", "display": "Consultation"},
					},
				},
				"quantity":     map[string]any{"value": 1.0},
				"unitPrice":    map[string]any{"value": 12000.0},
				"net":          map[string]any{"value": 12000.0},
				"servicedDate": "2024-05-01",
			},
		},
	}
}

func fhirPatientResource() map[string]any {
	return map[string]any{
		"id":        "p-100",
		"birthDate": "1985-04-12",
		"gender":    "female",
		"identifier": []any{
			map[string]any{"system": "http://nphies.sa/identifier/national-id", "value": "1023456789"},
		},
		"name": []any{
			map[string]any{"given": []any{"Sara"}, "family": "Alghamdi"},
		},
	}
}

func fhirPractitionerResource() map[string]any {
	return map[string]any{
		"id": "dr-7",
		"name": []any{
			map[string]any{"text": "Dr. Khalid Omar"},
		},
		"identifier": []any{
			map[string]any{"system": "http://scfhs.sa/license", "value": "LIC-4455"},
		},
	}
}
