package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

func TestFraudRisk(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	item := func(code string, total float64) model.ClaimItem {
		return model.ClaimItem{
			Sequence:      1,
			ProcedureCode: model.ProcedureCode{Code: code},
			Quantity:      1,
			TotalAmount:   total,
		}
	}

	tests := []struct {
		name  string
		claim *model.Claim
		want  float64
	}{
		{
			name: "clean weekday claim",
			claim: &model.Claim{
				TotalAmount:   1000,
				ServicePeriod: model.ServicePeriod{Start: monday},
				Items:         []model.ClaimItem{item("A", 1000)},
			},
			want: 0,
		},
		{
			name: "weekend alone is not suspicious",
			claim: &model.Claim{
				TotalAmount:   1000,
				ServicePeriod: model.ServicePeriod{Start: saturday},
				Items:         []model.ClaimItem{item("A", 1000)},
			},
			want: 0,
		},
		{
			name: "weekend with high amount",
			claim: &model.Claim{
				TotalAmount:   60000,
				ServicePeriod: model.ServicePeriod{Start: saturday},
				Items:         []model.ClaimItem{item("A", 60000)},
			},
			want: 0.4,
		},
		{
			name: "duplicate procedure codes",
			claim: &model.Claim{
				TotalAmount:   2000,
				ServicePeriod: model.ServicePeriod{Start: monday},
				Items:         []model.ClaimItem{item("A", 1000), item("A", 1000)},
			},
			want: 0.3,
		},
		{
			name: "item totals disagree with claim total",
			claim: &model.Claim{
				TotalAmount:   10000,
				ServicePeriod: model.ServicePeriod{Start: monday},
				Items:         []model.ClaimItem{item("A", 2000)},
			},
			want: 0.3,
		},
		{
			name: "no items means no mismatch signal",
			claim: &model.Claim{
				TotalAmount:   10000,
				ServicePeriod: model.ServicePeriod{Start: monday},
			},
			want: 0,
		},
		{
			name: "signals accumulate",
			claim: &model.Claim{
				TotalAmount:   60000,
				ServicePeriod: model.ServicePeriod{Start: saturday},
				Items:         []model.ClaimItem{item("A", 1000), item("A", 1000)},
			},
			want: 1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, fraudRisk(tc.claim, 50000), 1e-9)
		})
	}
}
