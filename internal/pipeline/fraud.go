package pipeline

import (
	"math"
	"time"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// fraudRisk scores a normalized claim for fraud indicators on a [0,1]
// scale. The heuristics are additive and deterministic: a weekend service
// start combined with a high amount, duplicate procedure codes across
// items, and item totals that disagree with the claim total each raise
// the score.
func fraudRisk(claim *model.Claim, highAmount float64) float64 {
	var score float64

	wd := claim.ServicePeriod.Start.Weekday()
	weekend := wd == time.Saturday || wd == time.Sunday
	if weekend && claim.TotalAmount > highAmount {
		score += 0.4
	}

	seen := make(map[string]int)
	for _, item := range claim.Items {
		seen[item.ProcedureCode.Code]++
	}
	for code, n := range seen {
		if code != "" && n > 1 {
			score += 0.3
			break
		}
	}

	if len(claim.Items) > 0 {
		var itemTotal float64
		for _, item := range claim.Items {
			itemTotal += item.TotalAmount
		}
		if claim.TotalAmount > 0 && math.Abs(itemTotal-claim.TotalAmount) > claim.TotalAmount*0.25 {
			score += 0.3
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
