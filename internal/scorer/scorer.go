// Package scorer defines the adjudication scoring contract and a
// deterministic baseline implementation. The pipeline places no constraint
// on a scorer's internals beyond the numeric contract, so any model or
// rule engine can serve it.
package scorer

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Fadil369/Nphies-pro/internal/features"
)

// ErrUnavailable marks scorer failures. Fatal to the individual claim;
// the caller may retry the whole pipeline invocation.
var ErrUnavailable = eris.New("scorer unavailable")

// NoCostClass is the cost class of a claim predicted for denial.
const NoCostClass = -1

// Prediction is a scorer's output for one claim.
type Prediction struct {
	// ApprovalProbability is in [0, 1].
	ApprovalProbability float64 `json:"approval_probability"`
	// CostClass is a severity class in 0..4, or NoCostClass for denials.
	CostClass int `json:"cost_class"`
}

// Scorer produces an approval probability and cost class from a feature
// vector. Implementations may block on I/O and must honor ctx.
type Scorer interface {
	Score(ctx context.Context, v features.Vector) (Prediction, error)
}
