// Package policy turns a scorer prediction into a terminal adjudication
// decision, the associated amounts, and the recommended follow-up actions.
package policy

import (
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/model"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
)

// Config holds the adjudication thresholds and amount factors. These are
// policy constants, not model properties, and are injected from
// configuration.
type Config struct {
	// ApproveThreshold auto-approves at or above this probability.
	ApproveThreshold float64 `yaml:"approve_threshold" mapstructure:"approve_threshold"`
	// DenyThreshold auto-denies at or below this probability.
	DenyThreshold float64 `yaml:"deny_threshold" mapstructure:"deny_threshold"`
	// ApprovalFactor is the fraction of the claimed total paid out on
	// auto-approval.
	ApprovalFactor float64 `yaml:"approval_factor" mapstructure:"approval_factor"`
	// EstimateBase and EstimateStep shape the cost estimate
	// total * (base + class * step) for claims with a cost class.
	EstimateBase float64 `yaml:"estimate_base" mapstructure:"estimate_base"`
	EstimateStep float64 `yaml:"estimate_step" mapstructure:"estimate_step"`

	// Recommendation rule thresholds.
	LowProbThreshold    float64 `yaml:"low_prob_threshold" mapstructure:"low_prob_threshold"`
	HighAmountThreshold float64 `yaml:"high_amount_threshold" mapstructure:"high_amount_threshold"`
	ManyItemsThreshold  int     `yaml:"many_items_threshold" mapstructure:"many_items_threshold"`
	FastTrackThreshold  float64 `yaml:"fast_track_threshold" mapstructure:"fast_track_threshold"`
}

// DefaultConfig returns the production policy constants.
func DefaultConfig() Config {
	return Config{
		ApproveThreshold:    0.85,
		DenyThreshold:       0.15,
		ApprovalFactor:      0.95,
		EstimateBase:        0.5,
		EstimateStep:        0.1,
		LowProbThreshold:    0.3,
		HighAmountThreshold: 50000,
		ManyItemsThreshold:  10,
		FastTrackThreshold:  0.8,
	}
}

// Outcome is the policy's verdict for one claim.
type Outcome struct {
	Decision           model.Decision
	Status             model.Status
	ApprovalAmount     *float64
	EstimatedCost      *float64
	RecommendedActions []string
}

// Policy applies threshold rules to scorer predictions.
type Policy struct {
	cfg Config
}

// New creates a Policy.
func New(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// Decide maps a prediction onto one of the three terminal decision states.
// Both boundaries are inclusive: exactly ApproveThreshold approves, exactly
// DenyThreshold denies.
func (p *Policy) Decide(pred scorer.Prediction, claim *model.Claim) Outcome {
	out := Outcome{}
	prob := pred.ApprovalProbability

	switch {
	case prob >= p.cfg.ApproveThreshold:
		out.Decision = model.DecisionAutoApprove
		out.Status = model.StatusApproved
	case prob <= p.cfg.DenyThreshold:
		out.Decision = model.DecisionAutoDeny
		out.Status = model.StatusDenied
	default:
		out.Decision = model.DecisionManualReview
		out.Status = model.StatusProcessing
	}

	if out.Decision == model.DecisionAutoApprove {
		amount := claim.TotalAmount * p.cfg.ApprovalFactor
		out.ApprovalAmount = &amount
		out.EstimatedCost = &amount
	} else if pred.CostClass >= 0 {
		estimate := claim.TotalAmount * (p.cfg.EstimateBase + float64(pred.CostClass)*p.cfg.EstimateStep)
		out.EstimatedCost = &estimate
	}
	// Auto-deny with no cost class carries no estimate.

	out.RecommendedActions = p.recommend(prob, claim)

	zap.L().Debug("policy: decision made",
		zap.String("claim_id", claim.ID),
		zap.String("decision", string(out.Decision)),
		zap.Float64("probability", prob),
	)
	return out
}

// recommend evaluates the independent, non-exclusive recommendation rules
// in fixed order; every matching rule appends its actions.
func (p *Policy) recommend(prob float64, claim *model.Claim) []string {
	var actions []string

	if prob < p.cfg.LowProbThreshold {
		actions = append(actions,
			"Review medical necessity documentation",
			"Verify diagnosis codes accuracy",
		)
	}
	if claim.TotalAmount > p.cfg.HighAmountThreshold {
		actions = append(actions,
			"Conduct additional financial review",
			"Verify provider credentials",
		)
	}
	if len(claim.Items) > p.cfg.ManyItemsThreshold {
		actions = append(actions, "Review for potential unbundling")
	}
	if !claim.EligibilityVerified {
		actions = append(actions, "Verify patient eligibility with NPHIES")
	}
	if prob > p.cfg.FastTrackThreshold {
		actions = append(actions, "Consider for fast-track processing")
	}

	return actions
}
