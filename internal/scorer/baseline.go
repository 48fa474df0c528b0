package scorer

import (
	"context"
	"math"

	"github.com/Fadil369/Nphies-pro/internal/features"
)

// BaselineConfig holds the weights of the rule-based baseline scorer.
type BaselineConfig struct {
	// BaseProbability anchors the score before adjustments.
	BaseProbability float64 `yaml:"base_probability" mapstructure:"base_probability"`
	// AmountScale normalizes claim amounts; claims at or above it take
	// the full amount penalty.
	AmountScale      float64 `yaml:"amount_scale" mapstructure:"amount_scale"`
	AmountWeight     float64 `yaml:"amount_weight" mapstructure:"amount_weight"`
	ExperienceWeight float64 `yaml:"experience_weight" mapstructure:"experience_weight"`
	ComplexityWeight float64 `yaml:"complexity_weight" mapstructure:"complexity_weight"`
	// CostClassFloor is the probability under which no cost class is
	// assigned.
	CostClassFloor float64 `yaml:"cost_class_floor" mapstructure:"cost_class_floor"`
}

// DefaultBaselineConfig mirrors the probability shape the original demo
// model was trained on.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		BaseProbability:  0.8,
		AmountScale:      100000,
		AmountWeight:     0.3,
		ExperienceWeight: 0.2,
		ComplexityWeight: 0.1,
		CostClassFloor:   0.15,
	}
}

// Baseline is a deterministic weighted-heuristic scorer. It serves the CLI
// and tests when no external model is wired in.
type Baseline struct {
	cfg BaselineConfig
}

// NewBaseline creates a baseline scorer.
func NewBaseline(cfg BaselineConfig) *Baseline {
	return &Baseline{cfg: cfg}
}

// Score computes the probability from amount, provider experience and
// procedure complexity, clamped to [0, 1].
func (b *Baseline) Score(ctx context.Context, v features.Vector) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	amountRatio := 0.0
	if b.cfg.AmountScale > 0 {
		amountRatio = math.Min(v[features.IdxTotalAmount]/b.cfg.AmountScale, 1)
	}
	experienceRatio := math.Min(v[features.IdxProviderExperience]/20, 1)
	complexityRatio := math.Min(v[features.IdxProcedureComplexity]/10, 1)

	prob := b.cfg.BaseProbability -
		amountRatio*b.cfg.AmountWeight +
		experienceRatio*b.cfg.ExperienceWeight -
		complexityRatio*b.cfg.ComplexityWeight
	prob = math.Max(0, math.Min(1, prob))

	return Prediction{
		ApprovalProbability: prob,
		CostClass:           b.costClass(prob, amountRatio),
	}, nil
}

// costClass buckets the claim amount into five severity classes, or
// NoCostClass when the probability sits under the floor.
func (b *Baseline) costClass(prob, amountRatio float64) int {
	if prob < b.cfg.CostClassFloor {
		return NoCostClass
	}
	class := int(amountRatio * 5)
	if class > 4 {
		class = 4
	}
	return class
}
