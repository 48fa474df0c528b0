// Package pipeline wires format detection, normalization, feature
// extraction, scoring, decision policy, compliance validation and metrics
// into the claim processing flow.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/compliance"
	"github.com/Fadil369/Nphies-pro/internal/config"
	"github.com/Fadil369/Nphies-pro/internal/features"
	"github.com/Fadil369/Nphies-pro/internal/format"
	"github.com/Fadil369/Nphies-pro/internal/metrics"
	"github.com/Fadil369/Nphies-pro/internal/model"
	"github.com/Fadil369/Nphies-pro/internal/normalize"
	"github.com/Fadil369/Nphies-pro/internal/policy"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
	"github.com/Fadil369/Nphies-pro/pkg/fhirstore"
)

// Pipeline processes raw claim documents end to end. Invocations are
// independent and safe to run concurrently; the metrics aggregator is the
// only shared state.
type Pipeline struct {
	cfg        *config.Config
	detector   *format.Detector
	normalizer *normalize.Normalizer
	extractor  *features.Extractor
	scorer     scorer.Scorer
	policy     *policy.Policy
	validator  *compliance.Validator
	metrics    *metrics.Aggregator
	now        func() time.Time
	lookup     features.ExperienceLookup
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the time source, threaded through to the normalizer,
// extractor and validator.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithExperienceLookup overrides the provider experience source.
func WithExperienceLookup(l features.ExperienceLookup) Option {
	return func(p *Pipeline) {
		p.lookup = l
	}
}

// New creates a Pipeline. The resolver may be nil when FHIR inputs are not
// expected; the scorer and aggregator are required.
func New(cfg *config.Config, resolver fhirstore.Resolver, sc scorer.Scorer, agg *metrics.Aggregator, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		scorer:  sc,
		metrics: agg,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	featOpts := []features.Option{features.WithClock(p.now)}
	if p.lookup != nil {
		featOpts = append(featOpts, features.WithExperienceLookup(p.lookup))
	}

	p.detector = format.NewDetector()
	p.normalizer = normalize.New(resolver, normalize.WithClock(p.now))
	p.extractor = features.New(featOpts...)
	p.policy = policy.New(cfg.Policy)
	p.validator = compliance.New(cfg.Compliance, compliance.WithClock(p.now))
	return p
}

// Process runs one raw claim document through the full pipeline. The
// metrics update is the final step and is skipped entirely when ctx is
// already cancelled, so cancellation never leaves a tenant's aggregate
// partially updated.
func (p *Pipeline) Process(ctx context.Context, tenantID string, raw map[string]any) (*model.ClaimResult, error) {
	start := p.now()

	kind := p.detector.Detect(raw)
	log := zap.L().With(
		zap.String("tenant_id", tenantID),
		zap.String("format", string(kind)),
	)

	claim, err := p.normalizer.Normalize(ctx, raw, kind)
	if err != nil {
		log.Warn("pipeline: normalization failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: normalize claim")
	}
	if tenantID != "" {
		claim.TenantID = tenantID
	}
	log = log.With(zap.String("claim_id", claim.ID))

	if err := claim.Validate(); err != nil {
		return nil, eris.Wrap(err, "pipeline: claim invariants")
	}

	vector := p.extractor.Extract(claim)

	pred, err := p.scorer.Score(ctx, vector)
	if err != nil {
		log.Error("pipeline: scorer failed", zap.Error(err))
		return nil, eris.Wrapf(scorer.ErrUnavailable, "pipeline: score claim %s: %v", claim.ID, err)
	}

	outcome := p.policy.Decide(pred, claim)
	flags := p.validator.Validate(claim)
	fraudScore := fraudRisk(claim, p.cfg.Policy.HighAmountThreshold)

	elapsed := p.now().Sub(start)
	notes := []string{
		fmt.Sprintf("Processed with %.1f%% approval confidence", pred.ApprovalProbability*100),
		fmt.Sprintf("Processing time: %dms", elapsed.Milliseconds()),
	}
	highFraud := fraudScore >= p.cfg.Fraud.RiskThreshold
	if highFraud {
		notes = append(notes, fmt.Sprintf("High fraud risk score %.2f", fraudScore))
	}

	if flags == nil {
		flags = []string{}
	}
	actions := outcome.RecommendedActions
	if actions == nil {
		actions = []string{}
	}

	result := &model.ClaimResult{
		ClaimID:            claim.ID,
		Status:             outcome.Status,
		Decision:           outcome.Decision,
		ConfidenceScore:    pred.ApprovalProbability,
		RecommendedActions: actions,
		EstimatedCost:      outcome.EstimatedCost,
		ApprovalAmount:     outcome.ApprovalAmount,
		ComplianceFlags:    flags,
		ProcessingNotes:    notes,
	}

	log.Info("pipeline: claim processed",
		zap.String("decision", string(result.Decision)),
		zap.Float64("confidence", result.ConfidenceScore),
		zap.Int("compliance_flags", len(flags)),
		zap.Int64("elapsed_ms", elapsed.Milliseconds()),
	)

	// Metrics last: all or nothing under cancellation.
	if ctx.Err() != nil {
		log.Warn("pipeline: invocation cancelled, metrics update skipped")
		return result, nil
	}
	p.metrics.Update(claim.TenantID, result, elapsed)
	if highFraud {
		p.metrics.RecordFraud(claim.TenantID)
	}

	return result, nil
}

// Metrics returns the tenant metrics snapshot for observability callers.
func (p *Pipeline) Metrics(tenantID string) model.ClaimMetrics {
	return p.metrics.Snapshot(tenantID)
}
