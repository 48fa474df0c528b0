package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/features"
	"github.com/Fadil369/Nphies-pro/internal/metrics"
	"github.com/Fadil369/Nphies-pro/internal/pipeline"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
	"github.com/Fadil369/Nphies-pro/pkg/fhirstore"
)

// initPipeline builds the processing pipeline from configuration: the FHIR
// reference resolver (when a store URL is configured), the baseline scorer,
// the optional provider experience table, and the metrics aggregator.
func initPipeline() (*pipeline.Pipeline, error) {
	var resolver fhirstore.Resolver
	if cfg.FhirStore.BaseURL != "" {
		resolver = fhirstore.NewClient(
			cfg.FhirStore.BaseURL,
			cfg.FhirStore.Token,
			fhirstore.WithRateLimit(cfg.FhirStore.RequestsPerSec, cfg.FhirStore.Burst),
		)
		zap.L().Info("fhir store resolver enabled", zap.String("base_url", cfg.FhirStore.BaseURL))
	} else {
		zap.L().Debug("CLAIMS_FHIR_STORE_BASE_URL not set, FHIR reference resolution disabled")
	}

	opts := []pipeline.Option{}
	if cfg.Features.ExperienceTablePath != "" {
		table, err := features.LoadTable(cfg.Features.ExperienceTablePath)
		if err != nil {
			return nil, eris.Wrap(err, "load experience table")
		}
		opts = append(opts, pipeline.WithExperienceLookup(table))
	}

	sc := scorer.NewBaseline(cfg.Scorer)
	agg := metrics.New(cfg.Metrics)

	return pipeline.New(cfg, resolver, sc, agg, opts...), nil
}
