package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fadil369/Nphies-pro/internal/compliance"
	"github.com/Fadil369/Nphies-pro/internal/config"
	"github.com/Fadil369/Nphies-pro/internal/metrics"
	"github.com/Fadil369/Nphies-pro/internal/model"
	"github.com/Fadil369/Nphies-pro/internal/pipeline"
	"github.com/Fadil369/Nphies-pro/internal/policy"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
)

func testPipeline() *pipeline.Pipeline {
	c := &config.Config{
		Policy:     policy.DefaultConfig(),
		Compliance: compliance.DefaultConfig(),
		Metrics:    metrics.DefaultConfig(),
		Scorer:     scorer.DefaultBaselineConfig(),
		Fraud:      config.FraudConfig{RiskThreshold: 0.7},
	}
	sc := scorer.NewBaseline(c.Scorer)
	return pipeline.New(c, nil, sc, metrics.New(c.Metrics))
}

const sbsBody = `{
	"billing_standard": "SBS",
	"claim_id": "sbs-api-1",
	"claim_number": "CLM-1",
	"nphies_claim_id": "NPH-1",
	"patient_info": {"patient_id": "p-1", "national_id": "1023456789", "name_en": "Sara"},
	"provider_info": {"provider_id": "prov-1", "license_number": "LIC-1"},
	"total_amount": 1200.0,
	"eligibility_verified": true,
	"primary_diagnosis": {"code": "J45.0"}
}`

func TestServeMuxHealth(t *testing.T) {
	mux := newServeMux(testPipeline())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeMuxProcessClaim(t *testing.T) {
	p := testPipeline()
	mux := newServeMux(p)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", strings.NewReader(sbsBody))
	req.Header.Set("X-Tenant-ID", "tenant-api")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result model.ClaimResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "sbs-api-1", result.ClaimID)
	assert.NotEmpty(t, result.Decision)
	assert.NotEmpty(t, result.ProcessingNotes)

	// The header tenant owns the metrics.
	assert.Equal(t, 1, p.Metrics("tenant-api").ClaimsToday)
}

func TestServeMuxProcessInvalidBody(t *testing.T) {
	mux := newServeMux(testPipeline())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMuxProcessMalformedClaim(t *testing.T) {
	mux := newServeMux(testPipeline())

	body := strings.Replace(sbsBody, `"nphies_claim_id": "NPH-1",`,
		`"nphies_claim_id": "NPH-1", "service_start_date": "01/05/2024",`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServeMuxTenantMetrics(t *testing.T) {
	p := testPipeline()
	mux := newServeMux(p)

	// Process one claim first so the tenant exists.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", strings.NewReader(sbsBody))
	req.Header.Set("X-Tenant-ID", "tenant-m")
	mux.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/tenant/tenant-m/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var m model.ClaimMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "tenant-m", m.TenantID)
	assert.Equal(t, 1, m.ClaimsToday)
}

func TestServeMuxTenantMetricsUnknownTenant(t *testing.T) {
	mux := newServeMux(testPipeline())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/tenant/nobody/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var m model.ClaimMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 0, m.ClaimsToday)
}
