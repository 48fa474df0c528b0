package features

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

var testNow = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC) // a Monday

func testClaim() *model.Claim {
	return &model.Claim{
		ID:          "claim-1",
		TotalAmount: 1500,
		Patient: model.Patient{
			ID:          "pt-1",
			DateOfBirth: time.Date(1984, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		Provider: model.Provider{ID: "pr-1", LicenseNumber: "LIC-1"},
		Items: []model.ClaimItem{
			{Sequence: 1}, {Sequence: 2}, {Sequence: 3},
		},
		SecondaryDiagnoses: []model.DiagnosisCode{
			{Code: "E11.9"}, {Code: "I10"},
		},
		ServicePeriod: model.ServicePeriod{
			Start: time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC), // Monday
			End:   time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestExtract(t *testing.T) {
	e := New(WithClock(func() time.Time { return testNow }))
	v := e.Extract(testClaim())

	assert.Equal(t, 1500.0, v[IdxTotalAmount])
	assert.InDelta(t, 40.0, v[IdxPatientAge], 0.1)
	assert.Equal(t, 5.0, v[IdxProcedureComplexity], "items + secondary diagnoses")
	assert.Equal(t, 3.0, v[IdxDiagnosisCount], "secondary + 1")
	assert.Equal(t, 3.0, v[IdxServiceDuration], "inclusive day count")
	assert.Zero(t, v[IdxWeekendService])
	assert.Zero(t, v[IdxEmergencyService])
	assert.Zero(t, v[IdxFollowUp])

	assert.GreaterOrEqual(t, v[IdxProviderExperience], 1.0)
	assert.LessOrEqual(t, v[IdxProviderExperience], 20.0)
	assert.GreaterOrEqual(t, v[IdxPriorClaims], 0.0)
	assert.LessOrEqual(t, v[IdxPriorClaims], 9.0)
}

func TestExtractWeekendService(t *testing.T) {
	claim := testClaim()
	claim.ServicePeriod.Start = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // Saturday
	claim.ServicePeriod.End = claim.ServicePeriod.Start

	e := New(WithClock(func() time.Time { return testNow }))
	v := e.Extract(claim)
	assert.Equal(t, 1.0, v[IdxWeekendService])
	assert.Equal(t, 1.0, v[IdxServiceDuration], "single-day service still counts one day")
}

func TestExtractDeterministic(t *testing.T) {
	e := New(WithClock(func() time.Time { return testNow }))
	assert.Equal(t, e.Extract(testClaim()), e.Extract(testClaim()))

	// A second extractor instance must agree: no per-process state.
	e2 := New(WithClock(func() time.Time { return testNow }))
	assert.Equal(t, e.Extract(testClaim()), e2.Extract(testClaim()))
}

func TestExtractZeroBirthDate(t *testing.T) {
	claim := testClaim()
	claim.Patient.DateOfBirth = time.Time{}

	e := New(WithClock(func() time.Time { return testNow }))
	v := e.Extract(claim)
	assert.Zero(t, v[IdxPatientAge])
}

func TestTableLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experience.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  LIC-1: 12\n"), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, table.Experience("pr-1", "LIC-1"))

	// Unknown license falls back to the stable hash range.
	got := table.Experience("pr-x", "LIC-unknown")
	assert.GreaterOrEqual(t, got, 1.0)
	assert.LessOrEqual(t, got, 20.0)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable("/does/not/exist.yaml")
	assert.Error(t, err)
}
