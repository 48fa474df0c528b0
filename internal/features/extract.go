// Package features derives the fixed-length numeric feature vector the
// adjudication scorer consumes from a canonical claim.
package features

import (
	"hash/fnv"
	"time"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// Feature indices into a Vector. Order is part of the scorer contract.
const (
	IdxTotalAmount = iota
	IdxPatientAge
	IdxProviderExperience
	IdxProcedureComplexity
	IdxDiagnosisCount
	IdxPriorClaims
	IdxServiceDuration
	IdxWeekendService
	IdxEmergencyService
	IdxFollowUp

	Size = 10
)

// Vector is the fixed-length feature vector for one claim.
type Vector [Size]float64

// ExperienceLookup maps a provider to an experience figure in years.
// Implementations must be deterministic.
type ExperienceLookup interface {
	Experience(providerID, licenseNumber string) float64
}

// Extractor derives feature vectors. Pure and deterministic given the
// claim, the clock and the lookup.
type Extractor struct {
	now        func() time.Time
	experience ExperienceLookup
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// WithExperienceLookup overrides the provider experience source.
func WithExperienceLookup(l ExperienceLookup) Option {
	return func(e *Extractor) {
		e.experience = l
	}
}

// New creates an Extractor. Without an explicit lookup, provider
// experience and prior-claims proxies fall back to a stable FNV-1a
// mapping of the respective identifier, preserving the historical value
// ranges (1-20 years, 0-9 claims) across processes.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		now:        time.Now,
		experience: stableLookup{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract derives the feature vector for a claim.
func (e *Extractor) Extract(claim *model.Claim) Vector {
	now := e.now()

	ageYears := 0.0
	if !claim.Patient.DateOfBirth.IsZero() {
		ageYears = now.Sub(claim.Patient.DateOfBirth).Hours() / 24 / 365.25
	}

	// Inclusive duration in days, minimum one day.
	duration := claim.ServicePeriod.End.Sub(claim.ServicePeriod.Start).Hours()/24 + 1
	if duration < 1 {
		duration = 1
	}

	weekend := 0.0
	switch claim.ServicePeriod.Start.Weekday() {
	case time.Saturday, time.Sunday:
		weekend = 1
	}

	var v Vector
	v[IdxTotalAmount] = claim.TotalAmount
	v[IdxPatientAge] = ageYears
	v[IdxProviderExperience] = e.experience.Experience(claim.Provider.ID, claim.Provider.LicenseNumber)
	v[IdxProcedureComplexity] = float64(len(claim.Items) + len(claim.SecondaryDiagnoses))
	v[IdxDiagnosisCount] = float64(len(claim.SecondaryDiagnoses) + 1)
	v[IdxPriorClaims] = priorClaimsProxy(claim.Patient.ID)
	v[IdxServiceDuration] = duration
	v[IdxWeekendService] = weekend
	// Emergency and follow-up signals are reserved until upstream data
	// carries them.
	v[IdxEmergencyService] = 0
	v[IdxFollowUp] = 0
	return v
}

// stableID hashes an identifier with FNV-1a 32. The hash function is part
// of the feature contract: it must not change without retraining the
// scorer.
func stableID(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

// stableLookup is the default experience source: a stable hash of the
// provider id into 1-20 years.
type stableLookup struct{}

func (stableLookup) Experience(providerID, _ string) float64 {
	return float64(stableID(providerID)%20 + 1)
}

// priorClaimsProxy maps a patient id into a stable 0-9 claim count proxy.
func priorClaimsProxy(patientID string) float64 {
	return float64(stableID(patientID) % 10)
}
