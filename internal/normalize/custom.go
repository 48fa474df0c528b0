package normalize

import (
	"context"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// fromCustom is the best-effort fallback for documents that matched no
// known format. It maps a minimal assumed shape (patient, provider,
// total_amount, claim_number); no items are populated, so callers on this
// path only get claim-level aggregates.
func (n *Normalizer) fromCustom(_ context.Context, raw map[string]any) (*model.Claim, error) {
	patientRaw := getMap(raw, "patient")
	dob, err := parseOptionalDate("patient.date_of_birth", getString(patientRaw, "date_of_birth"), epoch)
	if err != nil {
		return nil, err
	}

	patient := model.Patient{
		ID:          getString(patientRaw, "id"),
		NationalID:  getString(patientRaw, "national_id"),
		Name:        getString(patientRaw, "name"),
		DateOfBirth: dob,
		Gender:      stringOr(getString(patientRaw, "gender"), "unknown"),
		InsuranceID: getString(patientRaw, "insurance_id"),
	}

	providerRaw := getMap(raw, "provider")
	provider := model.Provider{
		ID:               getString(providerRaw, "id"),
		Name:             getString(providerRaw, "name"),
		LicenseNumber:    getString(providerRaw, "license"),
		Specialty:        getString(providerRaw, "specialty"),
		NphiesProviderID: getString(providerRaw, "nphies_id"),
	}

	now := n.now()
	return &model.Claim{
		ID:                  getString(raw, "id"),
		TenantID:            stringOr(getString(raw, "tenant_id"), "default"),
		ClaimNumber:         getString(raw, "claim_number"),
		NphiesClaimID:       getString(raw, "nphies_claim_id"),
		Patient:             patient,
		Provider:            provider,
		TotalAmount:         getFloat(raw, "total_amount"),
		PrimaryDiagnosis:    model.DefaultDiagnosis(),
		ServicePeriod:       model.ServicePeriod{Start: now, End: now},
		InsurancePlan:       getString(raw, "insurance_plan"),
		PolicyNumber:        getString(raw, "policy_number"),
		EligibilityVerified: getBool(raw, "eligibility_verified"),
	}, nil
}
