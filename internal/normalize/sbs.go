package normalize

import (
	"context"

	"github.com/Fadil369/Nphies-pro/internal/arabic"
	"github.com/Fadil369/Nphies-pro/internal/model"
)

// fromSbs converts a Saudi Billing Standard document. SBS is a direct
// field mapping; bilingual pairs (name_en/name_ar, *_description/
// *_description_ar) are retained as paired attributes.
func (n *Normalizer) fromSbs(_ context.Context, raw map[string]any) (*model.Claim, error) {
	patient, err := sbsPatient(getMap(raw, "patient_info"))
	if err != nil {
		return nil, err
	}

	providerInfo := getMap(raw, "provider_info")
	provider := model.Provider{
		ID:               getString(providerInfo, "provider_id"),
		Name:             getString(providerInfo, "name_en"),
		ArabicName:       arabic.Normalize(getString(providerInfo, "name_ar")),
		LicenseNumber:    getString(providerInfo, "license_number"),
		Specialty:        getString(providerInfo, "specialty"),
		NphiesProviderID: getString(providerInfo, "nphies_id"),
	}

	items, err := n.sbsItems(getSlice(raw, "billing_items"))
	if err != nil {
		return nil, err
	}

	primaryInfo := getMap(raw, "primary_diagnosis")
	primary := model.DiagnosisCode{
		Code:          getString(primaryInfo, "code"),
		System:        "ICD-10",
		Display:       getString(primaryInfo, "description"),
		ArabicDisplay: arabic.Normalize(getString(primaryInfo, "description_ar")),
	}
	if primary.Code == "" {
		primary = model.DefaultDiagnosis()
	}

	now := n.now()
	start, err := parseOptionalDate("service_start_date", getString(raw, "service_start_date"), now)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("service_end_date", getString(raw, "service_end_date"), now)
	if err != nil {
		return nil, err
	}

	return &model.Claim{
		ID:                  getString(raw, "claim_id"),
		TenantID:            "default",
		ClaimNumber:         getString(raw, "claim_number"),
		NphiesClaimID:       getString(raw, "nphies_claim_id"),
		Patient:             patient,
		Provider:            provider,
		TotalAmount:         getFloat(raw, "total_amount"),
		Items:               items,
		PrimaryDiagnosis:    primary,
		ServicePeriod:       model.ServicePeriod{Start: start, End: end},
		InsurancePlan:       getString(raw, "insurance_plan"),
		PolicyNumber:        getString(raw, "policy_number"),
		EligibilityVerified: getBool(raw, "eligibility_verified"),
	}, nil
}

func sbsPatient(info map[string]any) (model.Patient, error) {
	dob, err := parseOptionalDate("patient_info.date_of_birth", getString(info, "date_of_birth"), epoch)
	if err != nil {
		return model.Patient{}, err
	}

	return model.Patient{
		ID:          getString(info, "patient_id"),
		NationalID:  getString(info, "national_id"),
		Name:        getString(info, "name_en"),
		ArabicName:  arabic.Normalize(getString(info, "name_ar")),
		DateOfBirth: dob,
		Gender:      stringOr(getString(info, "gender"), "unknown"),
		InsuranceID: getString(info, "insurance_number"),
	}, nil
}

func (n *Normalizer) sbsItems(items []any) ([]model.ClaimItem, error) {
	out := make([]model.ClaimItem, 0, len(items))
	for i, v := range items {
		item := asMap(v)
		if item == nil {
			continue
		}

		seq := getInt(item, "line_number")
		if seq == 0 {
			seq = i + 1
		}

		qty := getInt(item, "quantity")
		if _, ok := item["quantity"]; !ok {
			qty = 1
		}

		serviceDate, err := parseOptionalDate("billing_items.service_date", getString(item, "service_date"), n.now())
		if err != nil {
			return nil, err
		}

		out = append(out, model.ClaimItem{
			Sequence: seq,
			ProcedureCode: model.ProcedureCode{
				Code:          getString(item, "procedure_code"),
				System:        "SBS",
				Display:       getString(item, "procedure_description"),
				ArabicDisplay: arabic.Normalize(getString(item, "procedure_description_ar")),
				Cost:          getFloat(item, "unit_price"),
			},
			Quantity:    qty,
			UnitPrice:   getFloat(item, "unit_price"),
			TotalAmount: getFloat(item, "total_amount"),
			ServiceDate: serviceDate,
		})
	}
	return out, nil
}
