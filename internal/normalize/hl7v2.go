package normalize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// fromHl7v2 converts a segment-keyed HL7 v2 message. HL7 v2 carries no
// monetary totals, so the claim starts at zero to be populated from items
// downstream. The first DG1 diagnosis becomes primary, the rest secondary.
func (n *Normalizer) fromHl7v2(_ context.Context, raw map[string]any) (*model.Claim, error) {
	msh := getMap(raw, "MSH")
	pid := getMap(raw, "PID")
	pv1 := getMap(raw, "PV1")

	controlID := getString(msh, "message_control_id")

	patient, err := hl7Patient(pid)
	if err != nil {
		return nil, err
	}

	attending := firstMap(getSlice(pv1, "attending_doctor"))
	provider := model.Provider{
		ID:   getString(attending, "id_number"),
		Name: hl7Name(getSlice(pv1, "attending_doctor")),
		// License, specialty and NPHIES id are not carried in HL7 v2.
	}

	diagnoses := hl7Diagnoses(getSlice(raw, "DG1"))
	primary := model.DefaultDiagnosis()
	var secondary []model.DiagnosisCode
	if len(diagnoses) > 0 {
		primary = diagnoses[0]
		secondary = diagnoses[1:]
	}

	now := n.now()
	return &model.Claim{
		ID:               controlID,
		TenantID:         "default",
		ClaimNumber:      fmt.Sprintf("HL7-%s", controlID),
		Patient:          patient,
		Provider:         provider,
		TotalAmount:      0,
		Items:            nil,
		PrimaryDiagnosis: primary,
		SecondaryDiagnoses: secondary,
		ServicePeriod:    model.ServicePeriod{Start: now, End: now},
		InsurancePlan:    "default",
	}, nil
}

func hl7Patient(pid map[string]any) (model.Patient, error) {
	dob, err := parseHl7Date("PID.date_time_of_birth", getString(pid, "date_time_of_birth"))
	if err != nil {
		return model.Patient{}, err
	}

	nationalID := getString(firstMap(getSlice(pid, "patient_identifier_list")), "id")

	return model.Patient{
		ID:          getString(pid, "patient_id"),
		NationalID:  nationalID,
		Name:        hl7Name(getSlice(pid, "patient_name")),
		DateOfBirth: dob,
		Gender:      strings.ToLower(stringOr(getString(pid, "administrative_sex"), "unknown")),
		InsuranceID: getString(pid, "patient_account_number"),
	}, nil
}

func hl7Diagnoses(segments []any) []model.DiagnosisCode {
	var out []model.DiagnosisCode
	for _, v := range segments {
		dg1 := asMap(v)
		if dg1 == nil {
			continue
		}
		out = append(out, model.DiagnosisCode{
			Code:    getString(getMap(dg1, "diagnosis_code_dg1"), "identifier"),
			System:  "ICD-10",
			Display: getString(dg1, "diagnosis_description"),
		})
	}
	return out
}

// hl7Name joins the given and family components of the first XPN entry.
func hl7Name(components []any) string {
	name := firstMap(components)
	if name == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s",
		getString(name, "given_name"),
		getString(name, "family_name"),
	))
}

// parseHl7Date parses the HL7 DTM format (YYYYMMDD or YYYYMMDDHHMMSS).
// Absent values default to the epoch; malformed values fail.
func parseHl7Date(field, value string) (time.Time, error) {
	if value == "" {
		return epoch, nil
	}
	if len(value) < 8 {
		return time.Time{}, convErr(field, "hl7 date %q too short", value)
	}
	t, err := time.Parse("20060102", value[:8])
	if err != nil {
		return time.Time{}, convErr(field, "unparsable hl7 date %q", value)
	}
	return t, nil
}
