package normalize

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/Fadil369/Nphies-pro/internal/arabic"
	"github.com/Fadil369/Nphies-pro/internal/model"
)

const (
	nationalIDSystem = "http://nphies.sa/identifier/national-id"
	tenantTagSystem  = "http://brainsait.com/tenant-id"
)

// fromFhir converts a FHIR R4 Claim resource. Patient and provider are
// resolved through the reference store concurrently; both resolutions are
// bound to the invocation context.
func (n *Normalizer) fromFhir(ctx context.Context, raw map[string]any) (*model.Claim, error) {
	if n.resolver == nil {
		return nil, eris.New("normalize: fhir input requires a reference resolver")
	}

	patientRef := getString(getMap(raw, "patient"), "reference")
	providerRef := getString(getMap(raw, "provider"), "reference")
	if patientRef == "" {
		return nil, convErr("patient.reference", "missing patient reference")
	}
	if providerRef == "" {
		return nil, convErr("provider.reference", "missing provider reference")
	}

	var patientData, providerData map[string]any
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patientData, err = n.resolver.Resolve(gCtx, patientRef)
		return eris.Wrap(err, "normalize: resolve patient")
	})
	g.Go(func() error {
		var err error
		providerData, err = n.resolver.Resolve(gCtx, providerRef)
		return eris.Wrap(err, "normalize: resolve provider")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	patient, err := n.fhirPatient(patientData)
	if err != nil {
		return nil, err
	}
	provider := fhirProvider(providerData)

	items, err := n.fhirItems(getSlice(raw, "item"))
	if err != nil {
		return nil, err
	}

	primary, secondary := fhirDiagnoses(getSlice(raw, "diagnosis"))

	period, err := n.fhirServicePeriod(getMap(raw, "billablePeriod"))
	if err != nil {
		return nil, err
	}

	claimNumber := getString(firstMap(getSlice(raw, "identifier")), "value")

	return &model.Claim{
		ID:                  getString(raw, "id"),
		TenantID:            fhirTenantID(raw),
		ClaimNumber:         claimNumber,
		NphiesClaimID:       getString(raw, "id"),
		Patient:             patient,
		Provider:            provider,
		TotalAmount:         getFloat(getMap(raw, "total"), "value"),
		Items:               items,
		PrimaryDiagnosis:    primary,
		SecondaryDiagnoses:  secondary,
		ServicePeriod:       period,
		InsurancePlan:       fhirInsurancePlan(raw),
		PolicyNumber:        claimNumber,
		EligibilityVerified: getBool(raw, "eligibilityVerified"),
	}, nil
}

func (n *Normalizer) fhirPatient(data map[string]any) (model.Patient, error) {
	dob, err := parseOptionalDate("patient.birthDate", getString(data, "birthDate"), epoch)
	if err != nil {
		return model.Patient{}, err
	}

	return model.Patient{
		ID:          getString(data, "id"),
		NationalID:  identifierBySystem(data, nationalIDSystem),
		Name:        fhirHumanName(data),
		ArabicName:  arabic.Normalize(fhirArabicName(data)),
		DateOfBirth: dob,
		Gender:      stringOr(getString(data, "gender"), "unknown"),
		InsuranceID: identifierBySystemContains(data, "insurance"),
	}, nil
}

func fhirProvider(data map[string]any) model.Provider {
	name := getString(firstMap(getSlice(data, "name")), "text")
	return model.Provider{
		ID:               getString(data, "id"),
		Name:             name,
		LicenseNumber:    identifierBySystemContains(data, "license"),
		Specialty:        fhirSpecialty(data),
		NphiesProviderID: identifierBySystemContains(data, "nphies"),
	}
}

// fhirItems builds claim items in FHIR item order. Sequence defaults to the
// 1-based position when the source omits it.
func (n *Normalizer) fhirItems(items []any) ([]model.ClaimItem, error) {
	out := make([]model.ClaimItem, 0, len(items))
	for i, v := range items {
		item := asMap(v)
		if item == nil {
			continue
		}

		seq := getInt(item, "sequence")
		if seq == 0 {
			seq = i + 1
		}

		qty := getInt(getMap(item, "quantity"), "value")
		if _, ok := item["quantity"]; !ok {
			qty = 1
		}

		serviced, err := parseOptionalDate("item.servicedDate", getString(item, "servicedDate"), n.now())
		if err != nil {
			return nil, err
		}

		out = append(out, model.ClaimItem{
			Sequence:       seq,
			ProcedureCode:  fhirProcedureCode(item),
			DiagnosisCodes: nil,
			Quantity:       qty,
			UnitPrice:      getFloat(getMap(item, "unitPrice"), "value"),
			TotalAmount:    getFloat(getMap(item, "net"), "value"),
			ServiceDate:    serviced,
		})
	}
	return out, nil
}

func fhirProcedureCode(item map[string]any) model.ProcedureCode {
	coding := firstMap(getSlice(getMap(item, "productOrService"), "coding"))
	return model.ProcedureCode{
		Code:    getString(coding, "code"),
		System:  getString(coding, "system"),
		Display: getString(coding, "display"),
	}
}

// fhirDiagnoses splits the diagnosis list into the principal entry and the
// rest. A missing principal diagnosis falls back to the default placeholder,
// never an error.
func fhirDiagnoses(diagnoses []any) (model.DiagnosisCode, []model.DiagnosisCode) {
	primary := model.DefaultDiagnosis()
	var secondary []model.DiagnosisCode
	foundPrimary := false

	for _, v := range diagnoses {
		d := asMap(v)
		if d == nil {
			continue
		}
		typeCode := getString(firstMap(getSlice(firstMap(getSlice(d, "type")), "coding")), "code")
		code := diagnosisFromConcept(getMap(d, "diagnosisCodeableConcept"))

		if typeCode == "principal" && !foundPrimary {
			primary = code
			foundPrimary = true
			continue
		}
		secondary = append(secondary, code)
	}
	return primary, secondary
}

func diagnosisFromConcept(concept map[string]any) model.DiagnosisCode {
	coding := firstMap(getSlice(concept, "coding"))
	return model.DiagnosisCode{
		Code:    getString(coding, "code"),
		System:  getString(coding, "system"),
		Display: getString(coding, "display"),
	}
}

func (n *Normalizer) fhirServicePeriod(period map[string]any) (model.ServicePeriod, error) {
	now := n.now()
	start, err := parseOptionalDate("billablePeriod.start", getString(period, "start"), now)
	if err != nil {
		return model.ServicePeriod{}, err
	}
	end, err := parseOptionalDate("billablePeriod.end", getString(period, "end"), now)
	if err != nil {
		return model.ServicePeriod{}, err
	}
	return model.ServicePeriod{Start: start, End: end}, nil
}

func fhirInsurancePlan(raw map[string]any) string {
	insurance := firstMap(getSlice(raw, "insurance"))
	ref := getString(getMap(insurance, "coverage"), "reference")
	if ref == "" {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

func fhirTenantID(raw map[string]any) string {
	for _, v := range getSlice(getMap(raw, "meta"), "tag") {
		tag := asMap(v)
		if getString(tag, "system") == tenantTagSystem {
			return getString(tag, "code")
		}
	}
	return "default"
}

// fhirHumanName joins the given and family parts of the first name entry.
func fhirHumanName(data map[string]any) string {
	name := firstMap(getSlice(data, "name"))
	if name == nil {
		return ""
	}
	var parts []string
	for _, g := range getSlice(name, "given") {
		if s, ok := g.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if fam := getString(name, "family"); fam != "" {
		parts = append(parts, fam)
	}
	return strings.Join(parts, " ")
}

// fhirArabicName reads the Arabic-language extension of any name entry.
func fhirArabicName(data map[string]any) string {
	for _, v := range getSlice(data, "name") {
		name := asMap(v)
		for _, e := range getSlice(name, "extension") {
			ext := asMap(e)
			if strings.Contains(strings.ToLower(getString(ext, "url")), "arabic") {
				return getString(ext, "valueString")
			}
		}
	}
	return ""
}

func fhirSpecialty(data map[string]any) string {
	qual := firstMap(getSlice(data, "qualification"))
	return getString(getMap(qual, "code"), "text")
}

// identifierBySystem returns the value of the identifier whose system
// matches exactly.
func identifierBySystem(data map[string]any, system string) string {
	for _, v := range getSlice(data, "identifier") {
		id := asMap(v)
		if getString(id, "system") == system {
			return getString(id, "value")
		}
	}
	return ""
}

// identifierBySystemContains returns the value of the first identifier
// whose system contains the given substring, case-insensitively.
func identifierBySystemContains(data map[string]any, substr string) string {
	for _, v := range getSlice(data, "identifier") {
		id := asMap(v)
		if strings.Contains(strings.ToLower(getString(id, "system")), substr) {
			return getString(id, "value")
		}
	}
	return ""
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
