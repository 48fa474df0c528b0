// Package model defines the canonical claim entities shared across the
// normalization and adjudication pipeline. The JSON shapes of Claim and
// ClaimResult are the boundary contract with transport layers.
package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// Claim is the canonical representation every source format normalizes into.
// A Claim is owned by the pipeline invocation that built it and is treated
// as immutable once constructed.
type Claim struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	ClaimNumber   string `json:"claim_number"`
	NphiesClaimID string `json:"nphies_claim_id,omitempty"`

	Patient  Patient  `json:"patient"`
	Provider Provider `json:"provider"`

	TotalAmount float64     `json:"total_amount"`
	Items       []ClaimItem `json:"items"`

	PrimaryDiagnosis   DiagnosisCode   `json:"primary_diagnosis"`
	SecondaryDiagnoses []DiagnosisCode `json:"secondary_diagnoses,omitempty"`

	ServicePeriod ServicePeriod `json:"service_period"`

	InsurancePlan       string `json:"insurance_plan,omitempty"`
	PolicyNumber        string `json:"policy_number,omitempty"`
	EligibilityVerified bool   `json:"eligibility_verified"`
}

// ServicePeriod is the billable period covered by a claim.
type ServicePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Patient identifies the insured individual on a claim.
type Patient struct {
	ID          string    `json:"id"`
	NationalID  string    `json:"national_id,omitempty"`
	Name        string    `json:"name"`
	ArabicName  string    `json:"arabic_name,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	InsuranceID string    `json:"insurance_id,omitempty"`
}

// Provider identifies the care provider that submitted the claim.
type Provider struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ArabicName       string `json:"arabic_name,omitempty"`
	LicenseNumber    string `json:"license_number,omitempty"`
	Specialty        string `json:"specialty,omitempty"`
	NphiesProviderID string `json:"nphies_provider_id,omitempty"`
}

// ClaimItem is a single billed line on a claim. Item order is significant:
// Sequence numbers are 1-based positions when the source carries none.
type ClaimItem struct {
	Sequence       int             `json:"sequence"`
	ProcedureCode  ProcedureCode   `json:"procedure_code"`
	DiagnosisCodes []DiagnosisCode `json:"diagnosis_codes,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      float64         `json:"unit_price"`
	TotalAmount    float64         `json:"total_amount"`
	ServiceDate    time.Time       `json:"service_date"`
}

// ProcedureCode is a coded procedure with optional bilingual display.
type ProcedureCode struct {
	Code          string  `json:"code"`
	System        string  `json:"system"`
	Display       string  `json:"display,omitempty"`
	ArabicDisplay string  `json:"arabic_display,omitempty"`
	Cost          float64 `json:"cost,omitempty"`
}

// DiagnosisCode is a coded diagnosis with optional bilingual display.
type DiagnosisCode struct {
	Code          string `json:"code"`
	System        string `json:"system"`
	Display       string `json:"display,omitempty"`
	ArabicDisplay string `json:"arabic_display,omitempty"`
}

// DefaultDiagnosis is the safe fallback used when a source format carries
// no usable primary diagnosis.
func DefaultDiagnosis() DiagnosisCode {
	return DiagnosisCode{
		Code:    "Z00.00",
		System:  "ICD-10",
		Display: "General examination",
	}
}

// Validate checks the structural invariants of a normalized claim.
func (c *Claim) Validate() error {
	if c.TotalAmount < 0 {
		return eris.Errorf("model: claim %s has negative total amount %.2f", c.ID, c.TotalAmount)
	}
	if !c.ServicePeriod.Start.IsZero() && !c.ServicePeriod.End.IsZero() &&
		c.ServicePeriod.End.Before(c.ServicePeriod.Start) {
		return eris.Errorf("model: claim %s service period ends before it starts", c.ID)
	}
	for i, item := range c.Items {
		if item.Sequence < 1 {
			return eris.Errorf("model: claim %s item %d has sequence %d", c.ID, i, item.Sequence)
		}
		if item.Quantity < 0 {
			return eris.Errorf("model: claim %s item %d has negative quantity", c.ID, i)
		}
		if item.UnitPrice < 0 {
			return eris.Errorf("model: claim %s item %d has negative unit price", c.ID, i)
		}
	}
	return nil
}
