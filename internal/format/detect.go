// Package format classifies raw claim documents into one of the supported
// source formats. Detection is an ordered chain of shape predicates: inputs
// may satisfy several loose checks, so the chain order encodes precedence
// and the custom format is a universal fallback that always matches.
package format

import (
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// predicate inspects marker fields of a raw document. It must not mutate
// the document and performs no schema validation.
type predicate func(raw map[string]any) bool

// check pairs a format kind with its predicate.
type check struct {
	kind  model.FormatKind
	match predicate
}

// Detector classifies raw claim documents.
type Detector struct {
	chain []check
}

// NewDetector builds the detector with the fixed precedence chain
// FHIR R4 -> HL7 v2 -> SBS -> custom.
func NewDetector() *Detector {
	return &Detector{
		chain: []check{
			{model.FormatFhirR4, isFhirR4},
			{model.FormatHl7v2, isHl7v2},
			{model.FormatSbs, isSbs},
		},
	}
}

// Detect returns the first matching format kind, falling back to custom.
func (d *Detector) Detect(raw map[string]any) model.FormatKind {
	for _, c := range d.chain {
		if c.match(raw) {
			return c.kind
		}
	}
	zap.L().Debug("format: no marker matched, falling back to custom")
	return model.FormatCustom
}

// isFhirR4 matches a FHIR R4 Claim resource: resourceType "Claim" with a
// non-null meta.versionId marker.
func isFhirR4(raw map[string]any) bool {
	if rt, _ := raw["resourceType"].(string); rt != "Claim" {
		return false
	}
	meta, _ := raw["meta"].(map[string]any)
	if meta == nil {
		return false
	}
	return meta["versionId"] != nil
}

// isHl7v2 matches a segment-keyed HL7 v2 message: MSH, PID and DG1 must
// all be present as top-level keys.
func isHl7v2(raw map[string]any) bool {
	for _, seg := range []string{"MSH", "PID", "DG1"} {
		if _, ok := raw[seg]; !ok {
			return false
		}
	}
	return true
}

// isSbs matches a Saudi Billing Standard document.
func isSbs(raw map[string]any) bool {
	if bs, _ := raw["billing_standard"].(string); bs != "SBS" {
		return false
	}
	if _, ok := raw["patient_info"]; !ok {
		return false
	}
	_, ok := raw["provider_info"]
	return ok
}
