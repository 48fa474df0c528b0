package model

// Decision is the terminal adjudication outcome for a claim.
type Decision string

const (
	DecisionAutoApprove  Decision = "auto_approve"
	DecisionAutoDeny     Decision = "auto_deny"
	DecisionManualReview Decision = "manual_review"
)

// Status is the claim lifecycle state implied by a decision.
type Status string

const (
	StatusApproved   Status = "approved"
	StatusDenied     Status = "denied"
	StatusProcessing Status = "processing"
)

// FormatKind identifies which source format a raw claim document was
// submitted in. Exposed so callers can log the detected format.
type FormatKind string

const (
	FormatFhirR4 FormatKind = "fhir_r4"
	FormatHl7v2  FormatKind = "hl7_v2"
	FormatSbs    FormatKind = "sbs"
	FormatCustom FormatKind = "custom"
)

// ClaimResult is the output boundary contract of the pipeline.
type ClaimResult struct {
	ClaimID            string   `json:"claim_id"`
	Status             Status   `json:"status"`
	Decision           Decision `json:"decision"`
	ConfidenceScore    float64  `json:"confidence_score"`
	RecommendedActions []string `json:"recommended_actions"`
	EstimatedCost      *float64 `json:"estimated_cost,omitempty"`
	ApprovalAmount     *float64 `json:"approval_amount,omitempty"`
	ComplianceFlags    []string `json:"compliance_flags"`
	ProcessingNotes    []string `json:"processing_notes,omitempty"`
}
