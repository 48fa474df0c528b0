package model

// ClaimMetrics is the per-tenant running aggregate maintained by the
// metrics aggregator. Created lazily on the first claim for a tenant and
// mutated in place for every claim after that; it lives for the process
// lifetime.
type ClaimMetrics struct {
	TenantID             string  `json:"tenant_id"`
	ClaimsToday          int     `json:"claims_today"`
	ClaimsThisMonth      int     `json:"claims_this_month"`
	AvgProcessingTimeMs  float64 `json:"avg_processing_time_ms"`
	AutoApprovalRate     float64 `json:"auto_approval_rate"`
	AccuracyScore        float64 `json:"accuracy_score"`
	CostSavings          float64 `json:"cost_savings"`
	FraudDetected        int     `json:"fraud_detected"`
	ComplianceViolations int     `json:"compliance_violations"`
}
