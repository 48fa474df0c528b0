// Package compliance inspects canonical claims for regulatory flag
// violations. Validation never fails a claim: every applicable flag is
// returned and the pipeline carries them on the result.
package compliance

import (
	"regexp"
	"time"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

// Flag strings are part of the output contract; downstream dashboards
// match on them verbatim.
const (
	FlagMissingNphiesID       = "Missing NPHIES claim ID"
	FlagEligibilityUnverified = "Patient eligibility not verified"
	FlagInvalidNationalID     = "Invalid Saudi national ID format"
	FlagHighAmountFewItems    = "High amount with few procedures - review needed"
	FlagLateSubmission        = "Claim submitted more than 90 days after service"
)

// saudiID matches a Saudi national ID or Iqama: 10 digits starting with 1
// (citizen) or 2 (resident).
var saudiID = regexp.MustCompile(`^[12]\d{9}$`)

// ValidSaudiID reports whether value is a syntactically valid Saudi
// national ID/Iqama.
func ValidSaudiID(value string) bool {
	return saudiID.MatchString(value)
}

// Config holds the compliance rule parameters.
type Config struct {
	// MaxSubmissionDelayDays flags claims evaluated later than this many
	// days after service start.
	MaxSubmissionDelayDays int `yaml:"max_submission_delay_days" mapstructure:"max_submission_delay_days"`
	// HighAmountThreshold with fewer than MinItemsForHighAmount items
	// flags a clinical review.
	HighAmountThreshold   float64 `yaml:"high_amount_threshold" mapstructure:"high_amount_threshold"`
	MinItemsForHighAmount int     `yaml:"min_items_for_high_amount" mapstructure:"min_items_for_high_amount"`
}

// DefaultConfig returns the NPHIES-aligned rule parameters.
func DefaultConfig() Config {
	return Config{
		MaxSubmissionDelayDays: 90,
		HighAmountThreshold:    100000,
		MinItemsForHighAmount:  5,
	}
}

// Validator evaluates every compliance rule independently; no early exit.
type Validator struct {
	cfg Config
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a Validator.
func New(cfg Config, opts ...Option) *Validator {
	v := &Validator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns every applicable flag for the claim, possibly none.
func (v *Validator) Validate(claim *model.Claim) []string {
	var flags []string

	if claim.NphiesClaimID == "" {
		flags = append(flags, FlagMissingNphiesID)
	}

	if !claim.EligibilityVerified {
		flags = append(flags, FlagEligibilityUnverified)
	}

	if claim.Patient.NationalID != "" && !ValidSaudiID(claim.Patient.NationalID) {
		flags = append(flags, FlagInvalidNationalID)
	}

	if claim.TotalAmount > v.cfg.HighAmountThreshold && len(claim.Items) < v.cfg.MinItemsForHighAmount {
		flags = append(flags, FlagHighAmountFewItems)
	}

	if !claim.ServicePeriod.Start.IsZero() {
		delay := v.now().Sub(claim.ServicePeriod.Start)
		if delay > time.Duration(v.cfg.MaxSubmissionDelayDays)*24*time.Hour {
			flags = append(flags, FlagLateSubmission)
		}
	}

	return flags
}
