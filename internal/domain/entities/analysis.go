package entities

// SummaryNotConfigured is the degraded summary used when no analysis
// provider is available
const SummaryNotConfigured = "No analysis provider configured"

// AnalysisResult represents the structured summary of a call transcript
type AnalysisResult struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	Topics      []string `json:"topics"`

	// Degraded marks a sentinel result produced when analysis was
	// unavailable or failed. Summary then carries the reason.
	Degraded bool `json:"-"`
}

// DegradedAnalysis builds a non-failing result describing why no real
// analysis is available.
func DegradedAnalysis(reason string) AnalysisResult {
	return AnalysisResult{
		Summary:     reason,
		ActionItems: []string{},
		Topics:      []string{},
		Degraded:    true,
	}
}

// Normalize guarantees non-nil lists so the result always encodes as arrays
func (a AnalysisResult) Normalize() AnalysisResult {
	if a.ActionItems == nil {
		a.ActionItems = []string{}
	}
	if a.Topics == nil {
		a.Topics = []string{}
	}
	return a
}
