package health

import "time"

// Counter exposes the size of the processed-call set
type Counter interface {
	Len() int
}

// Report is the liveness snapshot returned by /health
type Report struct {
	Status             string    `json:"status"`
	Timestamp          time.Time `json:"timestamp"`
	AnalysisConfigured bool      `json:"analysisConfigured"`
	NotifierConfigured bool      `json:"notifierConfigured"`
	ProcessedCount     int       `json:"processedCount"`
}

// Reporter reads configuration flags and the processed-call count
type Reporter struct {
	analysisConfigured bool
	notifierConfigured bool
	processed          Counter
	now                func() time.Time
}

// NewReporter creates a health reporter
func NewReporter(analysisConfigured, notifierConfigured bool, processed Counter) *Reporter {
	return &Reporter{
		analysisConfigured: analysisConfigured,
		notifierConfigured: notifierConfigured,
		processed:          processed,
		now:                time.Now,
	}
}

// Report returns the current snapshot; it has no side effects
func (r *Reporter) Report() Report {
	count := 0
	if r.processed != nil {
		count = r.processed.Len()
	}
	return Report{
		Status:             "healthy",
		Timestamp:          r.now().UTC(),
		AnalysisConfigured: r.analysisConfigured,
		NotifierConfigured: r.notifierConfigured,
		ProcessedCount:     count,
	}
}
