package entities

// EventCallCompleted is the only event tag the relay acts on
const EventCallCompleted = "call.completed"

// Placeholders used when the provider omits a field
const (
	UnknownTitle = "Unknown"
	UnknownDate  = "N/A"
)

// CallEvent is a normalized call-completion event received from the
// meeting-transcription provider. It is immutable after normalization.
type CallEvent struct {
	Event           string   `json:"event"`
	CallID          string   `json:"call_id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	DurationSeconds int      `json:"duration_seconds"`
	Participants    []string `json:"participants"`
	Transcript      string   `json:"transcript"`
}

// DurationMinutes returns the whole minutes of the call
func (c CallEvent) DurationMinutes() int {
	return c.DurationSeconds / 60
}

// HasTranscript reports whether the event carried transcript text
func (c CallEvent) HasTranscript() bool {
	return c.Transcript != ""
}
