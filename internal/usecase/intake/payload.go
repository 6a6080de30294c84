package intake

import (
	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
)

// payload is the raw webhook body. Pointer fields distinguish missing
// values from zero values.
type payload struct {
	Event           *string  `json:"event"`
	CallID          string   `json:"call_id" validate:"required"`
	Title           *string  `json:"title"`
	Date            *string  `json:"date"`
	DurationSeconds *int     `json:"duration_seconds" validate:"omitempty,gte=0"`
	Participants    []string `json:"participants"`
	Transcript      *string  `json:"transcript"`
}

// ignored reports whether the event tag is present and not a completion
func (p *payload) ignored() bool {
	return p.Event != nil && *p.Event != entities.EventCallCompleted
}

// normalize fills placeholders for missing fields and truncates the date
// to its date component
func (p *payload) normalize() entities.CallEvent {
	call := entities.CallEvent{
		Event:        deref(p.Event, ""),
		CallID:       p.CallID,
		Title:        deref(p.Title, entities.UnknownTitle),
		Date:         dateOnly(deref(p.Date, entities.UnknownDate)),
		Participants: p.Participants,
		Transcript:   deref(p.Transcript, ""),
	}
	if p.DurationSeconds != nil {
		call.DurationSeconds = *p.DurationSeconds
	}
	if call.Participants == nil {
		call.Participants = []string{}
	}
	return call
}

func deref(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func dateOnly(date string) string {
	runes := []rune(date)
	if len(runes) > 10 {
		return string(runes[:10])
	}
	return date
}
