package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadSubmitted     EventType = "lead_submitted"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventLeadNoteAdded     EventType = "lead_note_added"
	EventLeadDeleted       EventType = "lead_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	LeadName  string      `json:"lead_name"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	Preview string `json:"preview"`
}
