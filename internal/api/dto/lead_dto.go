package dto

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// SubmitFormRequest payload. Field names match the public contact form.
type SubmitFormRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
	Source  string `json:"source"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse is one note on a form.
type NoteResponse struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormResponse is the full wire representation of a lead.
type FormResponse struct {
	ID        string         `json:"id"`
	Subject   string         `json:"subject"`
	Message   string         `json:"message"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Status    string         `json:"status"`
	Source    string         `json:"source"`
	Notes     []NoteResponse `json:"notes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FormListResponse is one page of a filtered listing.
type FormListResponse struct {
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalForms  int            `json:"totalForms"`
	Forms       []FormResponse `json:"forms"`
}

// FromLead converts a domain lead to its wire representation.
func FromLead(lead *domain.Lead) FormResponse {
	notes := make([]NoteResponse, 0, len(lead.Notes))
	for _, note := range lead.Notes {
		notes = append(notes, NoteResponse{Content: note.Content, CreatedAt: note.CreatedAt})
	}
	return FormResponse{
		ID:        lead.ID,
		Subject:   lead.Subject,
		Message:   lead.Message,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Status:    string(lead.Status),
		Source:    string(lead.Source),
		Notes:     notes,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}
