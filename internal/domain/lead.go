package domain

import "time"

// LeadStatus enumerates pipeline states for leads.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
)

// LeadStatuses lists every valid status in display order.
var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost}

// IsValid reports whether the status is one of the enumerated values.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost:
		return true
	}
	return false
}

// LeadSource enumerates acquisition channels.
type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceSocial   LeadSource = "social"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceOther    LeadSource = "other"
)

// LeadSources lists every valid source in display order.
var LeadSources = []LeadSource{LeadSourceWebsite, LeadSourceSocial, LeadSourceReferral, LeadSourceOther}

// IsValid reports whether the source is one of the enumerated values.
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceSocial, LeadSourceReferral, LeadSourceOther:
		return true
	}
	return false
}

// Note is a staff annotation attached to a lead. Notes are append-only.
type Note struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lead is the aggregate for a contact-form submission tracked through the
// status pipeline. Notes are stored on the lead row itself so a lead reads
// and writes as a single document.
type Lead struct {
	ID        string
	Subject   string
	Message   string
	Name      string
	Email     string
	Phone     string
	Status    LeadStatus
	Source    LeadSource
	Notes     []Note
	CreatedAt time.Time
	UpdatedAt time.Time
}
