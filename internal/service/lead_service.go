package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/query"
	"github.com/spec-kit/lead-service/internal/repository"
	"github.com/spec-kit/lead-service/pkg/util"
)

// pageSize is the fixed page length for lead listings.
const pageSize = 5

// ExportFilename is the download name for the CSV export.
const ExportFilename = "leads_export.csv"

// exportColumns is the fixed CSV projection, in order.
var exportColumns = []string{"name", "email", "phone", "subject", "status", "source", "createdAt"}

// StatsCache caches the dashboard stats payload between recomputations.
// *persistence.Redis satisfies it; a nil-backed cache degrades to misses.
type StatsCache interface {
	GetStats(ctx context.Context) ([]byte, bool)
	SetStats(ctx context.Context, payload []byte)
	InvalidateStats(ctx context.Context)
}

// LeadService coordinates lead workflows.
type LeadService struct {
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
	cache      StatsCache
	now        func() time.Time
}

// LeadDependencies bundles requirements for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	Dispatcher events.Dispatcher
	StatsCache StatsCache
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	cache := deps.StatsCache
	if cache == nil {
		cache = noopStatsCache{}
	}
	return &LeadService{
		leads:      deps.LeadRepo,
		dispatcher: deps.Dispatcher,
		cache:      cache,
		now:        time.Now,
	}
}

type noopStatsCache struct{}

func (noopStatsCache) GetStats(context.Context) ([]byte, bool) { return nil, false }
func (noopStatsCache) SetStats(context.Context, []byte)        {}
func (noopStatsCache) InvalidateStats(context.Context)         {}

// SubmitInput describes a contact-form submission.
type SubmitInput struct {
	Subject string
	Message string
	Name    string
	Email   string
	Phone   string
	Status  string
	Source  string
}

// LeadPage is one page of a filtered listing.
type LeadPage struct {
	CurrentPage int
	TotalPages  int
	TotalForms  int
	Forms       []domain.Lead
}

// Stats aggregates dashboard counters. Every enum value is present even
// when its count is zero.
type Stats struct {
	Total    int                       `json:"total"`
	Today    int                       `json:"today"`
	ByStatus map[domain.LeadStatus]int `json:"byStatus"`
	BySource map[domain.LeadSource]int `json:"bySource"`
}

// ActivityEvent is one entry of the synthetic recent-activity feed.
type ActivityEvent struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
}

// Submit validates and stores a new lead with defaults applied.
func (s *LeadService) Submit(ctx context.Context, input SubmitInput) (*domain.Lead, error) {
	if strings.TrimSpace(input.Subject) == "" ||
		strings.TrimSpace(input.Message) == "" ||
		strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" {
		return nil, util.NewValidationError("subject, message, name and email are required")
	}

	status := domain.LeadStatus(input.Status)
	if input.Status == "" {
		status = domain.LeadStatusNew
	} else if !status.IsValid() {
		return nil, util.NewValidationError("Invalid status value")
	}

	source := domain.LeadSource(input.Source)
	if input.Source == "" {
		source = domain.LeadSourceWebsite
	} else if !source.IsValid() {
		return nil, util.NewValidationError("Invalid source value")
	}

	lead := &domain.Lead{
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   input.Phone,
		Status:  status,
		Source:  source,
		Notes:   []domain.Note{},
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.cache.InvalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:     events.EventLeadSubmitted,
		LeadID:   lead.ID,
		LeadName: lead.Name,
	})
	return lead, nil
}

// List returns one page of leads matching the filters, newest first.
func (s *LeadService) List(ctx context.Context, page int, params query.Params) (*LeadPage, error) {
	if page < 1 {
		page = 1
	}
	filter := query.ForList(params, s.now())

	total, err := s.leads.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	forms, err := s.leads.ListWithFilter(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &LeadPage{
		CurrentPage: page,
		TotalPages:  (total + pageSize - 1) / pageSize,
		TotalForms:  total,
		Forms:       forms,
	}, nil
}

// GetByID fetches a single lead.
func (s *LeadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	if !validLeadID(id) {
		return nil, util.NewNotFound("Form not found")
	}
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, leadLookupError(err)
	}
	return lead, nil
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.IsValid() {
		return nil, util.NewValidationError("Invalid status value")
	}
	if !validLeadID(id) {
		return nil, util.NewNotFound("Form not found")
	}

	lead, err := s.leads.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, leadLookupError(err)
	}

	s.cache.InvalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:     events.EventLeadStatusChanged,
		LeadID:   lead.ID,
		LeadName: lead.Name,
		Payload:  events.StatusChangedPayload{NewStatus: string(status)},
	})
	return lead, nil
}

// AddNote appends a note to the lead's thread. Notes are append-only.
func (s *LeadService) AddNote(ctx context.Context, id, content string) (*domain.Lead, error) {
	if !validLeadID(id) {
		return nil, util.NewNotFound("Form not found")
	}

	note := domain.Note{Content: content, CreatedAt: s.now()}
	lead, err := s.leads.AppendNote(ctx, id, note)
	if err != nil {
		return nil, leadLookupError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventLeadNoteAdded,
		LeadID:   lead.ID,
		LeadName: lead.Name,
		Payload:  events.NoteAddedPayload{Preview: preview(content)},
	})
	return lead, nil
}

// Delete removes a lead permanently.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if !validLeadID(id) {
		return util.NewNotFound("Form not found")
	}

	lead, err := s.leads.Delete(ctx, id)
	if err != nil {
		return leadLookupError(err)
	}

	s.cache.InvalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:     events.EventLeadDeleted,
		LeadID:   lead.ID,
		LeadName: lead.Name,
	})
	return nil
}

// ExportCSV serializes the full filtered match set, newest first, to CSV.
func (s *LeadService) ExportCSV(ctx context.Context, params query.Params) ([]byte, error) {
	filter := query.ForExport(params, s.now())
	leads, err := s.leads.ListWithFilter(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, lead := range leads {
		record := []string{
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Subject,
			string(lead.Status),
			string(lead.Source),
			lead.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats returns dashboard counters, served from cache when fresh.
func (s *LeadService) Stats(ctx context.Context) (*Stats, error) {
	if raw, ok := s.cache.GetStats(ctx); ok {
		var cached Stats
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.leads.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	midnight, _ := query.BucketStart(query.BucketToday, s.now())
	today, err := s.leads.Count(ctx, query.Filter{query.CreatedSince{From: midnight}})
	if err != nil {
		return nil, err
	}

	byStatus, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bySource, err := s.leads.CountBySource(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:    total,
		Today:    today,
		ByStatus: make(map[domain.LeadStatus]int, len(domain.LeadStatuses)),
		BySource: make(map[domain.LeadSource]int, len(domain.LeadSources)),
	}
	for _, status := range domain.LeadStatuses {
		stats.ByStatus[status] = byStatus[status]
	}
	for _, source := range domain.LeadSources {
		stats.BySource[source] = bySource[source]
	}

	if payload, err := json.Marshal(stats); err == nil {
		s.cache.SetStats(ctx, payload)
	}
	return stats, nil
}

// RecentActivity builds the synthetic feed: a system marker plus one entry
// per each of the 3 most recently created leads. Nothing is persisted.
func (s *LeadService) RecentActivity(ctx context.Context) ([]ActivityEvent, error) {
	activities := []ActivityEvent{
		{
			Action:    "System initialized",
			Timestamp: s.now(),
			Icon:      "fa-info-circle",
			Color:     "text-blue-500",
		},
	}

	recent, err := s.leads.ListRecent(ctx, 3)
	if err != nil {
		return nil, err
	}
	for _, lead := range recent {
		activities = append(activities, ActivityEvent{
			Action:    lead.Name + " submitted a form",
			Timestamp: lead.CreatedAt,
			Icon:      "fa-user-plus",
			Color:     "text-green-500",
		})
	}
	return activities, nil
}

func (s *LeadService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}

// validLeadID rejects ids that cannot possibly match a stored row before
// they reach the database.
func validLeadID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func leadLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return util.NewNotFound("Form not found")
	}
	return err
}

func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	return content[:max]
}
