package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/query"
	"github.com/spec-kit/lead-service/internal/repository"
)

// fakeLeadRepo is an in-memory LeadRepository. Filters are evaluated
// predicate by predicate, so conjunction semantics are exercised for real.
type fakeLeadRepo struct {
	leads []*domain.Lead
	now   func() time.Time
}

var _ repository.LeadRepository = (*fakeLeadRepo)(nil)

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{now: time.Now}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	lead.ID = uuid.NewString()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = f.now()
	}
	lead.UpdatedAt = lead.CreatedAt
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead := f.find(id)
	if lead == nil {
		return nil, pgx.ErrNoRows
	}
	return lead, nil
}

func (f *fakeLeadRepo) UpdateStatus(_ context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	lead := f.find(id)
	if lead == nil {
		return nil, pgx.ErrNoRows
	}
	lead.Status = status
	lead.UpdatedAt = f.now()
	return lead, nil
}

func (f *fakeLeadRepo) AppendNote(_ context.Context, id string, note domain.Note) (*domain.Lead, error) {
	lead := f.find(id)
	if lead == nil {
		return nil, pgx.ErrNoRows
	}
	lead.Notes = append(lead.Notes, note)
	lead.UpdatedAt = f.now()
	return lead, nil
}

func (f *fakeLeadRepo) Delete(_ context.Context, id string) (*domain.Lead, error) {
	for i, lead := range f.leads {
		if lead.ID == id {
			f.leads = append(f.leads[:i], f.leads[i+1:]...)
			return lead, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLeadRepo) ListWithFilter(_ context.Context, filter query.Filter, limit, offset int) ([]domain.Lead, error) {
	matched := f.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeLeadRepo) Count(_ context.Context, filter query.Filter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeLeadRepo) CountByStatus(_ context.Context) (map[domain.LeadStatus]int, error) {
	result := make(map[domain.LeadStatus]int)
	for _, lead := range f.leads {
		result[lead.Status]++
	}
	return result, nil
}

func (f *fakeLeadRepo) CountBySource(_ context.Context) (map[domain.LeadSource]int, error) {
	result := make(map[domain.LeadSource]int)
	for _, lead := range f.leads {
		result[lead.Source]++
	}
	return result, nil
}

func (f *fakeLeadRepo) ListRecent(ctx context.Context, limit int) ([]domain.Lead, error) {
	return f.ListWithFilter(ctx, nil, limit, 0)
}

func (f *fakeLeadRepo) find(id string) *domain.Lead {
	for _, lead := range f.leads {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}

func (f *fakeLeadRepo) matching(filter query.Filter) []domain.Lead {
	var matched []domain.Lead
	for _, lead := range f.leads {
		if leadMatches(lead, filter) {
			matched = append(matched, *lead)
		}
	}
	return matched
}

func leadMatches(lead *domain.Lead, filter query.Filter) bool {
	for _, pred := range filter {
		switch p := pred.(type) {
		case query.Equals:
			var got string
			switch p.Field {
			case query.FieldStatus:
				got = string(lead.Status)
			case query.FieldSource:
				got = string(lead.Source)
			default:
				return false
			}
			if got != p.Value {
				return false
			}
		case query.CreatedSince:
			if lead.CreatedAt.Before(p.From) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*domain.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

// fakeStatsCache records cache traffic for assertions.
type fakeStatsCache struct {
	payload     []byte
	invalidated int
}

func (f *fakeStatsCache) GetStats(context.Context) ([]byte, bool) {
	if f.payload == nil {
		return nil, false
	}
	return f.payload, true
}

func (f *fakeStatsCache) SetStats(_ context.Context, payload []byte) {
	f.payload = payload
}

func (f *fakeStatsCache) InvalidateStats(context.Context) {
	f.payload = nil
	f.invalidated++
}
