package query

import "time"

// Predicate is one constraint on a lead query. The concrete variants are
// Equals and CreatedSince; a Filter combines them by conjunction.
type Predicate interface {
	predicate()
}

// Equals constrains a column to an exact value.
type Equals struct {
	Field string
	Value string
}

// CreatedSince constrains created_at to be at or after From.
type CreatedSince struct {
	From time.Time
}

func (Equals) predicate()       {}
func (CreatedSince) predicate() {}

// Filter is a conjunction of predicates. An empty filter matches everything.
type Filter []Predicate

// DateBucket names a relative creation-time window.
type DateBucket string

const (
	BucketToday DateBucket = "today"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
)

// WeekStart fixes the first day of the week for the "week" bucket. The
// original dashboard counted from Sunday, so Sunday it stays.
const WeekStart = time.Sunday

// BucketStart resolves a date bucket to its lower bound in now's location.
// The second return is false for an empty or unrecognized bucket.
func BucketStart(bucket DateBucket, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch bucket {
	case BucketToday:
		return midnight, true
	case BucketWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday()-WeekStart)), true
	case BucketMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}
