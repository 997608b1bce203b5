package query

import "time"

// Params carries the raw filter values taken from the query string.
type Params struct {
	DateFilter   string
	StatusFilter string
	SourceFilter string
}

// FieldStatus and FieldSource are the columns exact-match filters may touch.
const (
	FieldStatus = "status"
	FieldSource = "source"
)

// ForList builds the conjunction used by the paginated listing. Status and
// source values are skipped when absent or set to the "all" sentinel.
func ForList(p Params, now time.Time) Filter {
	f := dateOnly(p, now)
	if p.StatusFilter != "" && p.StatusFilter != "all" {
		f = append(f, Equals{Field: FieldStatus, Value: p.StatusFilter})
	}
	if p.SourceFilter != "" && p.SourceFilter != "all" {
		f = append(f, Equals{Field: FieldSource, Value: p.SourceFilter})
	}
	return f
}

// ForExport builds the conjunction used by the CSV export. Unlike the list
// endpoint, any non-empty status or source value is applied literally.
func ForExport(p Params, now time.Time) Filter {
	f := dateOnly(p, now)
	if p.StatusFilter != "" {
		f = append(f, Equals{Field: FieldStatus, Value: p.StatusFilter})
	}
	if p.SourceFilter != "" {
		f = append(f, Equals{Field: FieldSource, Value: p.SourceFilter})
	}
	return f
}

func dateOnly(p Params, now time.Time) Filter {
	var f Filter
	if from, ok := BucketStart(DateBucket(p.DateFilter), now); ok {
		f = append(f, CreatedSince{From: from})
	}
	return f
}
