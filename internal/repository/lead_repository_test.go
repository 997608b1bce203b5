package repository

import (
	"testing"
	"time"

	"github.com/spec-kit/lead-service/internal/query"
)

func TestBuildWhere(t *testing.T) {
	t.Run("empty filter", func(t *testing.T) {
		where, args, err := buildWhere(nil)
		if err != nil {
			t.Fatalf("buildWhere: %v", err)
		}
		if where != "1=1" {
			t.Errorf("expected 1=1, got %q", where)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("conjunction with positional args", func(t *testing.T) {
		from := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		filter := query.Filter{
			query.CreatedSince{From: from},
			query.Equals{Field: query.FieldStatus, Value: "contacted"},
			query.Equals{Field: query.FieldSource, Value: "referral"},
		}
		where, args, err := buildWhere(filter)
		if err != nil {
			t.Fatalf("buildWhere: %v", err)
		}
		want := "1=1 AND created_at >= $1 AND status=$2 AND source=$3"
		if where != want {
			t.Errorf("expected %q, got %q", want, where)
		}
		if len(args) != 3 {
			t.Fatalf("expected 3 args, got %d", len(args))
		}
		if !args[0].(time.Time).Equal(from) || args[1] != "contacted" || args[2] != "referral" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("rejects non-whitelisted fields", func(t *testing.T) {
		_, _, err := buildWhere(query.Filter{query.Equals{Field: "email", Value: "x"}})
		if err == nil {
			t.Error("expected an error for a non-whitelisted column")
		}
	})
}

func TestMarshalNotes(t *testing.T) {
	raw, err := marshalNotes(nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("expected nil notes to marshal as [], got %s", raw)
	}
}
