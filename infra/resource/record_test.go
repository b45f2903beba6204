package resource

import (
	"reflect"
	"testing"
)

func TestRecordList(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"empty", "", nil},
		{"single", "u1", []string{"u1"}},
		{"many", "u1,u2,u3", []string{"u1", "u2", "u3"}},
		{"whitespace and blanks", " u1, ,u2 ,", []string{"u1", "u2"}},
		{"missing field", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{}
			if tt.raw != nil {
				rec["likes"] = tt.raw
			}
			if got := rec.List("likes"); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("List = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordInt(t *testing.T) {
	rec := Record{"a": float64(7), "b": 3, "c": "x"}
	if rec.Int("a") != 7 || rec.Int("b") != 3 || rec.Int("c") != 0 || rec.Int("missing") != 0 {
		t.Fatalf("Int accessors wrong: %d %d %d", rec.Int("a"), rec.Int("b"), rec.Int("c"))
	}
}

func TestRecordTime(t *testing.T) {
	rec := Record{"ts": "2026-01-03T10:00:00Z", "bad": "yesterday"}
	if rec.Time("ts").IsZero() {
		t.Fatal("expected parsed time")
	}
	if !rec.Time("bad").IsZero() || !rec.Time("missing").IsZero() {
		t.Fatal("malformed or missing time should be zero")
	}
}
