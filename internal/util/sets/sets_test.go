package sets

import (
	"sort"
	"testing"
)

func TestNewAndHas(t *testing.T) {
	s := New("a", "b")
	if !s.Has("a") || !s.Has("b") {
		t.Fatalf("expected members present, got %v", s)
	}
	if s.Has("c") {
		t.Error("unexpected member c")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s := New[string]()
	s.Add("x")
	s.Add("x")
	if s.Len() != 1 {
		t.Errorf("expected len 1, got %d", s.Len())
	}
}

func TestValues(t *testing.T) {
	s := New("b", "a", "c")
	vals := s.Values()
	sort.Strings(vals)
	want := []string{"a", "b", "c"}
	if len(vals) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(vals))
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("values[%d] = %q, want %q", i, vals[i], want[i])
		}
	}
}
