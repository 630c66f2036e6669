package graph

import (
	"reflect"
	"testing"
)

func TestHistory_PushAndEvict(t *testing.T) {
	h := NewHistory(3)
	if h.Len() != 0 || h.Cap() != 3 {
		t.Fatalf("expected empty history of cap 3, got len %d cap %d", h.Len(), h.Cap())
	}
	if h.Last() != 0 {
		t.Errorf("Last() on empty history = %v", h.Last())
	}

	for _, v := range []float64{1, 2, 3} {
		h.Push(v)
	}
	if got := h.Values(); !reflect.DeepEqual(got, []float64{1, 2, 3}) {
		t.Errorf("Values() = %v", got)
	}

	h.Push(4)
	h.Push(5)
	if h.Len() != 3 {
		t.Errorf("expected len 3 after eviction, got %d", h.Len())
	}
	if got := h.Values(); !reflect.DeepEqual(got, []float64{3, 4, 5}) {
		t.Errorf("Values() after eviction = %v, want [3 4 5]", got)
	}
	if h.Recent(0) != 5 || h.Recent(2) != 3 || h.Last() != 5 {
		t.Errorf("Recent ordering wrong: %v %v", h.Recent(0), h.Recent(2))
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("expected empty after Reset, got %d", h.Len())
	}
}

func TestNewHistory_DefaultCapacity(t *testing.T) {
	if got := NewHistory(0).Cap(); got != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}
