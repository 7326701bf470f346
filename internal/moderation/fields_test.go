package moderation

import (
	"sort"
	"testing"

	"dormirlahaut/internal/poi"
)

func TestNewFieldSelectionStartsFullySelected(t *testing.T) {
	changes := poi.EditPOIPayload{"name": "B", "altitude": float64(1800)}
	sel := NewFieldSelection(changes)

	fields := sel.Selected()
	sort.Strings(fields)
	if len(fields) != 2 || fields[0] != "altitude" || fields[1] != "name" {
		t.Fatalf("unexpected selection: %v", fields)
	}
}

func TestToggle(t *testing.T) {
	sel := NewFieldSelection(poi.EditPOIPayload{"name": "B", "altitude": float64(1800)})

	sel.Toggle("name")
	fields := sel.Selected()
	if len(fields) != 1 || fields[0] != "altitude" {
		t.Fatalf("toggle off failed: %v", fields)
	}

	sel.Toggle("name")
	if len(sel.Selected()) != 2 {
		t.Fatalf("toggle back on failed")
	}

	// Unknown fields cannot be toggled into existence.
	sel.Toggle("category")
	if len(sel.Selected()) != 2 {
		t.Fatalf("unknown field toggled in")
	}
}

func TestApplySelected(t *testing.T) {
	p := poi.POI{Name: "Refuge", Altitude: 2100, SunExposition: "Est", Description: "d"}
	changes := poi.EditPOIPayload{
		"name":          "Refuge rénové",
		"altitude":      float64(1800),
		"sunExposition": "Ouest",
		"description":   "nouveau",
	}

	got := ApplySelected(p, changes, []string{"name", "altitude"})
	if got.Name != "Refuge rénové" || got.Altitude != 1800 {
		t.Fatalf("selected fields not applied: %+v", got)
	}
	// Unselected proposals leave the current values alone.
	if got.SunExposition != "Est" || got.Description != "d" {
		t.Fatalf("unselected fields applied: %+v", got)
	}
}

func TestApplySelectedIntAltitude(t *testing.T) {
	p := poi.POI{Altitude: 2100}
	got := ApplySelected(p, poi.EditPOIPayload{"altitude": 1800}, []string{"altitude"})
	if got.Altitude != 1800 {
		t.Fatalf("int altitude not applied: %d", got.Altitude)
	}
}

func TestApplySelectedIgnoresUnknownField(t *testing.T) {
	p := poi.POI{Name: "Refuge"}
	got := ApplySelected(p, poi.EditPOIPayload{"name": "B"}, []string{"massif"})
	if got.Name != "Refuge" {
		t.Fatalf("field outside the changes applied: %+v", got)
	}
}
