package contribution

import (
	"errors"
	"strings"

	"dormirlahaut/internal/poi"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidMassif       = errors.New("invalid massif")
	ErrInvalidExposure     = errors.New("invalid sun exposure")
	ErrNoLocation          = errors.New("location not selected")
	ErrNoChanges           = errors.New("no changes to submit")
	ErrEmptyComment        = errors.New("comment text is required")
)

// NewPOIDraft is the proposal form for a new POI. Coordinates come from the
// map's select-location mode.
type NewPOIDraft struct {
	Name          string
	Category      poi.Category
	Massif        poi.Massif
	Description   string
	Altitude      int
	SunExposition poi.Exposure
	Coordinates   poi.Coordinates
	PhotoURL      string
}

// DefaultDraft mirrors the proposal form's initial values.
func DefaultDraft() NewPOIDraft {
	return NewPOIDraft{
		Category:      poi.CategoryBivouac,
		Massif:        "Mont Blanc",
		Altitude:      1000,
		SunExposition: "Sud",
	}
}

func (d NewPOIDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrDescriptionRequired
	}
	if !poi.ValidCategory(d.Category) {
		return ErrInvalidCategory
	}
	if !poi.ValidMassif(d.Massif) {
		return ErrInvalidMassif
	}
	if !poi.ValidExposure(d.SunExposition) {
		return ErrInvalidExposure
	}
	if d.Coordinates == (poi.Coordinates{}) {
		return ErrNoLocation
	}
	return nil
}

func (d NewPOIDraft) payload() poi.NewPOIPayload {
	photos := []string{}
	if d.PhotoURL != "" {
		photos = append(photos, d.PhotoURL)
	}
	return poi.NewPOIPayload{
		Name:          strings.TrimSpace(d.Name),
		Category:      d.Category,
		Massif:        d.Massif,
		Description:   strings.TrimSpace(d.Description),
		Altitude:      d.Altitude,
		SunExposition: d.SunExposition,
		Coordinates:   d.Coordinates,
		Photos:        photos,
	}
}

// EditDraft is the editable subset of a POI's fields.
type EditDraft struct {
	Name          string
	Altitude      int
	SunExposition poi.Exposure
	Description   string
}

// DraftFrom seeds an edit form with the POI's current values.
func DraftFrom(p poi.POI) EditDraft {
	return EditDraft{
		Name:          p.Name,
		Altitude:      p.Altitude,
		SunExposition: p.SunExposition,
		Description:   p.Description,
	}
}

// Diff computes the set difference between the draft and the POI's current
// values. Only differing fields appear in the result; an empty map means
// there is nothing to submit.
func (d EditDraft) Diff(current poi.POI) poi.EditPOIPayload {
	changes := poi.EditPOIPayload{}
	if d.Name != current.Name {
		changes["name"] = d.Name
	}
	if d.Altitude != current.Altitude {
		changes["altitude"] = d.Altitude
	}
	if d.SunExposition != current.SunExposition {
		changes["sunExposition"] = string(d.SunExposition)
	}
	if d.Description != current.Description {
		changes["description"] = d.Description
	}
	return changes
}
