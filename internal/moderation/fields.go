package moderation

import (
	"dormirlahaut/internal/poi"
)

// FieldSelection tracks which proposed fields of an edit_poi contribution
// the admin accepts. Every field starts selected.
type FieldSelection map[string]bool

func NewFieldSelection(changes poi.EditPOIPayload) FieldSelection {
	sel := FieldSelection{}
	for field := range changes {
		sel[field] = true
	}
	return sel
}

func (s FieldSelection) Toggle(field string) {
	if _, ok := s[field]; ok {
		s[field] = !s[field]
	}
}

func (s FieldSelection) Selected() []string {
	var fields []string
	for field, on := range s {
		if on {
			fields = append(fields, field)
		}
	}
	return fields
}

// ApplySelected produces the POI as approval will leave it: exactly the
// chosen fields taken from the proposed changes, everything else untouched.
func ApplySelected(p poi.POI, changes poi.EditPOIPayload, fields []string) poi.POI {
	for _, field := range fields {
		value, ok := changes[field]
		if !ok {
			continue
		}
		switch field {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "description":
			if v, ok := value.(string); ok {
				p.Description = v
			}
		case "altitude":
			switch v := value.(type) {
			case float64: // JSON numbers decode as float64
				p.Altitude = int(v)
			case int:
				p.Altitude = v
			}
		case "sunExposition":
			if v, ok := value.(string); ok {
				p.SunExposition = poi.Exposure(v)
			}
		}
	}
	return p
}
