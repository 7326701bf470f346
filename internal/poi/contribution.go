package poi

import (
	"encoding/json"
	"fmt"
)

type ContributionType string

const (
	TypeNewPOI  ContributionType = "new_poi"
	TypeComment ContributionType = "comment"
	TypePhoto   ContributionType = "photo"
	TypeEditPOI ContributionType = "edit_poi"
)

func ContributionTypes() []ContributionType {
	return []ContributionType{TypeNewPOI, TypeComment, TypePhoto, TypeEditPOI}
}

func ValidContributionType(t ContributionType) bool {
	switch t {
	case TypeNewPOI, TypeComment, TypePhoto, TypeEditPOI:
		return true
	}
	return false
}

type ContributionStatus string

const (
	StatusPending  ContributionStatus = "pending"
	StatusApproved ContributionStatus = "approved"
	StatusRejected ContributionStatus = "rejected"
)

// ContributorRef identifies the submitting user as the moderation queue
// displays them.
type ContributorRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POIRef is the shallow target reference carried by comment/photo/edit
// contributions. Absent for new_poi.
type POIRef struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Contribution is a moderated submission. Data is a polymorphic payload
// keyed by Type; decode it with Payload for exhaustive handling.
type Contribution struct {
	ID              string             `json:"_id"`
	Type            ContributionType   `json:"type"`
	User            ContributorRef     `json:"userId"`
	POI             *POIRef            `json:"poiId,omitempty"`
	Data            json.RawMessage    `json:"data"`
	Status          ContributionStatus `json:"status"`
	CreatedAt       string             `json:"createdAt"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
}

type NewPOIPayload struct {
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	Massif        Massif      `json:"massif"`
	Description   string      `json:"description"`
	Altitude      int         `json:"altitude"`
	SunExposition Exposure    `json:"sunExposition,omitempty"`
	Coordinates   Coordinates `json:"coordinates"`
	Photos        []string    `json:"photos"`
}

type CommentPayload struct {
	Text string `json:"text"`
}

type PhotoPayload struct {
	PhotoURL string `json:"photoUrl"`
}

// EditPOIPayload carries only the fields that differ from the target POI.
type EditPOIPayload map[string]any

// Payload decodes Data according to the contribution's type tag.
func (c Contribution) Payload() (any, error) {
	switch c.Type {
	case TypeNewPOI:
		var p NewPOIPayload
		if err := json.Unmarshal(c.Data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeComment:
		var p CommentPayload
		if err := json.Unmarshal(c.Data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypePhoto:
		var p PhotoPayload
		if err := json.Unmarshal(c.Data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeEditPOI:
		var p EditPOIPayload
		if err := json.Unmarshal(c.Data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown contribution type %q", c.Type)
	}
}
