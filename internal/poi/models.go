package poi

import "encoding/json"

type Category string

const (
	CategoryCabane  Category = "Cabane"
	CategoryRefuge  Category = "Refuge"
	CategoryBivouac Category = "Bivouac"
)

func Categories() []Category {
	return []Category{CategoryCabane, CategoryRefuge, CategoryBivouac}
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryCabane, CategoryRefuge, CategoryBivouac:
		return true
	}
	return false
}

type Massif string

func Massifs() []Massif {
	return []Massif{
		"Mont Blanc", "Vanoise", "Écrins", "Queyras", "Mercantour",
		"Vercors", "Chartreuse", "Bauges", "Aravis", "Belledonne",
	}
}

func ValidMassif(m Massif) bool {
	for _, known := range Massifs() {
		if m == known {
			return true
		}
	}
	return false
}

// Exposure is the sun exposure facet. The empty value means "not recorded".
type Exposure string

func Exposures() []Exposure {
	return []Exposure{
		"Nord", "Sud", "Est", "Ouest",
		"Nord-Est", "Nord-Ouest", "Sud-Est", "Sud-Ouest",
	}
}

func ValidExposure(e Exposure) bool {
	if e == "" {
		return true
	}
	for _, known := range Exposures() {
		if e == known {
			return true
		}
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

type POI struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	Massif        Massif      `json:"massif"`
	Coordinates   Coordinates `json:"coordinates"`
	Description   string      `json:"description"`
	Altitude      int         `json:"altitude"`
	SunExposition Exposure    `json:"sunExposition,omitempty"`
	Photos        []string    `json:"photos"`
	Comments      []Comment   `json:"comments"`
	Likes         int         `json:"likes"`
	LikedBy       []string    `json:"likedBy,omitempty"`
}

// UnmarshalJSON keeps the backend's mongo-style "_id" and the client-side
// "id" interchangeable: whichever is present wins, "_id" preferred.
func (p *POI) UnmarshalJSON(data []byte) error {
	type alias POI
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		p.ID = aux.MongoID
	}
	return nil
}

func (p POI) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
