package mapview

import (
	"dormirlahaut/internal/poi"
	"dormirlahaut/internal/shared/geo"
)

type Mode string

const (
	ModeNormal         Mode = "normal"
	ModeSelectLocation Mode = "select-location"
)

// Default viewport over the French Alps.
var DefaultCenter = poi.Coordinates{Lat: 45.5, Lng: 6.5}

const (
	DefaultZoom = 8
	FocusZoom   = 14
)

// Preview is the quick panel opened by an unclustered marker click.
type Preview struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category poi.Category `json:"category"`
	Massif   poi.Massif   `json:"massif"`
	Altitude int          `json:"altitude"`
	Icon     string       `json:"icon"`
	Distance string       `json:"distance,omitempty"`
}

// MarkerIcon picks the marker style for a category; unknown categories fall
// back to the generic pin.
func MarkerIcon(c poi.Category) string {
	switch c {
	case poi.CategoryCabane:
		return "marker-cabane"
	case poi.CategoryRefuge:
		return "marker-refuge"
	case poi.CategoryBivouac:
		return "marker-bivouac"
	}
	return "marker-default"
}

// Surface models one map view: active layer, interaction mode, the
// temporary marker while a proposal location is being picked, and the
// current viewport.
type Surface struct {
	Layer  Layer
	Mode   Mode
	Temp   *poi.Coordinates
	Center poi.Coordinates
	Zoom   int
}

func NewSurface() *Surface {
	layer, _ := LayerByKey(DefaultLayer)
	return &Surface{
		Layer:  layer,
		Mode:   ModeNormal,
		Center: DefaultCenter,
		Zoom:   DefaultZoom,
	}
}

func (s *Surface) SwitchLayer(key string) error {
	layer, err := LayerByKey(key)
	if err != nil {
		return err
	}
	s.Layer = layer
	return nil
}

// EnterSelectLocation switches map clicks from marker interaction to
// coordinate picking.
func (s *Surface) EnterSelectLocation() {
	s.Mode = ModeSelectLocation
	s.Temp = nil
}

// CancelSelectLocation drops the temporary marker and restores normal mode.
func (s *Surface) CancelSelectLocation() {
	s.Mode = ModeNormal
	s.Temp = nil
}

// Click handles a raw map click. In select-location mode it moves the
// temporary marker and reports the picked coordinates; in normal mode map
// background clicks do nothing.
func (s *Surface) Click(lat, lng float64) (poi.Coordinates, bool) {
	if s.Mode != ModeSelectLocation {
		return poi.Coordinates{}, false
	}
	c := poi.Coordinates{Lat: lat, Lng: lng}
	s.Temp = &c
	return c, true
}

// ConfirmLocation finalizes the pick, returning the chosen coordinates.
func (s *Surface) ConfirmLocation() (poi.Coordinates, bool) {
	if s.Mode != ModeSelectLocation || s.Temp == nil {
		return poi.Coordinates{}, false
	}
	c := *s.Temp
	s.Mode = ModeNormal
	s.Temp = nil
	return c, true
}

// Focus pans and zooms to one POI by id, for deep links (/map?poi=...).
// An id missing from the filtered set is a no-op.
func (s *Surface) Focus(pois []poi.POI, id string) bool {
	for _, p := range pois {
		if p.ID == id {
			s.Center = p.Coordinates
			s.Zoom = FocusZoom
			return true
		}
	}
	return false
}

// ClickCluster zooms the viewport until the cluster's members separate.
func (s *Surface) ClickCluster(c Cluster) {
	s.Center, s.Zoom = ZoomToFit(c, s.Zoom)
}

// PreviewFor builds the marker preview, with the distance from the user's
// position when one is known.
func PreviewFor(p poi.POI, user *poi.Coordinates) Preview {
	pv := Preview{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Massif:   p.Massif,
		Altitude: p.Altitude,
		Icon:     MarkerIcon(p.Category),
	}
	if user != nil {
		km := geo.HaversineKm(user.Lat, user.Lng, p.Coordinates.Lat, p.Coordinates.Lng)
		pv.Distance = geo.FormatDistance(km)
	}
	return pv
}
