package mapview

import "errors"

// Layer is a switchable tile style. Switching layers only swaps the tile
// URL template; POI data is untouched.
type Layer struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

var ErrUnknownLayer = errors.New("unknown tile layer")

const DefaultLayer = "classic"

func Layers() []Layer {
	return []Layer{
		{
			Key:         "classic",
			Name:        "Carte classique",
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "© OpenStreetMap contributors",
		},
		{
			Key:         "relief",
			Name:        "Relief",
			URL:         "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
			Attribution: "Map data: © OpenStreetMap contributors, SRTM | Map style: © OpenTopoMap",
		},
		{
			Key:         "satellite",
			Name:        "Satellite",
			URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
			Attribution: "Tiles © Esri — Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
		},
	}
}

func LayerByKey(key string) (Layer, error) {
	for _, l := range Layers() {
		if l.Key == key {
			return l, nil
		}
	}
	return Layer{}, ErrUnknownLayer
}
