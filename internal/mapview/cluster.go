package mapview

import (
	"math"

	"dormirlahaut/internal/poi"
)

// clusterRadiusPx is the fixed pixel threshold under which markers group.
const clusterRadiusPx = 60

const (
	tileSize = 256
	MinZoom  = 1
	MaxZoom  = 18
)

// project maps a coordinate to Web-Mercator pixel space at the given zoom.
func project(c poi.Coordinates, zoom int) (x, y float64) {
	size := float64(tileSize) * math.Exp2(float64(zoom))
	latRad := c.Lat * math.Pi / 180
	x = (c.Lng + 180) / 360 * size
	y = (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * size
	return x, y
}

// Cluster is one rendered symbol: a single marker when it has one member,
// a numbered cluster badge otherwise.
type Cluster struct {
	Center  poi.Coordinates
	Members []poi.POI
}

func (c Cluster) Size() int { return len(c.Members) }

// ClusterPOIs greedily groups markers whose pixel distance at this zoom is
// under the fixed radius. An empty input yields no clusters and no error.
func ClusterPOIs(pois []poi.POI, zoom int) []Cluster {
	type bucket struct {
		x, y    float64
		members []poi.POI
	}
	var buckets []*bucket

	for _, p := range pois {
		px, py := project(p.Coordinates, zoom)
		var home *bucket
		for _, b := range buckets {
			if math.Hypot(px-b.x, py-b.y) <= clusterRadiusPx {
				home = b
				break
			}
		}
		if home == nil {
			buckets = append(buckets, &bucket{x: px, y: py, members: []poi.POI{p}})
			continue
		}
		// Centroid shifts as members join.
		n := float64(len(home.members))
		home.x = (home.x*n + px) / (n + 1)
		home.y = (home.y*n + py) / (n + 1)
		home.members = append(home.members, p)
	}

	clusters := make([]Cluster, 0, len(buckets))
	for _, b := range buckets {
		var latSum, lngSum float64
		for _, m := range b.members {
			latSum += m.Coordinates.Lat
			lngSum += m.Coordinates.Lng
		}
		n := float64(len(b.members))
		clusters = append(clusters, Cluster{
			Center:  poi.Coordinates{Lat: latSum / n, Lng: lngSum / n},
			Members: b.members,
		})
	}
	return clusters
}

// ZoomToFit answers a cluster click: the smallest zoom past the current one
// at which the cluster's members stop grouping, capped at MaxZoom for
// members that share coordinates.
func ZoomToFit(c Cluster, currentZoom int) (poi.Coordinates, int) {
	if len(c.Members) < 2 {
		return c.Center, currentZoom
	}
	for z := currentZoom + 1; z <= MaxZoom; z++ {
		if len(ClusterPOIs(c.Members, z)) == len(c.Members) {
			return c.Center, z
		}
	}
	return c.Center, MaxZoom
}
