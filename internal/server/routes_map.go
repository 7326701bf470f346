package server

import (
	"strconv"

	"dormirlahaut/internal/catalog"
	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/mapview"
	"dormirlahaut/internal/poi"
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
)

type clusterView struct {
	Lat      float64           `json:"lat"`
	Lng      float64           `json:"lng"`
	Size     int               `json:"size"`
	Previews []mapview.Preview `json:"previews,omitempty"`
}

func registerMapRoutes(s *Server, r fiber.Router) {
	// The map page: fetches the filtered set server-side, applies the local
	// exposure facet, and returns clustered markers for the viewport.
	r.Get("/", func(c *fiber.Ctx) error {
		filter := catalog.Filter{
			Category: c.Query("category"),
			Massif:   c.Query("massif"),
			Search:   c.Query("search"),
		}
		res, err := s.Catalog.FetchFiltered(c.Context(), session.IDFromCtx(c), filter)
		if err != nil {
			return err
		}
		if res.Stale {
			// A later filter change already resolved; the caller refetches.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "stale"})
		}

		pois := catalog.ByExposure(res.POIs, c.Query("exposition"))

		surface := mapview.NewSurface()
		if layer := c.Query("layer"); layer != "" {
			if err := surface.SwitchLayer(layer); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		if zoom, err := strconv.Atoi(c.Query("zoom", "")); err == nil && zoom >= mapview.MinZoom && zoom <= mapview.MaxZoom {
			surface.Zoom = zoom
		}
		// Deep link focus; an id outside the filtered set is a no-op.
		if focus := c.Query("poi"); focus != "" {
			surface.Focus(pois, focus)
		}

		var user *poi.Coordinates
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat == nil && errLng == nil {
			user = &poi.Coordinates{Lat: lat, Lng: lng}
		}

		clusters := mapview.ClusterPOIs(pois, surface.Zoom)
		views := make([]clusterView, 0, len(clusters))
		for _, cl := range clusters {
			v := clusterView{Lat: cl.Center.Lat, Lng: cl.Center.Lng, Size: cl.Size()}
			if cl.Size() == 1 {
				v.Previews = []mapview.Preview{mapview.PreviewFor(cl.Members[0], user)}
			}
			views = append(views, v)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"count":    len(pois),
				"clusters": views,
				"center":   surface.Center,
				"zoom":     surface.Zoom,
				"layer":    surface.Layer,
				"layers":   mapview.Layers(),
			},
		})
	})

	// Proposal submission; coordinates come from select-location mode. The
	// proposed POI stays invisible until an administrator approves it.
	r.Post("/propose", requireAuth, func(c *fiber.Ctx) error {
		var req struct {
			Name          string          `json:"name"`
			Category      poi.Category    `json:"category"`
			Massif        poi.Massif      `json:"massif"`
			Description   string          `json:"description"`
			Altitude      int             `json:"altitude"`
			SunExposition poi.Exposure    `json:"sunExposition"`
			Coordinates   poi.Coordinates `json:"coordinates"`
			PhotoURL      string          `json:"photoUrl"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		draft := contribution.NewPOIDraft{
			Name:          req.Name,
			Category:      req.Category,
			Massif:        req.Massif,
			Description:   req.Description,
			Altitude:      req.Altitude,
			SunExposition: req.SunExposition,
			Coordinates:   req.Coordinates,
			PhotoURL:      req.PhotoURL,
		}
		if err := s.Contribs.ProposePOI(c.Context(), token(c), draft); err != nil {
			return err
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"message": "Votre proposition de spot a été soumise et sera examinée par un administrateur."},
		})
	})
}
