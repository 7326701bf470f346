package server

import (
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func registerProfileRoutes(s *Server, r fiber.Router) {
	r.Use(requireAuth)

	r.Get("/", func(c *fiber.Ctx) error {
		sess := session.FromCtx(c)
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"user": sess.User}})
	})

	// The backend answers with bookmark ids; each resolves to a full POI for
	// the card grid. An id that no longer resolves is dropped, not fatal.
	r.Get("/bookmarks", func(c *fiber.Ctx) error {
		var ids []string
		if err := s.Gateway.Get(c.Context(), "/pois/user/bookmarks", nil, token(c), &ids); err != nil {
			return err
		}
		cards := make([]poiCard, 0, len(ids))
		for _, id := range ids {
			p, err := s.Catalog.Get(c.Context(), id)
			if err != nil {
				s.Log.Warn("bookmark resolution failed", zap.String("poi", id), zap.Error(err))
				continue
			}
			cards = append(cards, cardFor(p))
		}
		return c.JSON(fiber.Map{"success": true, "data": cards})
	})

	// The contributions tab, including each rejection reason. This list is
	// also what resolves the sticky pending flags.
	r.Get("/contributions", func(c *fiber.Ctx) error {
		contribs, err := s.Contribs.UserContributions(c.Context(), token(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": contribs})
	})

	// Account deletion cascades server-side (bookmarks, contributions); the
	// local session goes with it. Irreversible, so confirmation is required.
	r.Delete("/", func(c *fiber.Ctx) error {
		var req struct {
			Confirm bool `json:"confirm"`
		}
		if err := c.BodyParser(&req); err != nil || !req.Confirm {
			return fiber.NewError(fiber.StatusBadRequest, "Confirmation requise")
		}
		if err := s.Gateway.Delete(c.Context(), "/user/delete-account", token(c), nil); err != nil {
			return err
		}
		if err := s.Sessions.Logout(c.Context(), session.IDFromCtx(c)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Votre compte a été supprimé."}})
	})
}
