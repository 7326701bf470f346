package server

import (
	"encoding/json"

	"dormirlahaut/internal/moderation"
	"dormirlahaut/internal/poi"

	"github.com/gofiber/fiber/v2"
)

func registerAdminRoutes(s *Server, r fiber.Router) {
	r.Use(requireAdmin)

	// The queue with its aggregate counters, optionally filtered by type.
	// edit_poi entries carry a default field selection (all proposed fields)
	// for the approval form.
	r.Get("/", func(c *fiber.Ctx) error {
		typeFilter := c.Query("type", "all")
		if typeFilter != "all" && !poi.ValidContributionType(poi.ContributionType(typeFilter)) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown contribution type")
		}

		pending, err := s.Queue.Pending(c.Context(), token(c), typeFilter)
		if err != nil {
			return err
		}
		stats, err := s.Queue.Stats(c.Context(), token(c))
		if err != nil {
			return err
		}

		type entry struct {
			poi.Contribution
			SelectedFields []string `json:"selectedFields,omitempty"`
		}
		entries := make([]entry, 0, len(pending))
		for _, contrib := range pending {
			e := entry{Contribution: contrib}
			if contrib.Type == poi.TypeEditPOI {
				var changes poi.EditPOIPayload
				if json.Unmarshal(contrib.Data, &changes) == nil {
					e.SelectedFields = moderation.NewFieldSelection(changes).Selected()
				}
			}
			entries = append(entries, e)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"modifications": entries,
				"stats":         stats,
			},
		})
	})

	// Approve: irreversible, so the confirmation flag is mandatory. The
	// contribution's type comes from the queue, never from the request, so a
	// mislabeled body cannot dodge the edit_poi field guard.
	r.Post("/pending/:id/approve", func(c *fiber.Ctx) error {
		var req struct {
			SelectedFields []string `json:"selectedFields"`
			Confirm        bool     `json:"confirm"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if !req.Confirm {
			return moderation.ErrNotConfirmed
		}
		pending, err := s.Queue.Pending(c.Context(), token(c), "all")
		if err != nil {
			return err
		}
		var contrib *poi.Contribution
		for i := range pending {
			if pending[i].ID == c.Params("id") {
				contrib = &pending[i]
				break
			}
		}
		if contrib == nil {
			return fiber.NewError(fiber.StatusNotFound, "Contribution introuvable")
		}
		if err := s.Queue.Approve(c.Context(), token(c), *contrib, req.SelectedFields); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Modification approuvée !"}})
	})

	r.Post("/pending/:id/reject", func(c *fiber.Ctx) error {
		var req struct {
			Reason  string `json:"reason"`
			Confirm bool   `json:"confirm"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if !req.Confirm {
			return moderation.ErrNotConfirmed
		}
		if err := s.Queue.Reject(c.Context(), token(c), c.Params("id"), req.Reason); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Modification rejetée"}})
	})

	r.Delete("/pois/:poiId/comments/:commentId", func(c *fiber.Ctx) error {
		var req struct {
			Confirm bool `json:"confirm"`
		}
		if err := c.BodyParser(&req); err != nil || !req.Confirm {
			return fiber.NewError(fiber.StatusBadRequest, "Confirmation requise")
		}
		if err := s.Queue.DeleteComment(c.Context(), token(c), c.Params("poiId"), c.Params("commentId")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Commentaire supprimé"}})
	})
}
