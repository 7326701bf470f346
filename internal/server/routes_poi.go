package server

import (
	"io"
	"strconv"

	"dormirlahaut/internal/catalog"
	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/poi"
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
)

// placeholderPhoto backs the "never an empty image" rule for POIs without
// photos.
const placeholderPhoto = "/static/placeholder-poi.svg"

type poiCard struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category poi.Category `json:"category"`
	Massif   poi.Massif   `json:"massif"`
	Altitude int          `json:"altitude"`
	Photo    string       `json:"photo"`
	Likes    int          `json:"likes"`
}

func cardFor(p poi.POI) poiCard {
	photo := placeholderPhoto
	if len(p.Photos) > 0 {
		photo = p.Photos[0]
	}
	return poiCard{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Massif:   p.Massif,
		Altitude: p.Altitude,
		Photo:    photo,
		Likes:    p.Likes,
	}
}

func registerPOIRoutes(s *Server) {
	// List view: same filtered set as the map, paginated 12 per card page.
	s.App.Get("/pois", func(c *fiber.Ctx) error {
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
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "stale"})
		}
		pois := catalog.ByExposure(res.POIs, c.Query("exposition"))

		pageNum, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return catalog.ErrPageOutOfRange
		}
		page, err := catalog.Paginate(len(pois), pageNum)
		if err != nil {
			return err
		}

		cards := make([]poiCard, 0, page.End-page.Start)
		for _, p := range pois[page.Start:page.End] {
			cards = append(cards, cardFor(p))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"pois":        cards,
				"count":       len(pois),
				"page":        page.Number,
				"pageCount":   page.Total,
				"hasPrev":     page.HasPrev,
				"hasNext":     page.HasNext,
				"pageNumbers": catalog.PageNumbers(page.Number, page.Total),
			},
		})
	})

	// Detail view. Pending flags gate the add affordances client-side; they
	// come from the user's own contribution list, so they stay sticky until
	// a refetch stops reporting them.
	s.App.Get("/poi/:id", func(c *fiber.Ctx) error {
		p, err := s.Catalog.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}

		photos := p.Photos
		if len(photos) == 0 {
			photos = []string{placeholderPhoto}
		}

		sess := session.FromCtx(c)
		view := fiber.Map{
			"poi":          p,
			"photos":       photos,
			"commentCount": len(p.Comments),
		}

		if sess.Authenticated() {
			view["isLiked"] = p.LikedByUser(sess.User.ID)

			var bookmarkIDs []string
			if err := s.Gateway.Get(c.Context(), "/pois/user/bookmarks", nil, token(c), &bookmarkIDs); err == nil {
				for _, id := range bookmarkIDs {
					if id == p.ID {
						view["isBookmarked"] = true
						break
					}
				}
			}

			if contribs, err := s.Contribs.UserContributions(c.Context(), token(c)); err == nil {
				pending := contribution.PendingFor(contribs, p.ID)
				view["pending"] = fiber.Map{
					"comment": pending[poi.TypeComment],
					"photo":   pending[poi.TypePhoto],
					"edit":    pending[poi.TypeEditPOI],
				}
			}
		}

		return c.JSON(fiber.Map{"success": true, "data": view})
	})

	// Like/bookmark toggles are NOT moderated; they apply immediately.
	s.App.Post("/poi/:id/like", requireAuth, func(c *fiber.Ctx) error {
		var result struct {
			IsLiked bool `json:"isLiked"`
			Likes   int  `json:"likes"`
		}
		if err := s.Gateway.Post(c.Context(), "/pois/"+c.Params("id")+"/like", token(c), nil, &result); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": result})
	})

	s.App.Post("/poi/:id/bookmark", requireAuth, func(c *fiber.Ctx) error {
		var result struct {
			IsBookmarked   bool `json:"isBookmarked"`
			BookmarksCount int  `json:"bookmarksCount"`
		}
		if err := s.Gateway.Post(c.Context(), "/pois/"+c.Params("id")+"/bookmark", token(c), nil, &result); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": result})
	})

	s.App.Post("/poi/:id/comments", requireAuth, func(c *fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := s.gate(c, c.Params("id"), poi.TypeComment); err != nil {
			return err
		}
		if err := s.Contribs.AddComment(c.Context(), token(c), c.Params("id"), req.Text); err != nil {
			return err
		}
		return accepted(c, "Commentaire soumis ! Il sera visible après validation.")
	})

	// Photo by URL or by file upload; exactly one path per submission.
	s.App.Post("/poi/:id/photos", requireAuth, func(c *fiber.Ctx) error {
		if err := s.gate(c, c.Params("id"), poi.TypePhoto); err != nil {
			return err
		}

		file, fileErr := c.FormFile("photo")
		var req struct {
			PhotoURL string `json:"photoUrl"`
		}
		_ = c.BodyParser(&req)

		switch {
		case fileErr == nil && req.PhotoURL != "":
			return fiber.NewError(fiber.StatusBadRequest, contribution.ErrBothPhotoInputs.Error())
		case fileErr == nil:
			src, err := file.Open()
			if err != nil {
				return err
			}
			defer src.Close()
			content, err := io.ReadAll(src)
			if err != nil {
				return err
			}
			if err := s.Contribs.UploadPhoto(c.Context(), token(c), c.Params("id"), contribution.PhotoFile{
				Name:    file.Filename,
				Content: content,
			}); err != nil {
				return err
			}
		case req.PhotoURL != "":
			if err := s.Contribs.AddPhotoURL(c.Context(), token(c), c.Params("id"), req.PhotoURL); err != nil {
				return err
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, contribution.ErrNoPhotoInput.Error())
		}
		return accepted(c, "Photo soumise ! Elle sera visible après validation.")
	})

	// Edit proposal: only the diff against current values travels; an empty
	// diff never reaches the network. Fields absent from the body keep their
	// current values, so an omission can never propose clearing a field.
	s.App.Patch("/poi/:id", requireAuth, func(c *fiber.Ctx) error {
		var req struct {
			Name          *string       `json:"name"`
			Altitude      *int          `json:"altitude"`
			SunExposition *poi.Exposure `json:"sunExposition"`
			Description   *string       `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := s.gate(c, c.Params("id"), poi.TypeEditPOI); err != nil {
			return err
		}
		current, err := s.Catalog.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		draft := contribution.DraftFrom(current)
		if req.Name != nil {
			draft.Name = *req.Name
		}
		if req.Altitude != nil {
			draft.Altitude = *req.Altitude
		}
		if req.SunExposition != nil {
			draft.SunExposition = *req.SunExposition
		}
		if req.Description != nil {
			draft.Description = *req.Description
		}
		if err := s.Contribs.SuggestEdit(c.Context(), token(c), current, draft); err != nil {
			return err
		}
		return accepted(c, "Modifications soumises ! Elles seront visibles après validation.")
	})
}

// gate refuses a submission while one of the same kind is already pending
// for this POI.
func (s *Server) gate(c *fiber.Ctx, poiID string, kind poi.ContributionType) error {
	contribs, err := s.Contribs.UserContributions(c.Context(), token(c))
	if err != nil {
		return err
	}
	return contribution.PendingFor(contribs, poiID).Gate(kind)
}

func accepted(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": message},
	})
}
