package server

import (
	"errors"

	"dormirlahaut/internal/catalog"
	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/moderation"
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorHandler is the single place request failures become responses. An
// expired token clears the persisted session and forces sign-in regardless
// of which handler hit it; everything else becomes a JSON failure envelope
// with a localized message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var expired *gateway.AuthExpiredError
	if errors.As(err, &expired) {
		if id := c.Cookies(session.CookieName); id != "" {
			if lerr := s.Sessions.Logout(c.Context(), id); lerr != nil {
				s.Log.Warn("session clear on expiry failed", zap.Error(lerr))
			}
		}
		return c.Redirect("/signin?expired=true", fiber.StatusFound)
	}

	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 {
		status = apiErr.Status
	}

	if isValidationError(err) {
		status = fiber.StatusBadRequest
	}

	if status >= 500 {
		s.Log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   translate(err),
	})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		contribution.ErrNameRequired,
		contribution.ErrDescriptionRequired,
		contribution.ErrInvalidCategory,
		contribution.ErrInvalidMassif,
		contribution.ErrInvalidExposure,
		contribution.ErrNoLocation,
		contribution.ErrNoChanges,
		contribution.ErrEmptyComment,
		contribution.ErrInvalidPhotoURL,
		contribution.ErrNotAnImage,
		contribution.ErrAlreadyPending,
		moderation.ErrNoFieldsSelected,
		moderation.ErrEmptyReason,
		moderation.ErrNotConfirmed,
		catalog.ErrPageOutOfRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
