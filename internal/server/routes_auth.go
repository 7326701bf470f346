package server

import (
	"bytes"
	"strings"

	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
)

// signinResponse is the flat shape the auth endpoints answer with.
type signinResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func registerAuthRoutes(s *Server, r fiber.Router) {
	r.Post("/signin", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email et mot de passe requis")
		}

		var resp signinResponse
		if err := s.Gateway.Post(c.Context(), "/auth/signin", nil, req, &resp); err != nil {
			return err
		}
		if err := s.Sessions.Login(c.Context(), session.IDFromCtx(c), resp.Token, resp.User); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"user": resp.User}})
	})

	// Sign-up; mismatched or too-short passwords are blocked before any
	// network call. The account stays unusable until email verification.
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req struct {
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email et mot de passe requis")
		}
		if req.Password != req.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Les mots de passe ne correspondent pas")
		}
		if len(req.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Le mot de passe doit contenir au moins 6 caractères")
		}

		body := map[string]string{"email": req.Email, "password": req.Password}
		if err := s.Gateway.Post(c.Context(), "/auth/signup", nil, body, nil); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"message": "Vérifiez votre email pour activer votre compte !"},
		})
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if err := s.Sessions.Logout(c.Context(), session.IDFromCtx(c)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	})

	r.Get("/verify-email/:token", func(c *fiber.Ctx) error {
		if err := s.Gateway.Get(c.Context(), "/auth/verify-email/"+c.Params("token"), nil, nil, nil); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Email vérifié, vous pouvez vous connecter."}})
	})

	r.Post("/resend-verification", func(c *fiber.Ctx) error {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err != nil || req.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email requis")
		}
		if err := s.Gateway.Post(c.Context(), "/auth/resend-verification", nil, req, nil); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Email de vérification renvoyé."}})
	})

	r.Post("/forgot-password", func(c *fiber.Ctx) error {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err != nil || req.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email requis")
		}
		if err := s.Gateway.Post(c.Context(), "/auth/forgot-password", nil, req, nil); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Email de réinitialisation envoyé."}})
	})

	r.Post("/reset-password/:token", func(c *fiber.Ctx) error {
		var req struct {
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := c.BodyParser(&req); err != nil || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mot de passe requis")
		}
		if req.Password != req.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Les mots de passe ne correspondent pas")
		}
		if len(req.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Le mot de passe doit contenir au moins 6 caractères")
		}
		body := map[string]string{"password": req.Password}
		if err := s.Gateway.Post(c.Context(), "/auth/reset-password/"+c.Params("token"), nil, body, nil); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "Mot de passe réinitialisé."}})
	})

	// Profile update: proxied, then merged into the persisted session so
	// every later request sees the new identity.
	r.Patch("/profile", requireAuth, func(c *fiber.Ctx) error {
		var req struct {
			Name   string `json:"name"`
			Avatar string `json:"avatar"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if name := strings.TrimSpace(req.Name); name != "" && len(name) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom doit contenir au moins 2 caractères")
		}

		var resp struct {
			User session.User `json:"user"`
		}
		if err := s.Gateway.Patch(c.Context(), "/auth/profile", token(c), req, &resp); err != nil {
			return err
		}

		patch := session.UserPatch{}
		if resp.User.Name != "" {
			patch.Name = &resp.User.Name
		}
		if resp.User.Avatar != "" {
			patch.Avatar = &resp.User.Avatar
		}
		updated, err := s.Sessions.UpdateUser(c.Context(), session.IDFromCtx(c), patch)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"user": updated.User}})
	})

	// Avatar upload: validated as an image locally, forwarded as multipart.
	r.Post("/avatar", requireAuth, func(c *fiber.Ctx) error {
		file, err := c.FormFile("avatar")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Aucun fichier fourni")
		}
		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()

		content, err := contribution.ValidateImage(src, int64(s.Cfg.MaxPhotoMB)*1024*1024)
		if err != nil {
			return err
		}

		var resp struct {
			User session.User `json:"user"`
		}
		if err := s.Gateway.PostMultipart(c.Context(), "/auth/avatar", token(c), "avatar", file.Filename, bytes.NewReader(content), &resp); err != nil {
			return err
		}

		if resp.User.Avatar != "" {
			if _, err := s.Sessions.UpdateUser(c.Context(), session.IDFromCtx(c), session.UserPatch{Avatar: &resp.User.Avatar}); err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"avatar": resp.User.Avatar}})
	})
}
