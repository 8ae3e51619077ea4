package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"trail-profile-service/models"
	"trail-profile-service/services"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	group := app.Group("/api/v1/profiles")

	group.Post("/", func(c *fiber.Ctx) error {
		var req services.CreateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		view, err := profileService.CreateProfile(&req)
		if err != nil {
			return respondError(c, "failed to create profile", err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	group.Get("/user/:userId", func(c *fiber.Ctx) error {
		view, err := profileService.GetProfileByUserID(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to get profile", err)
		}
		return c.JSON(view)
	})

	group.Get("/ranking/points", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := profileService.GetRankingByPoints(page, size)
		if err != nil {
			return respondError(c, "failed to get ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/ranking/trails", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := profileService.GetRankingByTrails(page, size)
		if err != nil {
			return respondError(c, "failed to get ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/by-id/:profileId", func(c *fiber.Ctx) error {
		view, err := profileService.GetProfileByID(c.Params("profileId"))
		if err != nil {
			return respondError(c, "failed to get profile", err)
		}
		return c.JSON(view)
	})

	group.Get("/active", func(c *fiber.Ctx) error {
		views, err := profileService.GetActiveProfiles()
		if err != nil {
			return respondError(c, "failed to list active profiles", err)
		}
		return c.JSON(views)
	})

	group.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "trail-profile-service",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	group.Get("/search", func(c *fiber.Ctx) error {
		page, size := pageParams(c)

		var level *models.ExperienceLevel
		if raw := c.Query("experienceLevel"); raw != "" {
			parsed, ok := models.ParseExperienceLevel(raw)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid experience level",
					"cause": raw,
				})
			}
			level = &parsed
		}

		result, err := profileService.SearchProfiles(
			queryString(c, "displayName"), queryString(c, "location"), level, page, size)
		if err != nil {
			return respondError(c, "failed to search profiles", err)
		}
		return c.JSON(result)
	})

	group.Get("/location/:location", func(c *fiber.Ctx) error {
		views, err := profileService.GetProfilesByLocation(c.Params("location"))
		if err != nil {
			return respondError(c, "failed to list profiles by location", err)
		}
		return c.JSON(views)
	})

	group.Get("/experience/:level", func(c *fiber.Ctx) error {
		level, ok := models.ParseExperienceLevel(c.Params("level"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid experience level",
				"cause": c.Params("level"),
			})
		}
		views, err := profileService.GetProfilesByExperienceLevel(level)
		if err != nil {
			return respondError(c, "failed to list profiles by experience", err)
		}
		return c.JSON(views)
	})

	// Kept after the literal segments above so "user", "active" etc. do
	// not match as profile ids.
	group.Get("/:profileId", func(c *fiber.Ctx) error {
		view, err := profileService.GetProfileByID(c.Params("profileId"))
		if err != nil {
			return respondError(c, "failed to get profile", err)
		}
		return c.JSON(view)
	})

	group.Put("/user/:userId", func(c *fiber.Ctx) error {
		var req services.UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		view, err := profileService.UpdateProfile(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to update profile", err)
		}
		return c.JSON(view)
	})

	group.Delete("/user/:userId", func(c *fiber.Ctx) error {
		if err := profileService.DeactivateProfile(c.Params("userId")); err != nil {
			return respondError(c, "failed to deactivate profile", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	group.Patch("/user/:userId/verify", func(c *fiber.Ctx) error {
		if err := profileService.VerifyProfile(c.Params("userId")); err != nil {
			return respondError(c, "failed to verify profile", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	group.Post("/:userId/profile-picture", func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "missing file", err)
		}
		view, err := profileService.UpdateProfilePicture(c.Params("userId"), file)
		if err != nil {
			return respondError(c, "failed to update profile picture", err)
		}
		return c.JSON(view)
	})
}
