package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trail-profile-service/models"
	"trail-profile-service/services"
)

func SetupAchievementRoutes(app *fiber.App, achievementService *services.AchievementService) {
	group := app.Group("/api/v1/achievements")

	group.Post("/user/:userId/badge/:badgeId", func(c *fiber.Ctx) error {
		var body struct {
			Metadata map[string]interface{} `json:"metadata"`
		}
		// Body is optional; metadata only comes through JSON.
		_ = c.BodyParser(&body)

		achievement, err := achievementService.CreateAchievement(&services.CreateAchievementRequest{
			UserID:      c.Params("userId"),
			BadgeID:     c.Params("badgeId"),
			Description: c.Query("description"),
			Metadata:    body.Metadata,
		})
		if err != nil {
			return respondError(c, "failed to create achievement", err)
		}
		return c.Status(fiber.StatusCreated).JSON(achievement)
	})

	group.Get("/user/:userId/completed", func(c *fiber.Ctx) error {
		achievements, err := achievementService.GetUserCompletedAchievements(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to list achievements", err)
		}
		return c.JSON(achievements)
	})

	group.Get("/user/:userId/in-progress", func(c *fiber.Ctx) error {
		achievements, err := achievementService.GetUserInProgressAchievements(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to list achievements", err)
		}
		return c.JSON(achievements)
	})

	group.Get("/user/:userId/badge-type/:badgeType", func(c *fiber.Ctx) error {
		badgeType, ok := models.ParseBadgeType(c.Params("badgeType"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid badge type",
				"cause": c.Params("badgeType"),
			})
		}
		achievements, err := achievementService.GetUserAchievementsByBadgeType(c.Params("userId"), badgeType)
		if err != nil {
			return respondError(c, "failed to list achievements", err)
		}
		return c.JSON(achievements)
	})

	group.Get("/user/:userId", func(c *fiber.Ctx) error {
		achievements, err := achievementService.GetUserAchievements(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to list achievements", err)
		}
		return c.JSON(achievements)
	})

	group.Patch("/:achievementId/progress", func(c *fiber.Ctx) error {
		progress, err := strconv.Atoi(c.Query("progress"))
		if err != nil {
			return badRequest(c, "invalid progress", err)
		}
		achievement, err := achievementService.UpdateProgress(c.Params("achievementId"), progress)
		if err != nil {
			return respondError(c, "failed to update progress", err)
		}
		return c.JSON(achievement)
	})

	group.Patch("/:achievementId/increment", func(c *fiber.Ctx) error {
		increment, err := strconv.Atoi(c.Query("increment"))
		if err != nil {
			return badRequest(c, "invalid increment", err)
		}
		achievement, err := achievementService.IncrementProgress(c.Params("achievementId"), increment)
		if err != nil {
			return respondError(c, "failed to increment progress", err)
		}
		return c.JSON(achievement)
	})

	group.Patch("/:achievementId/complete", func(c *fiber.Ctx) error {
		achievement, err := achievementService.CompleteAchievement(c.Params("achievementId"))
		if err != nil {
			return respondError(c, "failed to complete achievement", err)
		}
		return c.JSON(achievement)
	})

	group.Delete("/:achievementId", func(c *fiber.Ctx) error {
		if err := achievementService.DeleteAchievement(c.Params("achievementId")); err != nil {
			return respondError(c, "failed to delete achievement", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	group.Get("/count/completed/user/:userId", func(c *fiber.Ctx) error {
		count, err := achievementService.CountUserCompletedAchievements(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to count achievements", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/count/total/user/:userId", func(c *fiber.Ctx) error {
		count, err := achievementService.CountUserTotalAchievements(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to count achievements", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/:achievementId/completion-percentage", func(c *fiber.Ctx) error {
		pct, err := achievementService.GetCompletionPercentage(c.Params("achievementId"))
		if err != nil {
			return respondError(c, "failed to get completion percentage", err)
		}
		return c.JSON(fiber.Map{"completion_percentage": pct})
	})

	group.Post("/user/:userId/check-trail-achievements", func(c *fiber.Ctx) error {
		trailsCompleted, err := strconv.Atoi(c.Query("trailsCompleted"))
		if err != nil {
			return badRequest(c, "invalid trailsCompleted", err)
		}
		if err := achievementService.CheckAndCreateTrailAchievements(c.Params("userId"), trailsCompleted); err != nil {
			return respondError(c, "failed to check trail achievements", err)
		}
		return c.JSON(fiber.Map{"message": "trail achievements checked"})
	})

	group.Post("/user/:userId/check-distance-achievements", func(c *fiber.Ctx) error {
		totalDistance, err := strconv.ParseFloat(c.Query("totalDistance"), 64)
		if err != nil {
			return badRequest(c, "invalid totalDistance", err)
		}
		if err := achievementService.CheckAndCreateDistanceAchievements(c.Params("userId"), totalDistance); err != nil {
			return respondError(c, "failed to check distance achievements", err)
		}
		return c.JSON(fiber.Map{"message": "distance achievements checked"})
	})

	group.Get("/:achievementId", func(c *fiber.Ctx) error {
		achievement, err := achievementService.GetAchievementByID(c.Params("achievementId"))
		if err != nil {
			return respondError(c, "failed to get achievement", err)
		}
		return c.JSON(achievement)
	})
}
