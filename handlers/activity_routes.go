package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trail-profile-service/models"
	"trail-profile-service/services"
)

func SetupActivityRoutes(app *fiber.App, activityService *services.ActivityService) {
	group := app.Group("/api/v1/activities")

	group.Post("/user/:userId", func(c *fiber.Ctx) error {
		var req services.CreateActivityRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}
		if _, ok := models.ParseActivityType(string(req.Type)); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid activity type",
				"cause": string(req.Type),
			})
		}

		view, err := activityService.CreateActivity(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to create activity", err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	group.Get("/public", func(c *fiber.Ctx) error {
		views, err := activityService.GetPublicActivities()
		if err != nil {
			return respondError(c, "failed to list public activities", err)
		}
		return c.JSON(views)
	})

	group.Get("/recent", func(c *fiber.Ctx) error {
		limit := 10
		if v := queryInt(c, "limit"); v != nil {
			limit = *v
		}
		views, err := activityService.GetRecentActivities(limit)
		if err != nil {
			return respondError(c, "failed to list recent activities", err)
		}
		return c.JSON(views)
	})

	group.Get("/trail/:trailId", func(c *fiber.Ctx) error {
		views, err := activityService.GetActivitiesByTrail(c.Params("trailId"))
		if err != nil {
			return respondError(c, "failed to list trail activities", err)
		}
		return c.JSON(views)
	})

	group.Get("/user/:userId/type/:type", func(c *fiber.Ctx) error {
		activityType, ok := models.ParseActivityType(c.Params("type"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid activity type",
				"cause": c.Params("type"),
			})
		}
		views, err := activityService.GetUserActivitiesByType(c.Params("userId"), activityType)
		if err != nil {
			return respondError(c, "failed to list activities", err)
		}
		return c.JSON(views)
	})

	group.Get("/user/:userId/distance", func(c *fiber.Ctx) error {
		total, err := activityService.GetTotalDistanceByUser(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to sum distance", err)
		}
		return c.JSON(fiber.Map{"total_distance": total})
	})

	group.Get("/user/:userId/duration", func(c *fiber.Ctx) error {
		total, err := activityService.GetTotalDurationByUser(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to sum duration", err)
		}
		return c.JSON(fiber.Map{"total_duration": total})
	})

	group.Get("/user/:userId", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := activityService.GetUserActivities(c.Params("userId"), page, size)
		if err != nil {
			return respondError(c, "failed to list activities", err)
		}
		return c.JSON(result)
	})

	group.Get("/count/user/:userId/type/:type", func(c *fiber.Ctx) error {
		activityType, ok := models.ParseActivityType(c.Params("type"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid activity type",
				"cause": c.Params("type"),
			})
		}
		count, err := activityService.CountUserActivitiesByType(c.Params("userId"), activityType)
		if err != nil {
			return respondError(c, "failed to count activities", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/count/user/:userId", func(c *fiber.Ctx) error {
		count, err := activityService.CountUserActivities(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to count activities", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Put("/:activityId", func(c *fiber.Ctx) error {
		var req services.UpdateActivityRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		view, err := activityService.UpdateActivity(c.Params("activityId"), &req)
		if err != nil {
			return respondError(c, "failed to update activity", err)
		}
		return c.JSON(view)
	})

	group.Delete("/:activityId", func(c *fiber.Ctx) error {
		if err := activityService.DeleteActivity(c.Params("activityId")); err != nil {
			return respondError(c, "failed to delete activity", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	group.Post("/:activityId/like", func(c *fiber.Ctx) error {
		view, err := activityService.LikeActivity(c.Params("activityId"))
		if err != nil {
			return respondError(c, "failed to like activity", err)
		}
		return c.JSON(view)
	})

	group.Post("/:activityId/comment", func(c *fiber.Ctx) error {
		view, err := activityService.AddComment(c.Params("activityId"))
		if err != nil {
			return respondError(c, "failed to add comment", err)
		}
		return c.JSON(view)
	})

	group.Get("/:activityId", func(c *fiber.Ctx) error {
		view, err := activityService.GetActivityByID(c.Params("activityId"))
		if err != nil {
			return respondError(c, "failed to get activity", err)
		}
		return c.JSON(view)
	})
}
