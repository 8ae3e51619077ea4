package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trail-profile-service/services"
)

func SetupSavedTrailRoutes(app *fiber.App, savedTrailService *services.SavedTrailService) {
	group := app.Group("/api/v1/saved-trails")

	group.Post("/user/:userId", func(c *fiber.Ctx) error {
		var req services.SaveTrailRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		view, err := savedTrailService.SaveTrail(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to save trail", err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	group.Delete("/user/:userId/trail/:trailId", func(c *fiber.Ctx) error {
		if err := savedTrailService.UnsaveTrail(c.Params("userId"), c.Params("trailId")); err != nil {
			return respondError(c, "failed to unsave trail", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	group.Get("/user/:userId/paginated", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := savedTrailService.GetSavedTrailsPaginated(c.Params("userId"), page, size)
		if err != nil {
			return respondError(c, "failed to list saved trails", err)
		}
		return c.JSON(result)
	})

	group.Get("/user/:userId/trail/:trailId/is-saved", func(c *fiber.Ctx) error {
		saved, err := savedTrailService.IsTrailSaved(c.Params("userId"), c.Params("trailId"))
		if err != nil {
			return respondError(c, "failed to check saved trail", err)
		}
		return c.JSON(fiber.Map{"is_saved": saved})
	})

	group.Get("/user/:userId/trail/:trailId/details", func(c *fiber.Ctx) error {
		view, err := savedTrailService.GetSavedTrailDetails(c.Params("userId"), c.Params("trailId"))
		if err != nil {
			return respondError(c, "failed to get saved trail", err)
		}
		return c.JSON(view)
	})

	group.Get("/user/:userId/count", func(c *fiber.Ctx) error {
		count, err := savedTrailService.GetSavedTrailsCount(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to count saved trails", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/user/:userId/trail-ids", func(c *fiber.Ctx) error {
		ids, err := savedTrailService.GetSavedTrailIDs(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to list saved trail ids", err)
		}
		return c.JSON(ids)
	})

	group.Get("/user/:userId", func(c *fiber.Ctx) error {
		views, err := savedTrailService.GetSavedTrails(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to list saved trails", err)
		}
		return c.JSON(views)
	})
}
