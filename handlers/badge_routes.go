package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trail-profile-service/models"
	"trail-profile-service/services"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService) {
	group := app.Group("/api/v1/badges")

	group.Post("/", func(c *fiber.Ctx) error {
		var req services.CreateBadgeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}
		if _, ok := models.ParseBadgeType(string(req.Type)); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid badge type",
				"cause": string(req.Type),
			})
		}
		if _, ok := models.ParseRarity(string(req.Rarity)); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid rarity",
				"cause": string(req.Rarity),
			})
		}

		badge, err := badgeService.CreateBadge(&req)
		if err != nil {
			return respondError(c, "failed to create badge", err)
		}
		return c.Status(fiber.StatusCreated).JSON(badge)
	})

	group.Post("/create-default-badges", func(c *fiber.Ctx) error {
		if err := badgeService.CreateDefaultBadges(); err != nil {
			return respondError(c, "failed to create default badges", err)
		}
		return c.JSON(fiber.Map{"message": "default badges created"})
	})

	group.Get("/active", func(c *fiber.Ctx) error {
		badges, err := badgeService.GetAllActiveBadges()
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		page, size := pageParams(c)
		return c.JSON(models.NewPage(badges, page, size))
	})

	group.Get("/simple", func(c *fiber.Ctx) error {
		summaries, err := badgeService.GetBadgeSummaries()
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		return c.JSON(summaries)
	})

	group.Get("/name/:name", func(c *fiber.Ctx) error {
		badge, err := badgeService.GetBadgeByName(c.Params("name"))
		if err != nil {
			return respondError(c, "failed to get badge", err)
		}
		return c.JSON(badge)
	})

	group.Get("/type/:type/rarity/:rarity", func(c *fiber.Ctx) error {
		badgeType, ok := models.ParseBadgeType(c.Params("type"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid badge type",
				"cause": c.Params("type"),
			})
		}
		rarity, ok := models.ParseRarity(c.Params("rarity"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid rarity",
				"cause": c.Params("rarity"),
			})
		}
		badges, err := badgeService.GetBadgesByTypeAndRarity(badgeType, rarity)
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		return c.JSON(badges)
	})

	group.Get("/type/:type", func(c *fiber.Ctx) error {
		badgeType, ok := models.ParseBadgeType(c.Params("type"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid badge type",
				"cause": c.Params("type"),
			})
		}
		badges, err := badgeService.GetBadgesByType(badgeType)
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		return c.JSON(badges)
	})

	group.Get("/rarity/:rarity", func(c *fiber.Ctx) error {
		rarity, ok := models.ParseRarity(c.Params("rarity"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid rarity",
				"cause": c.Params("rarity"),
			})
		}
		badges, err := badgeService.GetBadgesByRarity(rarity)
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		return c.JSON(badges)
	})

	group.Get("/available-for-points/:points", func(c *fiber.Ctx) error {
		points, err := strconv.Atoi(c.Params("points"))
		if err != nil {
			return badRequest(c, "invalid points", err)
		}
		badges, err := badgeService.GetAvailableBadgesByPoints(points)
		if err != nil {
			return respondError(c, "failed to list badges", err)
		}
		return c.JSON(badges)
	})

	group.Get("/count/active", func(c *fiber.Ctx) error {
		count, err := badgeService.CountActiveBadges()
		if err != nil {
			return respondError(c, "failed to count badges", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/count/type/:type", func(c *fiber.Ctx) error {
		badgeType, ok := models.ParseBadgeType(c.Params("type"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid badge type",
				"cause": c.Params("type"),
			})
		}
		count, err := badgeService.CountBadgesByType(badgeType)
		if err != nil {
			return respondError(c, "failed to count badges", err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	group.Get("/:badgeId", func(c *fiber.Ctx) error {
		badge, err := badgeService.GetBadgeByID(c.Params("badgeId"))
		if err != nil {
			return respondError(c, "failed to get badge", err)
		}
		return c.JSON(badge)
	})

	group.Put("/:badgeId", func(c *fiber.Ctx) error {
		var req services.UpdateBadgeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		badge, err := badgeService.UpdateBadge(c.Params("badgeId"), &req)
		if err != nil {
			return respondError(c, "failed to update badge", err)
		}
		return c.JSON(badge)
	})

	group.Patch("/:badgeId/deactivate", func(c *fiber.Ctx) error {
		badge, err := badgeService.DeactivateBadge(c.Params("badgeId"))
		if err != nil {
			return respondError(c, "failed to deactivate badge", err)
		}
		return c.JSON(badge)
	})

	group.Patch("/:badgeId/activate", func(c *fiber.Ctx) error {
		badge, err := badgeService.ActivateBadge(c.Params("badgeId"))
		if err != nil {
			return respondError(c, "failed to activate badge", err)
		}
		return c.JSON(badge)
	})
}
