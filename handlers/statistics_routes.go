package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trail-profile-service/services"
)

func SetupStatisticsRoutes(app *fiber.App, statisticsService *services.StatisticsService) {
	group := app.Group("/api/v1/statistics")

	group.Get("/user/:userId", func(c *fiber.Ctx) error {
		stats, err := statisticsService.GetStatisticsByUserID(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to get statistics", err)
		}
		return c.JSON(stats)
	})

	group.Get("/user/:userId/formatted", func(c *fiber.Ctx) error {
		view, err := statisticsService.GetFormattedStatisticsByUserID(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to get formatted statistics", err)
		}
		return c.JSON(view)
	})

	// Absolute values; absent params leave the counter untouched.
	group.Patch("/user/:userId/trails", func(c *fiber.Ctx) error {
		req := services.TrailStatsSet{
			TrailsCompleted:     queryInt(c, "trailsCompleted"),
			TotalDistanceKm:     queryFloat(c, "distance"),
			TotalTimeMinutes:    queryInt(c, "duration"),
			TotalElevationGainM: queryFloat(c, "elevationGain"),
			LongestTrailKm:      queryFloat(c, "longestTrail"),
			HighestElevationM:   queryInt(c, "highestElevation"),
			TotalPoints:         queryInt(c, "totalPoints"),
		}
		stats, err := statisticsService.SetTrailStatistics(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to update trail statistics", err)
		}
		return c.JSON(stats)
	})

	// Deltas added to the current counters.
	group.Patch("/user/:userId/trails/increment", func(c *fiber.Ctx) error {
		req := services.TrailStatsIncrement{
			Trails:        queryInt(c, "trails"),
			DistanceKm:    queryFloat(c, "distance"),
			TimeMinutes:   queryInt(c, "time"),
			ElevationGain: queryInt(c, "elevation"),
		}
		stats, err := statisticsService.IncrementTrailStatistics(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to increment trail statistics", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/activities", func(c *fiber.Ctx) error {
		req := services.ActivityStatsSet{
			PhotosShared:     queryInt(c, "photosShared"),
			ReviewsPosted:    queryInt(c, "reviewsPosted"),
			LikesReceived:    queryInt(c, "likesReceived"),
			CommentsReceived: queryInt(c, "commentsReceived"),
		}
		stats, err := statisticsService.SetActivityStatistics(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to update activity statistics", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/achievements", func(c *fiber.Ctx) error {
		req := services.AchievementStatsSet{
			BadgesEarned:  queryInt(c, "badgesEarned"),
			TotalPoints:   queryInt(c, "totalPoints"),
			CurrentStreak: queryInt(c, "currentStreak"),
			LongestStreak: queryInt(c, "longestStreak"),
		}
		stats, err := statisticsService.SetAchievementStatistics(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to update achievement statistics", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/social", func(c *fiber.Ctx) error {
		req := services.SocialStatsSet{
			Followers:    queryInt(c, "followers"),
			Following:    queryInt(c, "following"),
			GuidesBooked: queryInt(c, "guidesBooked"),
		}
		stats, err := statisticsService.SetSocialStatistics(c.Params("userId"), &req)
		if err != nil {
			return respondError(c, "failed to update social statistics", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/ranking", func(c *fiber.Ctx) error {
		stats, err := statisticsService.SetRanking(c.Params("userId"),
			queryInt(c, "globalRank"), queryInt(c, "localRank"))
		if err != nil {
			return respondError(c, "failed to update ranking", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/last-activity", func(c *fiber.Ctx) error {
		stats, err := statisticsService.UpdateLastActivity(c.Params("userId"))
		if err != nil {
			return respondError(c, "failed to update last activity", err)
		}
		return c.JSON(stats)
	})

	group.Patch("/user/:userId/increment-trails", func(c *fiber.Ctx) error {
		increment, err := strconv.Atoi(c.Query("increment", "1"))
		if err != nil {
			return badRequest(c, "invalid increment", err)
		}
		stats, err := statisticsService.IncrementTrailsCompleted(c.Params("userId"), increment)
		if err != nil {
			return respondError(c, "failed to increment trails", err)
		}
		return c.JSON(stats)
	})

	group.Get("/ranking/points", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := statisticsService.GetRankingByPoints(page, size)
		if err != nil {
			return respondError(c, "failed to get ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/ranking/trails", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := statisticsService.GetRankingByTrails(page, size)
		if err != nil {
			return respondError(c, "failed to get ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/ranking/distance", func(c *fiber.Ctx) error {
		page, size := pageParams(c)
		result, err := statisticsService.GetRankingByDistance(page, size)
		if err != nil {
			return respondError(c, "failed to get ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/ranking/location/:location", func(c *fiber.Ctx) error {
		result, err := statisticsService.GetRankingByLocation(c.Params("location"))
		if err != nil {
			return respondError(c, "failed to get location ranking", err)
		}
		return c.JSON(result)
	})

	group.Get("/averages/points", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetAveragePoints()
		if err != nil {
			return respondError(c, "failed to get average points", err)
		}
		return c.JSON(fiber.Map{"average_points": v})
	})

	group.Get("/averages/distance", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetAverageDistance()
		if err != nil {
			return respondError(c, "failed to get average distance", err)
		}
		return c.JSON(fiber.Map{"average_distance": v})
	})

	group.Get("/averages/trails", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetAverageTrailsCompleted()
		if err != nil {
			return respondError(c, "failed to get average trails", err)
		}
		return c.JSON(fiber.Map{"average_trails": v})
	})

	group.Get("/max/points", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetMaxPoints()
		if err != nil {
			return respondError(c, "failed to get max points", err)
		}
		return c.JSON(fiber.Map{"max_points": v})
	})

	group.Get("/max/distance", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetMaxDistance()
		if err != nil {
			return respondError(c, "failed to get max distance", err)
		}
		return c.JSON(fiber.Map{"max_distance": v})
	})

	group.Get("/max/trails", func(c *fiber.Ctx) error {
		v, err := statisticsService.GetMaxTrailsCompleted()
		if err != nil {
			return respondError(c, "failed to get max trails", err)
		}
		return c.JSON(fiber.Map{"max_trails": v})
	})

	group.Get("/:statisticsId", func(c *fiber.Ctx) error {
		stats, err := statisticsService.GetStatisticsByID(c.Params("statisticsId"))
		if err != nil {
			return respondError(c, "failed to get statistics", err)
		}
		return c.JSON(stats)
	})
}
