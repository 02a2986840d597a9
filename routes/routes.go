package routes

import (
	"donasi/controllers/admin"
	"donasi/controllers/auth"
	"donasi/controllers/dashboard"
	"donasi/controllers/poll"
	"donasi/controllers/roblox"
	"donasi/controllers/webhook"
	"donasi/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	// Public webhook + polling surface; platforms and game servers call
	// cross-origin.
	public := api.Group("/donations", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type, X-Source, X-Platform",
	}))
	public.Post("/", webhook.IngestDonation)
	public.Get("/", webhook.ListRecentDonations)
	public.Get("/:secretKey", poll.DonationsBySecretKey)

	webhooks := api.Group("/webhooks")
	webhooks.Post("/saweria/:secretKey", webhook.SaweriaWebhook)
	webhooks.Post("/bagibagi/:secretKey", webhook.BagiBagiWebhook)

	api.Post("/auth/login", auth.Login)
	api.Get("/auth/verify", auth.Verify)

	api.Get("/dashboard/stats", middlewares.AdminAuth, dashboard.Stats)
	api.Post("/games/manage", middlewares.AdminAuth, admin.ManageGames)
	api.Post("/licenses/generate", middlewares.AdminAuth, admin.GenerateLicense)
	api.Get("/licenses/list", middlewares.AdminAuth, admin.ListLicenses)

	rbx := api.Group("/roblox", middlewares.RobloxAPIKeyAuth())
	rbx.Get("/", roblox.Index)
	rbx.Get("/saweria", roblox.SaweriaIntegration)
	rbx.Post("/saweria", roblox.SaweriaIntegration)
	rbx.Get("/leaderboard", roblox.Leaderboard)
}
