package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockyard/internal/config"
	"stockyard/internal/http/handlers"
	applog "stockyard/internal/log"
	"stockyard/internal/repos"
)

func main() {
	cfg := config.Load()
	applog.Setup(cfg.LogLevel, cfg.LogFile)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db)

	api := app.Group("/api/v1")

	api.Get("/auctions", deps.AuctionHandler.List)
	api.Post("/auctions", deps.AuctionHandler.Create)
	api.Get("/auctions/:id", deps.AuctionHandler.Get)
	api.Delete("/auctions/:id", deps.AuctionHandler.Delete)
	api.Post("/auctions/:id/publish", deps.AuctionHandler.Publish)
	api.Patch("/auctions/:id/status", deps.AuctionHandler.UpdateStatus)
	api.Patch("/auctions/:id/shelf", deps.AuctionHandler.ReassignShelf)

	api.Get("/shelves", deps.ShelfHandler.List)
	api.Post("/shelves", deps.ShelfHandler.Create)

	api.Post("/export/mark", deps.ExportHandler.Mark)
	api.Get("/export/snapshot", deps.ExportHandler.Snapshot)

	api.Get("/codes/next", deps.CodesHandler.Next)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
