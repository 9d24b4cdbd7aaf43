package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockyard/internal/domain"
	applog "stockyard/internal/log"
	"stockyard/internal/services"
	"stockyard/internal/validate"
)

type AuctionHandler struct {
	Lifecycle *services.LifecycleService
	Deletion  *services.DeletionService
}

type createAuctionRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Brand            string  `json:"brand"`
	Category         string  `json:"category"`
	Condition        string  `json:"condition"`
	WeightLbs        float64 `json:"weightLbs"`
	WeightOz         float64 `json:"weightOz"`
	BrandTier        string  `json:"brandTier"`
	StockQuantity    int     `json:"stockQuantity"`
	Cost             float64 `json:"cost"`
	RetailPrice      float64 `json:"retailPrice"`
	StartingBid      float64 `json:"startingBid"`
	Status           string  `json:"status"`
	ShelfID          *int64  `json:"shelfId"`
	ScannedByStaffID *int64  `json:"scannedByStaffId"`
	BatchID          *string `json:"batchId"`
	ShowOnHomepage   bool    `json:"showOnHomepage"`
}

type publishRequest struct {
	Destination string `json:"destination"`
}

type statusRequest struct {
	Status       string   `json:"status"`
	DurationDays *float64 `json:"durationDays"`
}

type shelfAssignRequest struct {
	ShelfID *int64 `json:"shelfId"`
}

// GET /api/v1/auctions
func (h *AuctionHandler) List(c *fiber.Ctx) error {
	auctions, err := h.Lifecycle.List()
	if err != nil {
		return fail(c, "auctions.list.fail", err)
	}
	if auctions == nil {
		auctions = []domain.Auction{} // keep [] in JSON, not null
	}
	return c.JSON(auctions)
}

// POST /api/v1/auctions
func (h *AuctionHandler) Create(c *fiber.Ctx) error {
	var req createAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	a, err := h.Lifecycle.Create(services.CreateAuctionInput{
		Title:            req.Title,
		Description:      req.Description,
		Brand:            req.Brand,
		Category:         req.Category,
		Condition:        req.Condition,
		WeightLbs:        req.WeightLbs,
		WeightOz:         req.WeightOz,
		BrandTier:        req.BrandTier,
		StockQuantity:    req.StockQuantity,
		Cost:             req.Cost,
		RetailPrice:      req.RetailPrice,
		StartingBid:      req.StartingBid,
		Status:           req.Status,
		ShelfID:          req.ShelfID,
		ScannedByStaffID: req.ScannedByStaffID,
		BatchID:          req.BatchID,
		ShowOnHomepage:   req.ShowOnHomepage,
	})
	if err != nil {
		return fail(c, "auctions.create.fail", err)
	}
	applog.Audit(c, "auctions.create", map[string]any{"auction_id": a.ID, "code": a.InternalCode})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GET /api/v1/auctions/:id
func (h *AuctionHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	a, err := h.Lifecycle.Get(id)
	if err != nil {
		return fail(c, "auctions.get.fail", err)
	}
	return c.JSON(a)
}

// DELETE /api/v1/auctions/:id
func (h *AuctionHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	if err := h.Deletion.DeleteAuction(id); err != nil {
		return fail(c, "auctions.delete.fail", err)
	}
	applog.Audit(c, "auctions.delete", map[string]any{"auction_id": id})
	return c.JSON(fiber.Map{"success": true, "id": id})
}

// POST /api/v1/auctions/:id/publish
func (h *AuctionHandler) Publish(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.Lifecycle.Publish(id, req.Destination)
	if err != nil {
		return fail(c, "auctions.publish.fail", err)
	}
	applog.Audit(c, "auctions.publish", map[string]any{"auction_id": id, "destination": req.Destination})
	return c.JSON(res)
}

// PATCH /api/v1/auctions/:id/status
func (h *AuctionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.Lifecycle.UpdateStatus(id, req.Status, req.DurationDays)
	if err != nil {
		return fail(c, "auctions.status.fail", err)
	}
	applog.Audit(c, "auctions.status", map[string]any{"auction_id": id, "status": req.Status})
	return c.JSON(res)
}

// PATCH /api/v1/auctions/:id/shelf
func (h *AuctionHandler) ReassignShelf(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	var req shelfAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.Lifecycle.ReassignShelf(id, req.ShelfID)
	if err != nil {
		return fail(c, "auctions.shelf.fail", err)
	}
	applog.Audit(c, "auctions.shelf", map[string]any{"auction_id": id, "shelf_id": req.ShelfID})
	return c.JSON(res)
}
