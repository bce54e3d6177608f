package recommended

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/online-supermarket/internal/cart"
)

// MaxLimit caps the limit query parameter of basket recommendations.
const MaxLimit = 100

type Handler struct {
	service  *Service
	engine   *Engine
	timeout  time.Duration
	validate *validator.Validate
}

func NewHandler(s *Service, e *Engine, timeout time.Duration) *Handler {
	return &Handler{service: s, engine: e, timeout: timeout, validate: validator.New()}
}

type recommendQuery struct {
	Limit *int `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/product/recommended", h.getRecommended)
	app.Get("/api/v1/cart/:cartId/recommended-products", h.getCartRecommendations)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart/recommended", h.getMyRecommendations)
}

func (h *Handler) getRecommended(c *fiber.Ctx) error {
	// ?limit=12&offset=0; malformed values fall back to the defaults
	limit := c.QueryInt("limit", DefaultListLimit)
	offset := c.QueryInt("offset", 0)
	return c.JSON(h.service.List(limit, offset))
}

func (h *Handler) getCartRecommendations(c *fiber.Ctx) error {
	cartID, err := cart.ParseCartID(c.Params("cartId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": cart.ErrNotFound.Error()})
	}
	return h.recommend(c, cartID)
}

func (h *Handler) getMyRecommendations(c *fiber.Ctx) error {
	cartID, err := cart.CartIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return h.recommend(c, cartID)
}

func (h *Handler) recommend(c *fiber.Ctx, cartID int) error {
	var q recommendQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid limit"})
	}
	if err := h.validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "limit must be between 1 and " + strconv.Itoa(MaxLimit)})
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	target := 0
	if q.Limit != nil {
		target = *q.Limit
	}
	res, err := h.engine.Recommend(ctx, cartID, target)
	if errors.Is(err, cart.ErrInvalidCartID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": cart.ErrNotFound.Error()})
	}
	if err != nil {
		return err
	}
	return c.JSON(res)
}
